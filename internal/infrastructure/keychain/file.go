package keychain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

var errCorrupt = errors.New("keychain: corrupt file")

// fileFormat is the on-disk layout: one salt per file, one sealed value per
// service/account pair.
type fileFormat struct {
	Salt  string            `json:"salt"`
	Items map[string]string `json:"items"`
}

// File stores the token sealed with a passphrase-derived key in a 0600 file.
type File struct {
	path   string
	item   string
	salt   []byte
	sealer *Sealer
	log    zerolog.Logger
	mu     sync.Mutex
}

// FileConfig captures the settings of a File store.
type FileConfig struct {
	Path       string
	Service    string
	Account    string
	Passphrase string
	// ScryptN defaults to DefaultScryptN.
	ScryptN int
}

// NewFile opens (or prepares) the keychain file and derives its key once.
func NewFile(cfg FileConfig, log zerolog.Logger) (*File, error) {
	if cfg.ScryptN <= 1 {
		cfg.ScryptN = DefaultScryptN
	}
	f := &File{
		path: cfg.Path,
		item: cfg.Service + "/" + cfg.Account,
		log:  log,
	}

	doc, err := f.read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", cfg.Path).Msg("keychain unreadable, starting with a fresh salt")
	}
	if doc.Salt != "" {
		if f.salt, err = base64.StdEncoding.DecodeString(doc.Salt); err != nil {
			return nil, fmt.Errorf("keychain: corrupt salt in %s: %w", cfg.Path, err)
		}
	} else if f.salt, err = newSalt(); err != nil {
		return nil, err
	}

	f.sealer, err = NewSealer(cfg.Passphrase, f.salt, cfg.ScryptN)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Save(_ context.Context, token string) error {
	data, err := encodeToken(token)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, errCorrupt) {
		return fmt.Errorf("%w: %v", domain.ErrTokenSave, err)
	}
	// Replace rather than append so the file never holds two entries for one pair.
	delete(doc.Items, f.item)

	sealed, err := f.sealer.Seal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenSave, err)
	}
	doc.Items[f.item] = base64.StdEncoding.EncodeToString(sealed)

	if err := f.write(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenSave, err)
	}
	return nil
}

func (f *File) Get(_ context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.log.Warn().Err(err).Str("path", f.path).Msg("keychain unreadable")
		}
		return "", false
	}
	enc, ok := doc.Items[f.item]
	if !ok {
		return "", false
	}
	sealed, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", false
	}
	plain, err := f.sealer.Open(sealed)
	if err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("keychain entry cannot be opened")
		return "", false
	}
	return decodeToken(plain)
}

func (f *File) Delete(_ context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return
	}
	if _, ok := doc.Items[f.item]; !ok {
		return
	}
	delete(doc.Items, f.item)
	if err := f.write(doc); err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("keychain delete failed")
	}
}

// read always returns a usable document, even alongside an error.
func (f *File) read() (fileFormat, error) {
	doc := fileFormat{Items: map[string]string{}}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fileFormat{Items: map[string]string{}}, fmt.Errorf("%w: %s: %v", errCorrupt, f.path, err)
	}
	if doc.Items == nil {
		doc.Items = map[string]string{}
	}
	return doc, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (f *File) write(doc fileFormat) error {
	doc.Salt = base64.StdEncoding.EncodeToString(f.salt)
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".keychain-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
