package domain

// User is the profile snapshot the backend returns with every auth response.
// The client never edits it in place; a newer response replaces it wholesale.
type User struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Email            string        `json:"email,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	PhoneFormatted   string        `json:"phone_formatted,omitempty"`
	PhoneCode        string        `json:"phone_code,omitempty"`
	Avatar           *FileResource `json:"avatar,omitempty"`
	TelegramUsername string        `json:"telegram_username,omitempty"`
	IsNotifyEmail    *bool         `json:"is_notify_email,omitempty"`
	IsNotifyTelegram *bool         `json:"is_notify_telegram,omitempty"`
}

// FileResource describes an uploaded file such as an avatar.
type FileResource struct {
	ID          string `json:"id"`
	Path        string `json:"path,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	Collection  string `json:"collection,omitempty"`
	OriginalURL string `json:"original_url,omitempty"`
	URL         string `json:"url,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

// AuthResult is produced by every successful login, code check or sign-up.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
