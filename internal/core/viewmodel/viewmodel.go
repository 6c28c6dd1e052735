// Package viewmodel holds per-screen client state. Each view-model is safe
// for concurrent use; network calls run without holding its lock, and the
// last operation to finish wins.
package viewmodel

// progress tracks in-flight operations and the last error message of one
// view-model. Callers hold the view-model's lock.
type progress struct {
	inflight     int
	errorMessage string
}

// begin marks an operation as started and clears the previous error.
func (p *progress) begin() {
	p.inflight++
	p.errorMessage = ""
}

func (p *progress) end() {
	if p.inflight > 0 {
		p.inflight--
	}
}

func (p *progress) fail(prefix string, err error) {
	if prefix == "" {
		p.errorMessage = err.Error()
		return
	}
	p.errorMessage = prefix + ": " + err.Error()
}

func (p *progress) loading() bool { return p.inflight > 0 }
