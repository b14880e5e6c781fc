package models

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Notice is a user-facing flash message carried on the response itself
// rather than queued in session state.
type Notice struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}
