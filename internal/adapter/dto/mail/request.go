package mail

// SendEmailRequest represents the request to render and send a
// transactional email
type SendEmailRequest struct {
	Recipient string         `json:"recipient" validate:"required,email"`
	Username  string         `json:"username" validate:"required,min=1,max=150"`
	URL       string         `json:"url,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// HistoryRequest represents query parameters for listing delivery records
type HistoryRequest struct {
	Recipient string `query:"recipient" validate:"required,email"`
	Limit     int    `query:"limit" validate:"min=0,max=100"`
	Offset    int    `query:"offset" validate:"min=0"`
}
