package mail

import "time"

// EmailLogResponse represents a delivery record in responses
type EmailLogResponse struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Recipient  string     `json:"recipient"`
	Subject    string     `json:"subject"`
	Status     string     `json:"status"`
	ProviderID string     `json:"provider_id,omitempty"`
	Attempts   int        `json:"attempts"`
	Error      string     `json:"error,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PreviewResponse carries a rendered email without sending it
type PreviewResponse struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}
