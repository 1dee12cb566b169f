package presenter

import (
	"github.com/edumeet/notifier/internal/adapter/dto/mail"
	"github.com/edumeet/notifier/internal/domain/entities"
)

// ToEmailLogResponse converts an EmailLog entity to EmailLogResponse DTO
func ToEmailLogResponse(l *entities.EmailLog) *mail.EmailLogResponse {
	if l == nil {
		return nil
	}

	return &mail.EmailLogResponse{
		ID:         l.ID.String(),
		Kind:       string(l.Kind),
		Recipient:  l.Recipient,
		Subject:    l.Subject,
		Status:     string(l.Status),
		ProviderID: l.ProviderID,
		Attempts:   l.Attempts,
		Error:      l.Error,
		SentAt:     l.SentAt,
		CreatedAt:  l.CreatedAt,
	}
}

// ToEmailLogListResponse converts a slice of EmailLog entities to DTOs
func ToEmailLogListResponse(logs []*entities.EmailLog) []*mail.EmailLogResponse {
	responses := make([]*mail.EmailLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = ToEmailLogResponse(l)
	}
	return responses
}
