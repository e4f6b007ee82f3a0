package handlers

import (
	"myfabric/domain"
	"myfabric/service"
)

// fromSendMessageRequest converts SendMessageRequest to the caller fields of a new envelope.
// Returns service.BadParameterError on validation failure.
func fromSendMessageRequest(req SendMessageRequest) (domain.Envelope, error) {
	if req.To == "" {
		return domain.Envelope{}, service.NewBadParameterError("to is required", nil)
	}
	if req.Priority < 0 {
		return domain.Envelope{}, service.NewBadParameterError("priority must not be negative", nil)
	}
	if req.Timeout < 0 {
		return domain.Envelope{}, service.NewBadParameterError("timeout must not be negative", nil)
	}

	return domain.Envelope{
		To:       req.To,
		Type:     req.Type,
		Priority: req.Priority,
		Timeout:  req.Timeout,
		Headers:  req.Headers,
		Body:     req.Body,
	}, nil
}
