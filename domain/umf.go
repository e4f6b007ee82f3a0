package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// UMFVersion is stamped on every envelope created by this module.
const UMFVersion = "UMF/1.4.6"

// Envelope is a Universal Message Format message. A new envelope is created for every send.
type Envelope struct {
	MID       string            `json:"mid"`
	RMID      string            `json:"rmid,omitempty"` // mid of the message this one replies to
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	To        string            `json:"to"`
	From      string            `json:"from"`
	Type      string            `json:"type,omitempty"`
	Via       string            `json:"via,omitempty"`
	Forward   string            `json:"forward,omitempty"`
	Priority  int               `json:"priority,omitempty"`
	Timeout   int               `json:"timeout,omitempty"` // milliseconds
	Headers   map[string]string `json:"headers,omitempty"`
	Body      json.RawMessage   `json:"body,omitempty"`
}

// envelopeHeader is the part of an envelope every version must be able to read.
type envelopeHeader struct {
	MID       string    `json:"mid"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	To        string    `json:"to"`
	From      string    `json:"from"`
}

// SendResult is the outcome of publishing one envelope.
type SendResult struct {
	MID       string
	Channel   string
	Direct    bool
	Receivers int64 // subscribers that got the payload, as reported by the store
}

// MarshalEnvelope encodes e for the wire. The body must be a JSON value; its bytes are written
// as given, whitespace included, which a plain json.Marshal would compact. HTML escaping is
// disabled for the other fields.
func MarshalEnvelope(e Envelope) ([]byte, error) {
	body := e.Body
	e.Body = nil
	if len(body) > 0 && !json.Valid(body) {
		return nil, fmt.Errorf("can't marshal envelope (mid='%s'), err: body is not a valid JSON value", e.MID)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("can't marshal envelope (mid='%s'), err: %w", e.MID, err)
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if len(body) == 0 {
		return out, nil
	}

	// splice the body in front of the closing brace
	out = append(out[:len(out)-1], `,"body":`...)
	out = append(out, body...)
	return append(out, '}'), nil
}

// UnmarshalEnvelope decodes a wire envelope. Unknown fields are ignored. When the body of a
// newer envelope can't be decoded, the header is still returned together with the error.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	err := json.Unmarshal(data, &e)
	if err == nil {
		return e, nil
	}

	var h envelopeHeader
	if hErr := json.Unmarshal(data, &h); hErr != nil {
		return Envelope{}, fmt.Errorf("can't unmarshal envelope, err: %w", err)
	}
	return Envelope{
		MID:       h.MID,
		Timestamp: h.Timestamp,
		Version:   h.Version,
		To:        h.To,
		From:      h.From,
	}, fmt.Errorf("can't unmarshal envelope body (mid='%s'), err: %w", h.MID, err)
}
