package contract

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is one entry in the conversation transcript. Immutable once
// created; the timestamp is assigned exactly once, at creation.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
}

func NewMessage(sender Sender, text string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: at.UTC(),
	}
}

func NewErrorMessage(text string, at time.Time) Message {
	msg := NewMessage(SenderAgent, text, at)
	msg.IsError = true
	return msg
}

// ToolRequest is a tool invocation asked for by the model within a turn.
// Arguments carries the raw JSON object exactly as the model produced it;
// decoding happens at dispatch so a malformed payload fails one call, not
// the whole round.
type ToolRequest struct {
	CallID    string `json:"call_id"`
	Tool      string `json:"tool"`
	Arguments string `json:"arguments,omitempty"`
}

// ToolResult is the outcome of one tool invocation. Result holds the typed
// payload; Error is set instead when the call itself failed (unknown tool,
// bad arguments, executor failure). Exactly one result answers each
// ToolRequest of a round.
type ToolResult struct {
	CallID string `json:"call_id"`
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Payload serializes the result to the string contract handed back to the
// model. Typed payloads stay typed until this boundary.
func (r ToolResult) Payload() string {
	if r.Error != "" {
		return encodeErrorPayload(r.Error)
	}
	if r.Result == nil {
		return "{}"
	}
	b, err := json.Marshal(r.Result)
	if err != nil {
		return encodeErrorPayload("encode tool result: " + err.Error())
	}
	return string(b)
}

func encodeErrorPayload(msg string) string {
	b, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return `{"error":"tool execution failed"}`
	}
	return string(b)
}

// CallbackRequest is a customer callback captured by the schedule_callback
// tool and handed to a CRM recorder.
type CallbackRequest struct {
	CustomerName string    `json:"customer_name"`
	PhoneNumber  string    `json:"phone_number"`
	Reason       string    `json:"reason"`
	RequestedAt  time.Time `json:"requested_at"`
}
