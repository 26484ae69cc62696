// Package session wraps one running conversation with the reasoning
// service. The system instruction and tool descriptors are bound at
// creation and stay fixed for the session's lifetime; the message history
// is append-only with a single writer.
package session

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/shopai/assistant/assistant/contract"
)

var _ contractx.ChatSession = (*Session)(nil)

type Session struct {
	model   einomodel.BaseChatModel
	history []*schema.Message
}

func New(
	base einomodel.ToolCallingChatModel,
	systemInstruction string,
	tools []*schema.ToolInfo,
) (*Session, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}

	var model einomodel.BaseChatModel = base
	if len(tools) > 0 {
		bound, err := base.WithTools(tools)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools: %v", contractx.ErrModelInvoke, err)
		}
		model = bound
	}

	history := make([]*schema.Message, 0, 16)
	if trimmed := strings.TrimSpace(systemInstruction); trimmed != "" {
		history = append(history, schema.SystemMessage(trimmed))
	}

	return &Session{
		model:   model,
		history: history,
	}, nil
}

// SendUserText appends a user turn and asks the model for the next
// response.
func (s *Session) SendUserText(ctx context.Context, text string) (*schema.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: user text is empty", contractx.ErrValidation)
	}

	s.history = append(s.history, schema.UserMessage(trimmed))
	return s.generate(ctx)
}

// SendToolResults feeds a full round of tool results back in one
// round-trip. Every result of the round must be present; partial rounds
// violate the session protocol.
func (s *Session) SendToolResults(ctx context.Context, results []contractx.ToolResult) (*schema.Message, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: tool results are empty", contractx.ErrValidation)
	}

	for _, res := range results {
		s.history = append(s.history, schema.ToolMessage(
			res.Payload(),
			res.CallID,
			schema.WithToolName(res.Tool),
		))
	}
	return s.generate(ctx)
}

// History returns a copy of the conversation so far.
func (s *Session) History() []*schema.Message {
	return append([]*schema.Message(nil), s.history...)
}

func (s *Session) generate(ctx context.Context) (*schema.Message, error) {
	msg, err := s.model.Generate(ctx, s.history)
	if err != nil {
		return nil, fmt.Errorf("%w: generate: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
	}

	s.history = append(s.history, msg)
	return msg, nil
}
