// Package orchestrator drives one conversation: guardrail check, lazy
// session creation, and the bounded tool-call loop against the reasoning
// service.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	contractx "github.com/shopai/assistant/assistant/contract"
	"github.com/shopai/assistant/assistant/guardrail"
	promptx "github.com/shopai/assistant/assistant/prompt"
	sessionx "github.com/shopai/assistant/assistant/session"
	openrouterx "github.com/shopai/assistant/pkg/openrouter"
)

var ErrInvalidMessage = errors.New("message is empty")

// DefaultMaxToolRounds caps how many tool-dispatch rounds a single user
// turn may take before the loop gives up.
const DefaultMaxToolRounds = 8

const (
	fallbackReply   = "I'm sorry, I couldn't generate a response."
	exhaustedReply  = "I wasn't able to finish that request. Could you simplify it and try again?"
	turnFailedReply = "I ran into a problem reaching the store assistant. Please try again in a moment."
)

type Config struct {
	SystemPrompt  string
	Greeting      string
	MaxToolRounds int
}

// Orchestrator owns one conversation: its session handle, its transcript,
// and the turn state machine. One turn is in flight at a time; the
// transcript has a single writer.
type Orchestrator struct {
	builder openrouterx.LLMBuilder
	tools   contractx.ToolGateway

	systemPrompt string
	maxRounds    int

	session    contractx.ChatSession
	newSession func(ctx context.Context) (contractx.ChatSession, error)
	transcript []contractx.Message

	now func() time.Time
	log zerolog.Logger
}

func New(builder openrouterx.LLMBuilder, tools contractx.ToolGateway, cfg Config) (*Orchestrator, error) {
	if builder == nil {
		return nil, errors.New("model builder is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}

	prompts := promptx.Load()
	systemPrompt := strings.TrimSpace(cfg.SystemPrompt)
	if systemPrompt == "" {
		systemPrompt = prompts.System
	}
	greeting := strings.TrimSpace(cfg.Greeting)
	if greeting == "" {
		greeting = prompts.Greeting
	}
	maxRounds := cfg.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxToolRounds
	}

	o := &Orchestrator{
		builder:      builder,
		tools:        tools,
		systemPrompt: systemPrompt,
		maxRounds:    maxRounds,
		now:          time.Now,
		log:          zlog.Logger,
	}
	o.newSession = func(ctx context.Context) (contractx.ChatSession, error) {
		model, err := builder.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create chat model: %w", err)
		}
		return sessionx.New(model, systemPrompt, tools.Infos())
	}

	o.record(contractx.NewMessage(contractx.SenderAgent, greeting, o.now()))

	return o, nil
}

// HandleMessage runs one full user turn and returns the agent's reply.
// Tool-level failures are absorbed into the conversation; only a failure
// talking to the reasoning service aborts the turn, leaving an error
// message in the transcript.
func (o *Orchestrator) HandleMessage(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalidMessage
	}

	o.log.Info().Str("stage", "input").Int("length", len(text)).Msg("user turn")
	o.record(contractx.NewMessage(contractx.SenderUser, text, o.now()))

	if check := guardrail.Check(text); !check.Passed {
		o.log.Info().Str("stage", "output").Bool("blocked", true).Msg("guardrail redirect")
		return o.reply(check.Message), nil
	}

	if o.session == nil {
		sess, err := o.newSession(ctx)
		if err != nil {
			o.recordError()
			return "", err
		}
		o.session = sess
	}

	msg, err := o.session.SendUserText(ctx, text)
	if err != nil {
		o.recordError()
		return "", err
	}

	for rounds := 0; len(msg.ToolCalls) > 0; rounds++ {
		if rounds >= o.maxRounds {
			o.log.Warn().Int("rounds", rounds).Msg("tool round budget exhausted")
			return o.reply(exhaustedReply), nil
		}

		reqs := toToolRequests(msg.ToolCalls)
		for _, req := range reqs {
			o.log.Info().
				Str("stage", "tool_call").
				Str("tool", req.Tool).
				Str("call_id", req.CallID).
				Msg("dispatch tool")
		}

		results, err := o.tools.Execute(ctx, reqs)
		if err != nil {
			o.recordError()
			return "", err
		}

		msg, err = o.session.SendToolResults(ctx, results)
		if err != nil {
			o.recordError()
			return "", err
		}
	}

	reply := strings.TrimSpace(msg.Content)
	if reply == "" {
		reply = fallbackReply
	}

	o.log.Info().Str("stage", "output").Int("length", len(reply)).Msg("agent reply")
	return o.reply(reply), nil
}

// Messages returns a copy of the transcript in chronological order.
func (o *Orchestrator) Messages() []contractx.Message {
	return append([]contractx.Message(nil), o.transcript...)
}

func (o *Orchestrator) reply(text string) string {
	o.record(contractx.NewMessage(contractx.SenderAgent, text, o.now()))
	return text
}

func (o *Orchestrator) record(msg contractx.Message) {
	o.transcript = append(o.transcript, msg)
}

func (o *Orchestrator) recordError() {
	o.record(contractx.NewErrorMessage(turnFailedReply, o.now()))
}

func toToolRequests(calls []schema.ToolCall) []contractx.ToolRequest {
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		reqs = append(reqs, contractx.ToolRequest{
			CallID:    call.ID,
			Tool:      strings.TrimSpace(call.Function.Name),
			Arguments: call.Function.Arguments,
		})
	}
	return reqs
}
