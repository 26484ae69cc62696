package session

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/shopai/assistant/assistant/contract"
)

type fakeChatModel struct {
	responses   []*schema.Message
	generateErr error

	calls      [][]*schema.Message
	boundTools []*schema.ToolInfo
}

func (f *fakeChatModel) Generate(ctx context.Context, in []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	f.calls = append(f.calls, append([]*schema.Message(nil), in...))
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	if len(f.responses) == 0 {
		return nil, errors.New("no scripted response left")
	}
	msg := f.responses[0]
	f.responses = f.responses[1:]
	return msg, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, in []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	f.boundTools = tools
	return f, nil
}

func searchToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: "search_products",
		Desc: "Searches the catalog.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"keyword": {Type: schema.String, Required: true},
		}),
	}
}

func TestNewRequiresModel(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, "prompt", nil); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("New(nil) error = %v, want ErrValidation", err)
	}
}

func TestNewBindsToolsAndSystemInstruction(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{responses: []*schema.Message{schema.AssistantMessage("hello", nil)}}
	sess, err := New(fake, "You are a shopping assistant.", []*schema.ToolInfo{searchToolInfo()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(fake.boundTools) != 1 || fake.boundTools[0].Name != "search_products" {
		t.Fatalf("tools not bound: %+v", fake.boundTools)
	}

	if _, err := sess.SendUserText(context.Background(), "hi"); err != nil {
		t.Fatalf("SendUserText() error = %v", err)
	}

	sent := fake.calls[0]
	if len(sent) != 2 {
		t.Fatalf("model received %d messages, want 2", len(sent))
	}
	if sent[0].Role != schema.System {
		t.Fatalf("first message role = %s, want system", sent[0].Role)
	}
	if sent[1].Role != schema.User || sent[1].Content != "hi" {
		t.Fatalf("unexpected user message: %+v", sent[1])
	}

	history := sess.History()
	if len(history) != 3 {
		t.Fatalf("history has %d messages, want 3", len(history))
	}
	if history[2].Role != schema.Assistant || history[2].Content != "hello" {
		t.Fatalf("assistant reply not appended: %+v", history[2])
	}
}

func TestSendUserTextRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{}
	sess, err := New(fake, "", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := sess.SendUserText(context.Background(), "   "); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("SendUserText() error = %v, want ErrValidation", err)
	}
	if len(fake.calls) != 0 {
		t.Fatal("model must not be called for empty input")
	}
}

func TestSendToolResultsAppendsToolMessages(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{responses: []*schema.Message{
		schema.AssistantMessage("", []schema.ToolCall{{
			ID:       "call-1",
			Function: schema.FunctionCall{Name: "search_products", Arguments: `{"keyword":"jacket"}`},
		}}),
		schema.AssistantMessage("Found one jacket.", nil),
	}}
	sess, err := New(fake, "prompt", []*schema.ToolInfo{searchToolInfo()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	msg, err := sess.SendUserText(context.Background(), "any jackets?")
	if err != nil {
		t.Fatalf("SendUserText() error = %v", err)
	}
	if len(msg.ToolCalls) != 1 {
		t.Fatalf("expected a tool call, got %+v", msg)
	}

	reply, err := sess.SendToolResults(context.Background(), []contractx.ToolResult{
		{CallID: "call-1", Tool: "search_products", Result: []string{"jacket"}},
	})
	if err != nil {
		t.Fatalf("SendToolResults() error = %v", err)
	}
	if reply.Content != "Found one jacket." {
		t.Fatalf("unexpected reply: %q", reply.Content)
	}

	sent := fake.calls[1]
	last := sent[len(sent)-1]
	if last.Role != schema.Tool {
		t.Fatalf("last message role = %s, want tool", last.Role)
	}
	if last.ToolCallID != "call-1" {
		t.Fatalf("tool message call id = %s, want call-1", last.ToolCallID)
	}
}

func TestSendToolResultsRejectsEmptyRound(t *testing.T) {
	t.Parallel()

	sess, err := New(&fakeChatModel{}, "", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := sess.SendToolResults(context.Background(), nil); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("SendToolResults() error = %v, want ErrValidation", err)
	}
}

func TestGenerateFailureWrapsModelInvoke(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{generateErr: errors.New("rate limited")}
	sess, err := New(fake, "", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := sess.SendUserText(context.Background(), "hi"); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("SendUserText() error = %v, want ErrModelInvoke", err)
	}
}

func TestGenerateNilResponseIsSchemaViolation(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{responses: []*schema.Message{nil}}
	sess, err := New(fake, "", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := sess.SendUserText(context.Background(), "hi"); !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("SendUserText() error = %v, want ErrSchemaViolation", err)
	}
}
