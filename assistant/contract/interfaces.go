package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ChatSession is one running conversation with the reasoning service. A
// response carries either final text content or a batch of tool calls.
type ChatSession interface {
	SendUserText(ctx context.Context, text string) (*schema.Message, error)
	SendToolResults(ctx context.Context, results []ToolResult) (*schema.Message, error)
}

// ToolGateway advertises the tool catalog and dispatches one round of tool
// requests. Execute returns exactly one result per request, in request
// order; per-tool failures are absorbed into error-shaped results.
type ToolGateway interface {
	Infos() []*schema.ToolInfo
	Execute(ctx context.Context, reqs []ToolRequest) ([]ToolResult, error)
}

// CallbackRecorder persists callback requests in an external CRM.
type CallbackRecorder interface {
	Record(ctx context.Context, req CallbackRequest) error
}
