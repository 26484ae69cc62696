// Package tool holds the store tool catalog advertised to the reasoning
// service and the dispatcher that executes requested calls. Failures
// inside a tool are absorbed into error-shaped results; only context-level
// failures escape Execute.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"
	"golang.org/x/sync/errgroup"

	"github.com/shopai/assistant/assistant/catalog"
	contractx "github.com/shopai/assistant/assistant/contract"
	ordersx "github.com/shopai/assistant/assistant/orders"
)

const (
	ToolSearchProducts    = "search_products"
	ToolGetProductDetails = "get_product_details"
	ToolGetStorePolicy    = "get_store_policy"
	ToolGetCategories     = "get_categories"
	ToolGetSupportInfo    = "get_support_info"
	ToolScheduleCallback  = "schedule_callback"
	ToolGetOrderStatus    = "get_order_status"
)

// RemoteCatalog is the remote store catalog boundary.
type RemoteCatalog interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	ProductByID(ctx context.Context, id int) (catalog.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

var _ contractx.ToolGateway = (*Registry)(nil)

// Registry wires every tool executor to its data source.
type Registry struct {
	remote RemoteCatalog
	local  *catalog.LocalStore
	orders *ordersx.Store
	crm    contractx.CallbackRecorder
}

func NewRegistry(
	remote RemoteCatalog,
	local *catalog.LocalStore,
	orderStore *ordersx.Store,
	recorder contractx.CallbackRecorder,
) (*Registry, error) {
	if remote == nil {
		return nil, errors.New("remote catalog is required")
	}
	if local == nil {
		return nil, errors.New("local product store is required")
	}
	if orderStore == nil {
		return nil, errors.New("order store is required")
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Registry{
		remote: remote,
		local:  local,
		orders: orderStore,
		crm:    recorder,
	}, nil
}

// Infos returns the static tool descriptors bound to the session at
// creation time.
func (r *Registry) Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolSearchProducts,
			Desc: "Searches the catalog. Can search for specific items ('jacket') or categories ('electronics').",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"keyword": {Type: schema.String, Desc: "Product name or category", Required: true},
			}),
		},
		{
			Name: ToolGetProductDetails,
			Desc: "Get full details, rating, and description for a specific product ID.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.Integer, Desc: "Product ID", Required: true},
			}),
		},
		{
			Name: ToolGetStorePolicy,
			Desc: "Get return, shipping, or support policies.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"topic": {Type: schema.String, Desc: "Policy topic", Required: true},
			}),
		},
		{
			Name:        ToolGetCategories,
			Desc:        "List the main product categories available.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: ToolGetSupportInfo,
			Desc: "Get contact details for a specific department (sales, technical, returns, or general).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"department": {Type: schema.String, Desc: "Department needed (e.g. 'sales' for buying, 'technical' for broken items)", Required: true},
			}),
		},
		{
			Name: ToolScheduleCallback,
			Desc: "Schedule a phone call for the customer. Use this when a user asks for a callback or wants someone to call them.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customerName": {Type: schema.String, Desc: "Customer's name", Required: true},
				"phoneNumber":  {Type: schema.String, Desc: "Phone number provided by user", Required: true},
				"reason":       {Type: schema.String, Desc: "Reason for the call", Required: true},
			}),
		},
		{
			Name: ToolGetOrderStatus,
			Desc: "Check order status. Requires Order ID and customer email for verification.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"orderId": {Type: schema.String, Desc: "Order ID (e.g. ORD-123)", Required: true},
				"email":   {Type: schema.String, Desc: "Customer email for verification", Required: true},
			}),
		},
	}
}

// Execute runs one round of tool requests. Sibling calls run concurrently;
// all results are gathered before returning, in request order.
func (r *Registry) Execute(ctx context.Context, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	results := make([]contractx.ToolResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = r.dispatch(gctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Registry) dispatch(ctx context.Context, req contractx.ToolRequest) contractx.ToolResult {
	args, err := decodeArgs(req.Arguments)
	if err != nil {
		return errResult(req, "invalid tool arguments: "+err.Error())
	}

	switch req.Tool {
	case ToolSearchProducts:
		return r.searchProducts(ctx, req, args)
	case ToolGetProductDetails:
		return r.productDetails(ctx, req, args)
	case ToolGetStorePolicy:
		return r.storePolicy(req, args)
	case ToolGetCategories:
		return r.categories(ctx, req)
	case ToolGetSupportInfo:
		return r.supportInfo(req, args)
	case ToolScheduleCallback:
		return r.scheduleCallback(ctx, req, args)
	case ToolGetOrderStatus:
		return r.orderStatus(ctx, req, args)
	default:
		return errResult(req, fmt.Sprintf("unknown tool %q", req.Tool))
	}
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, contractx.CallbackRequest) error {
	return nil
}

// toolError is the structured error payload fed back to the model for
// lookup misses and authorization failures.
type toolError struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func okResult(req contractx.ToolRequest, payload any) contractx.ToolResult {
	return contractx.ToolResult{
		CallID: req.CallID,
		Tool:   req.Tool,
		Result: payload,
	}
}

func errResult(req contractx.ToolRequest, msg string) contractx.ToolResult {
	return contractx.ToolResult{
		CallID: req.CallID,
		Tool:   req.Tool,
		Error:  msg,
	}
}

func decodeArgs(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return map[string]any{}, nil
	}
	args := map[string]any{}
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, err
	}
	return args, nil
}

func stringArg(args map[string]any, name string) (string, error) {
	raw, ok := args[name]
	if !ok {
		return "", fmt.Errorf("%s is required", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return strings.TrimSpace(s), nil
}

func intArg(args map[string]any, name string) (int, error) {
	raw, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", name)
	}
}
