package tool

import (
	"context"
	"errors"

	contractx "github.com/shopai/assistant/assistant/contract"
	ordersx "github.com/shopai/assistant/assistant/orders"
)

func (r *Registry) orderStatus(ctx context.Context, req contractx.ToolRequest, args map[string]any) contractx.ToolResult {
	orderID, err := stringArg(args, "orderId")
	if err != nil {
		return errResult(req, err.Error())
	}
	email, err := stringArg(args, "email")
	if err != nil {
		return errResult(req, err.Error())
	}

	order, err := r.orders.Status(ctx, orderID, email)
	switch {
	case err == nil:
		return okResult(req, order)
	case errors.Is(err, ordersx.ErrOrderNotFound):
		return okResult(req, toolError{
			Error: "Order ID not found.",
			Hint:  "Valid IDs look like 'ORD-123'.",
		})
	case errors.Is(err, ordersx.ErrEmailMismatch):
		// Deliberately silent about the recorded email.
		return okResult(req, toolError{
			Error: "ACCESS DENIED: Email does not match order records.",
		})
	default:
		return errResult(req, err.Error())
	}
}
