package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/shopai/assistant/assistant/contract"
)

// Policy topics in match order; topic matching is substring-based so
// "return policy" hits "return".
var policyTopics = []string{"return", "shipping", "support"}

var policies = map[string]string{
	"return":   "Returns accepted within 30 days. Items must be in original condition.",
	"shipping": "Standard shipping (3-5 days). Express available.",
	"support":  "Email support@shopai.com",
}

const policyFallback = "I can help with return, shipping, or support policies."

var supportContacts = map[string]string{
	"sales":     "Sales Team: 1-800-BUY-NOW (Mon-Fri 9am-5pm)",
	"technical": "Tech Support: 1-800-FIX-IT (24/7 hotline)",
	"returns":   "Returns Dept: returns@shopai.com",
	"general":   "General Inquiries: 1-800-SHOP-AI",
}

func (r *Registry) storePolicy(req contractx.ToolRequest, args map[string]any) contractx.ToolResult {
	topic, err := stringArg(args, "topic")
	if err != nil {
		return errResult(req, err.Error())
	}

	lowered := strings.ToLower(topic)
	for _, key := range policyTopics {
		if strings.Contains(lowered, key) {
			return okResult(req, policies[key])
		}
	}
	return okResult(req, policyFallback)
}

func (r *Registry) supportInfo(req contractx.ToolRequest, args map[string]any) contractx.ToolResult {
	department, err := stringArg(args, "department")
	if err != nil {
		return errResult(req, err.Error())
	}

	contact, ok := supportContacts[strings.ToLower(department)]
	if !ok {
		contact = supportContacts["general"]
	}
	return okResult(req, contact)
}

func (r *Registry) scheduleCallback(ctx context.Context, req contractx.ToolRequest, args map[string]any) contractx.ToolResult {
	name, err := stringArg(args, "customerName")
	if err != nil {
		return errResult(req, err.Error())
	}
	phone, err := stringArg(args, "phoneNumber")
	if err != nil {
		return errResult(req, err.Error())
	}
	reason, err := stringArg(args, "reason")
	if err != nil {
		return errResult(req, err.Error())
	}

	// Best-effort: a CRM outage must not fail the customer's request.
	if err := r.crm.Record(ctx, contractx.CallbackRequest{
		CustomerName: name,
		PhoneNumber:  phone,
		Reason:       reason,
		RequestedAt:  time.Now().UTC(),
	}); err != nil {
		log.Warn().Err(err).Msg("record callback request")
	}

	return okResult(req, fmt.Sprintf(
		"SUCCESS: Callback scheduled for %s at %s. Ticket created for: %q.",
		name, phone, reason,
	))
}
