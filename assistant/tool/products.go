package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopai/assistant/assistant/catalog"
	contractx "github.com/shopai/assistant/assistant/contract"
)

const (
	maxSearchResults        = 5
	summaryDescriptionLimit = 100
)

// productSummary is the truncated projection returned by search_products.
// Rating and category are dropped for brevity.
type productSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

type productDetail struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      string  `json:"rating"`
}

func (r *Registry) searchProducts(ctx context.Context, req contractx.ToolRequest, args map[string]any) contractx.ToolResult {
	keyword, err := stringArg(args, "keyword")
	if err != nil {
		return errResult(req, err.Error())
	}

	// Children's items and jewelry only exist in the local fixture set.
	if catalog.IsLocalPriority(keyword) {
		if local := r.local.Search(keyword, maxSearchResults); len(local) > 0 {
			return okResult(req, summarize(local))
		}
	}

	remote, err := r.remote.Products(ctx)
	if err != nil {
		// Remote unavailable: recover from the fixture set.
		return okResult(req, summarize(r.local.Search(keyword, maxSearchResults)))
	}

	matches := filterRemote(remote, keyword)
	if len(matches) == 0 {
		if local := r.local.Search(keyword, maxSearchResults); len(local) > 0 {
			matches = local
		}
	}

	return okResult(req, summarize(matches))
}

func (r *Registry) productDetails(ctx context.Context, req contractx.ToolRequest, args map[string]any) contractx.ToolResult {
	id, err := intArg(args, "product_id")
	if err != nil {
		return errResult(req, err.Error())
	}

	if id >= catalog.LocalIDFloor {
		if p, ok := r.local.ByID(id); ok {
			return okResult(req, detail(p))
		}
	}

	p, err := r.remote.ProductByID(ctx, id)
	switch {
	case err == nil:
		return okResult(req, detail(p))
	case errors.Is(err, catalog.ErrProductNotFound):
		return okResult(req, toolError{Error: "Product not found"})
	default:
		if p, ok := r.local.ByID(id); ok {
			return okResult(req, detail(p))
		}
		return okResult(req, toolError{Error: "Failed to fetch details"})
	}
}

func (r *Registry) categories(ctx context.Context, req contractx.ToolRequest) contractx.ToolResult {
	cats, err := r.remote.Categories(ctx)
	if err != nil || cats == nil {
		// No local fallback for categories; an empty list is the answer.
		return okResult(req, []string{})
	}
	return okResult(req, cats)
}

func filterRemote(products []catalog.Product, keyword string) []catalog.Product {
	if keyword == "" {
		if len(products) <= maxSearchResults {
			return products
		}
		return products[:maxSearchResults]
	}

	matches := make([]catalog.Product, 0, maxSearchResults)
	for _, p := range products {
		if containsFold(p.Title, keyword) || containsFold(p.Category, keyword) {
			matches = append(matches, p)
			if len(matches) == maxSearchResults {
				break
			}
		}
	}
	return matches
}

func summarize(products []catalog.Product) []productSummary {
	out := make([]productSummary, 0, len(products))
	for _, p := range products {
		out = append(out, productSummary{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Description: truncate(p.Description, summaryDescriptionLimit),
			Image:       p.Image,
		})
	}
	return out
}

func detail(p catalog.Product) productDetail {
	return productDetail{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      fmt.Sprintf("%g/5 (%d reviews)", p.Rating.Rate, p.Rating.Count),
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}
