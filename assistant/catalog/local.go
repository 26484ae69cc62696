package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed data/products.json
var localProductsRaw []byte

// Keywords that point at merchandise the remote catalog does not carry
// (children's items and jewelry). Searches containing one of these hit the
// local fixture set before the remote catalog.
var localPriorityTerms = []string{
	"kid", "kids", "child", "children", "youth", "teen", "teenager", "young", "boy", "girl",
	"gold", "silver", "jewelry", "jewellery", "ring", "necklace", "bracelet", "earring",
	"pendant", "chain", "diamond", "wedding band", "engagement", "hoop", "stud", "anklet",
	"brooch", "charm",
}

// IsLocalPriority reports whether the keyword should be served from the
// local fixture set first.
func IsLocalPriority(keyword string) bool {
	lowered := strings.ToLower(keyword)
	if lowered == "" {
		return false
	}
	for _, term := range localPriorityTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// LocalStore is the read-only fixture product set, parsed once at startup.
type LocalStore struct {
	products []Product
}

func NewLocalStore() (*LocalStore, error) {
	var products []Product
	if err := json.Unmarshal(localProductsRaw, &products); err != nil {
		return nil, fmt.Errorf("parse local products fixture: %w", err)
	}
	return &LocalStore{products: products}, nil
}

// Search matches the keyword case-insensitively against title, category,
// and description, returning at most limit products. An empty keyword
// returns the first limit products.
func (s *LocalStore) Search(keyword string, limit int) []Product {
	if limit <= 0 {
		return nil
	}
	if strings.TrimSpace(keyword) == "" {
		if len(s.products) <= limit {
			return append([]Product(nil), s.products...)
		}
		return append([]Product(nil), s.products[:limit]...)
	}

	lowered := strings.ToLower(keyword)
	matches := make([]Product, 0, limit)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Title), lowered) ||
			strings.Contains(strings.ToLower(p.Category), lowered) ||
			strings.Contains(strings.ToLower(p.Description), lowered) {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// ByID returns the fixture product with the given id.
func (s *LocalStore) ByID(id int) (Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
