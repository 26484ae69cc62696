package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientProducts(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"id":1,"title":"Mens Cotton Jacket","price":55.99,"description":"great outerwear","category":"men's clothing","image":"https://img.example/1.jpg","rating":{"rate":4.7,"count":500}}]`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	products, err := client.Products(context.Background())
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("Products() returned %d products, want 1", len(products))
	}
	if products[0].Title != "Mens Cotton Jacket" {
		t.Fatalf("unexpected title: %s", products[0].Title)
	}
	if products[0].Rating.Count != 500 {
		t.Fatalf("unexpected rating count: %d", products[0].Rating.Count)
	}
}

func TestClientProductByIDNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.ProductByID(context.Background(), 42)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("ProductByID() error = %v, want ErrProductNotFound", err)
	}
}

func TestClientProductByIDTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.ProductByID(context.Background(), 1)
	if err == nil {
		t.Fatal("ProductByID() expected transport error")
	}
	if errors.Is(err, ErrProductNotFound) {
		t.Fatalf("transport failure must not map to ErrProductNotFound: %v", err)
	}
}

func TestClientCategories(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/categories" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `["electronics","jewelery","men's clothing","women's clothing"]`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	cats, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("Categories() returned %d entries, want 4", len(cats))
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{BaseURL: "   "}); err == nil {
		t.Fatal("NewClient() expected error for empty base url")
	}
	if _, err := NewClient(Config{BaseURL: "not a url"}); err == nil {
		t.Fatal("NewClient() expected error for malformed base url")
	}
}
