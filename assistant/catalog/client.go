package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrProductNotFound marks a catalog miss (the remote answered, but not
	// with a product). Transport failures are returned as plain errors.
	ErrProductNotFound = errors.New("product not found")

	errRemoteStatus = errors.New("unexpected catalog status")
)

const maxResponseSizeBytes = 2 << 20

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://fakestoreapi.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client talks to the remote store catalog over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid catalog base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Products fetches the full remote catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.getJSON(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductByID fetches one product. A non-2xx answer maps to
// ErrProductNotFound; network failures surface as-is.
func (c *Client) ProductByID(ctx context.Context, id int) (Product, error) {
	var out Product
	err := c.getJSON(ctx, "/products/"+strconv.Itoa(id), &out)
	if err != nil {
		if errors.Is(err, errRemoteStatus) {
			return Product{}, fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
		}
		return Product{}, err
	}
	return out, nil
}

// Categories fetches the remote category list.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute catalog request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("read catalog response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status=%d path=%s", errRemoteStatus, resp.StatusCode, path)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
