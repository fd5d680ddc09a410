// Package client is a Go client for the products API. Failed calls are
// normalized into a single *APIError shape carrying the server's message and
// any per-field validation details.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Product mirrors the API-facing record shape.
type Product struct {
	ID                              string    `json:"id"`
	ProductName                     string    `json:"productName"`
	StorageTemperature              float64   `json:"storageTemperature"`
	RelativeHumidity                float64   `json:"relativeHumidity"`
	ApproximateStorageLife          int       `json:"approximateStorageLife"`
	WaterContentPercent             float64   `json:"waterContentPercent"`
	HighestFreezingPointTemperature float64   `json:"highestFreezingPointTemperature"`
	SpecificHeatAboveFreezingPoint  float64   `json:"specificHeatAboveFreezingPoint"`
	SpecificHeatBelowFreezingPoint  float64   `json:"specificHeatBelowFreezingPoint"`
	LatentHeat                      float64   `json:"latentHeat"`
	CreatedAt                       time.Time `json:"createdAt"`
	UpdatedAt                       time.Time `json:"updatedAt"`
}

// CreateProductRequest is the full field set required on create.
type CreateProductRequest struct {
	ProductName                     string  `json:"productName"`
	StorageTemperature              float64 `json:"storageTemperature"`
	RelativeHumidity                float64 `json:"relativeHumidity"`
	ApproximateStorageLife          int     `json:"approximateStorageLife"`
	WaterContentPercent             float64 `json:"waterContentPercent"`
	HighestFreezingPointTemperature float64 `json:"highestFreezingPointTemperature"`
	SpecificHeatAboveFreezingPoint  float64 `json:"specificHeatAboveFreezingPoint"`
	SpecificHeatBelowFreezingPoint  float64 `json:"specificHeatBelowFreezingPoint"`
	LatentHeat                      float64 `json:"latentHeat"`
}

// UpdateProductRequest is a partial field set: nil fields are left untouched.
type UpdateProductRequest struct {
	ProductName                     *string  `json:"productName,omitempty"`
	StorageTemperature              *float64 `json:"storageTemperature,omitempty"`
	RelativeHumidity                *float64 `json:"relativeHumidity,omitempty"`
	ApproximateStorageLife          *int     `json:"approximateStorageLife,omitempty"`
	WaterContentPercent             *float64 `json:"waterContentPercent,omitempty"`
	HighestFreezingPointTemperature *float64 `json:"highestFreezingPointTemperature,omitempty"`
	SpecificHeatAboveFreezingPoint  *float64 `json:"specificHeatAboveFreezingPoint,omitempty"`
	SpecificHeatBelowFreezingPoint  *float64 `json:"specificHeatBelowFreezingPoint,omitempty"`
	LatentHeat                      *float64 `json:"latentHeat,omitempty"`
}

// Page is one slice of the record collection plus its pagination metadata.
type Page struct {
	Items        []Product
	TotalItems   int64
	TotalPages   int
	CurrentPage  int
	ItemsPerPage int
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned for every non-success HTTP status.
type APIError struct {
	StatusCode int
	Message    string
	Details    []FieldError
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	fields := make([]string, len(e.Details))
	for i, d := range e.Details {
		fields[i] = d.Field
	}
	return fmt.Sprintf("api error (status %d): %s [%s]", e.StatusCode, e.Message, strings.Join(fields, ", "))
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      *envelopeError  `json:"error"`
	Pagination *pagination     `json:"pagination"`
}

type envelopeError struct {
	Message string       `json:"message"`
	Details []FieldError `json:"details"`
}

type pagination struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context, page, limit int) (Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	env, err := c.do(ctx, http.MethodGet, "/api/products?"+query.Encode(), nil)
	if err != nil {
		return Page{}, err
	}

	var items []Product
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return Page{}, fmt.Errorf("decode product list: %w", err)
	}

	result := Page{Items: items}
	if env.Pagination != nil {
		result.TotalItems = env.Pagination.TotalItems
		result.TotalPages = env.Pagination.TotalPages
		result.CurrentPage = env.Pagination.CurrentPage
		result.ItemsPerPage = env.Pagination.ItemsPerPage
	}
	return result, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil)
	if err != nil {
		return Product{}, err
	}
	return decodeProduct(env.Data)
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (Product, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/products", req)
	if err != nil {
		return Product{}, err
	}
	return decodeProduct(env.Data)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (Product, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), req)
	if err != nil {
		return Product{}, err
	}
	return decodeProduct(env.Data)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Request failed"}
		if decodeErr == nil && env.Error != nil {
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
			apiErr.Details = env.Error.Details
		}
		return envelope{}, apiErr
	}

	if decodeErr != nil {
		return envelope{}, fmt.Errorf("decode response: %w", decodeErr)
	}
	return env, nil
}

func decodeProduct(raw json.RawMessage) (Product, error) {
	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return Product{}, fmt.Errorf("decode product: %w", err)
	}
	return p, nil
}
