// Package catalog fetches the product list from the remote placeholder source.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmynk/shophub/internal/models"
)

const (
	// DefaultURL is the public placeholder endpoint serving generic posts.
	DefaultURL = "https://jsonplaceholder.typicode.com/posts"

	// DefaultLimit is the fixed page size requested.
	DefaultLimit = 12

	// DescriptionLength is how many characters of the body are kept.
	DescriptionLength = 80

	minPrice   = 10
	priceRange = 100 // prices fall in [minPrice, minPrice+priceRange)
)

// ErrFetch is returned for any network, status or decoding failure.
// Callers show an empty catalog; no retry is attempted.
var ErrFetch = errors.New("failed to fetch catalog")

// post is the generic content record served by the remote source.
type post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Loader performs the one-shot catalog request.
type Loader struct {
	client *http.Client
	url    string
	limit  int
	price  func() int
	logger *slog.Logger
}

// Option customizes a Loader.
type Option func(*Loader)

// WithURL overrides the source endpoint.
func WithURL(u string) Option { return func(l *Loader) { l.url = u } }

// WithLimit overrides the page size.
func WithLimit(n int) Option { return func(l *Loader) { l.limit = n } }

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option { return func(l *Loader) { l.client = c } }

// WithPriceFunc overrides the random price generator.
func WithPriceFunc(f func() int) Option { return func(l *Loader) { l.price = f } }

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option { return func(l *Loader) { l.logger = logger } }

// NewLoader creates a Loader for DefaultURL with DefaultLimit and a 10s timeout.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    DefaultURL,
		limit:  DefaultLimit,
		price:  randomPrice,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func randomPrice() int {
	return rand.IntN(priceRange) + minPrice
}

// Fetch issues a single request and maps the result into products.
// Any failure yields ErrFetch and no partial results.
func (l *Loader) Fetch(ctx context.Context) ([]models.Product, error) {
	start := time.Now()

	reqURL, err := l.requestURL()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Warn("Catalog request failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("Catalog request returned error status", "url", reqURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	var posts []post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		l.logger.Warn("Catalog response did not decode", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if posts == nil {
		l.logger.Warn("Catalog response was not a list", "url", reqURL)
		return nil, fmt.Errorf("%w: response is not a list", ErrFetch)
	}

	if len(posts) > l.limit {
		posts = posts[:l.limit]
	}

	products := make([]models.Product, len(posts))
	for i, p := range posts {
		products[i] = l.toProduct(p)
	}

	l.logger.Info("Catalog loaded",
		"count", len(products),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return products, nil
}

func (l *Loader) requestURL() (string, error) {
	u, err := url.Parse(l.url)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("_limit", strconv.Itoa(l.limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (l *Loader) toProduct(p post) models.Product {
	return models.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: Truncate(p.Body, DescriptionLength) + "...",
		Price:       float64(l.price()),
		Image:       ImageURL(p.ID),
	}
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ImageURL returns the deterministic placeholder image for a product id.
func ImageURL(id int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/300/200.jpg", id)
}
