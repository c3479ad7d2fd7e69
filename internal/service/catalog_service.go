package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/shophub/internal/catalog"
	"github.com/mmynk/shophub/internal/metrics"
	"github.com/mmynk/shophub/internal/models"
)

// ProductSource fetches the product list.
type ProductSource interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

var _ ProductSource = (*catalog.Loader)(nil)

// CatalogService serves the product list for the storefront.
type CatalogService struct {
	source  ProductSource
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCatalogService creates a catalog service backed by source.
func NewCatalogService(source ProductSource, logger *slog.Logger, m *metrics.Metrics) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{source: source, logger: logger, metrics: m}
}

// Products loads the catalog. On failure it returns an empty, non-nil list
// together with the error so callers can render an empty catalog.
func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	products, err := s.source.Fetch(ctx)
	s.metrics.CatalogFetched(err == nil)
	if err != nil {
		s.logger.Error("Failed to load catalog", "error", err)
		return []models.Product{}, err
	}
	return products, nil
}
