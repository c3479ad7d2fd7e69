package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/shophub/internal/auth"
	"github.com/mmynk/shophub/internal/metrics"
	"github.com/mmynk/shophub/internal/storage"
)

// Options configures a Shop.
type Options struct {
	Store      storage.Store
	Tokens     *auth.SessionTokens
	Catalog    ProductSource
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	AuthDelay  time.Duration
	BcryptCost int
}

// Shop owns the session, cart and catalog state for one storefront.
type Shop struct {
	Session *SessionService
	Cart    *CartService
	Catalog *CatalogService

	logger *slog.Logger
}

// NewShop wires the managers over a shared store. Call Restore before serving.
func NewShop(opts Options) *Shop {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := storage.NewUsers(opts.Store, logger)
	authenticator := auth.NewPasswordAuthenticator(users, opts.BcryptCost)

	return &Shop{
		Session: NewSessionService(opts.Store, authenticator, opts.Tokens, logger, opts.Metrics, opts.AuthDelay),
		Cart:    NewCartService(opts.Store, logger, opts.Metrics),
		Catalog: NewCatalogService(opts.Catalog, logger, opts.Metrics),
		logger:  logger,
	}
}

// Restore loads the persisted session and cart.
func (s *Shop) Restore(ctx context.Context) {
	authenticated := s.Session.RestoreSession(ctx)
	cart := s.Cart.RestoreCart(ctx)
	s.logger.Info("State restored", "authenticated", authenticated, "cart_count", cart.Count)
}
