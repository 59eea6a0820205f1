package cart

import (
	"context"
	"log/slog"

	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/pricing"
)

// ProductFinder resolves the product snapshot pinned into a cart entry at
// add time. The catalog service implements it.
type ProductFinder interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// Service maps session keys to ledgers: each operation rehydrates the
// snapshot, applies the mutation in order, and persists before returning.
type Service struct {
	store  Store
	finder ProductFinder
}

func NewService(store Store, finder ProductFinder) *Service {
	return &Service{store: store, finder: finder}
}

// Get returns the read-only cart summary for a session.
func (s *Service) Get(ctx context.Context, sessionKey string) (*models.CartSummary, error) {
	ledger := s.load(ctx, sessionKey)

	return summarize(ledger), nil
}

// AddItem resolves the (productID, variantSKU) pair against the catalog and
// pins the snapshots into the ledger. The price captured here is immune to
// later catalog changes.
func (s *Service) AddItem(ctx context.Context, sessionKey string, req *models.AddItemRequest) (*models.CartSummary, error) {
	product, err := s.finder.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	variant := product.FindVariant(req.VariantSKU)
	if variant == nil {
		return nil, appErrors.NotFoundError("Variant not found on product")
	}

	ledger := s.load(ctx, sessionKey)
	if ledger.Add(*product, *variant, req.Quantity) {
		s.persist(ctx, sessionKey, ledger)
	}

	return summarize(ledger), nil
}

// UpdateQuantity replaces an entry's quantity in place. A non-positive
// quantity leaves the cart untouched; callers see the unchanged summary.
func (s *Service) UpdateQuantity(ctx context.Context, sessionKey string, req *models.UpdateQuantityRequest) (*models.CartSummary, error) {
	ledger := s.load(ctx, sessionKey)
	if ledger.UpdateQuantity(req.ProductID, req.VariantSKU, req.Quantity) {
		s.persist(ctx, sessionKey, ledger)
	}

	return summarize(ledger), nil
}

// RemoveItem deletes the matching entry; removing an absent entry is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionKey, productID, variantSKU string) (*models.CartSummary, error) {
	ledger := s.load(ctx, sessionKey)
	if ledger.Remove(productID, variantSKU) {
		s.persist(ctx, sessionKey, ledger)
	}

	return summarize(ledger), nil
}

// Clear empties the session's cart. Called on explicit user action and once
// per successful checkout.
func (s *Service) Clear(ctx context.Context, sessionKey string) error {
	ledger := s.load(ctx, sessionKey)
	ledger.Clear()

	if err := s.store.Delete(ctx, sessionKey); err != nil {
		slog.Warn("failed to clear persisted cart",
			slog.String("session", sessionKey),
			slog.String("error", err.Error()))
	}

	return nil
}

// load rehydrates the ledger. Any load failure yields an empty ledger; a
// broken store never blocks the session.
func (s *Service) load(ctx context.Context, sessionKey string) *Ledger {
	entries, err := s.store.Load(ctx, sessionKey)
	if err != nil {
		slog.Warn("failed to load cart snapshot, starting empty",
			slog.String("session", sessionKey),
			slog.String("error", err.Error()))

		return NewLedger()
	}

	return FromEntries(entries)
}

// persist writes the full snapshot. Write failures are logged, not
// surfaced: the in-memory state already reflects the mutation and the next
// successful save converges.
func (s *Service) persist(ctx context.Context, sessionKey string, ledger *Ledger) {
	if err := s.store.Save(ctx, sessionKey, ledger.Entries()); err != nil {
		slog.Warn("failed to persist cart snapshot",
			slog.String("session", sessionKey),
			slog.String("error", err.Error()))
	}
}

func summarize(ledger *Ledger) *models.CartSummary {
	subtotal := ledger.Total()
	shipping := pricing.ShippingCost(subtotal)

	return &models.CartSummary{
		Items:     ledger.Entries(),
		ItemCount: ledger.ItemCount(),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal + shipping,
	}
}
