// Package ebay provides an eBay Trading API client abstracted behind interfaces
// for testability.
package ebay

import (
	"context"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// ListingClient submits listings to the marketplace.
type ListingClient interface {
	AddItem(ctx context.Context, p *domain.ListingPayload) (*domain.SubmitResult, error)
}

// ItemGetter looks up an existing listing by item id.
type ItemGetter interface {
	GetItem(ctx context.Context, itemID string) (*domain.ListedItem, error)
}

// TokenProvider defines the interface for obtaining auth tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenInvalidator is implemented by providers that cache tokens. The
// Trading client calls Invalidate when eBay rejects a token so the next
// Token call fetches a new one.
type TokenInvalidator interface {
	Invalidate()
}
