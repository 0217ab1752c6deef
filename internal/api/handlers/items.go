package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/goosebones/pokemon/internal/ebay"
	domain "github.com/goosebones/pokemon/pkg/types"
)

// Trading API error codes meaning the item does not exist or is not visible
// to the caller.
var itemNotFoundCodes = []string{"17", "21916354"}

// ItemsHandler looks up listings created by the lister.
type ItemsHandler struct {
	items ebay.ItemGetter
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(g ebay.ItemGetter) *ItemsHandler {
	return &ItemsHandler{items: g}
}

// GetItemInput is the request path for an item lookup.
type GetItemInput struct {
	ItemID string `path:"item_id" pattern:"^[0-9]+$" doc:"Marketplace item id" example:"110553001234"`
}

// GetItemOutput is the response body for an item lookup.
type GetItemOutput struct {
	Body *domain.ListedItem
}

// GetItem fetches one listing from the marketplace.
func (h *ItemsHandler) GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	item, err := h.items.GetItem(ctx, input.ItemID)
	if err != nil {
		var apiErr *ebay.APIError
		if errors.As(err, &apiErr) {
			for _, code := range itemNotFoundCodes {
				if apiErr.HasCode(code) {
					return nil, huma.Error404NotFound("item not found")
				}
			}
		}
		return nil, huma.Error502BadGateway("eBay API error: " + err.Error())
	}

	return &GetItemOutput{Body: item}, nil
}

// RegisterItemRoutes registers listing lookup endpoints with the Huma API.
func RegisterItemRoutes(api huma.API, h *ItemsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{item_id}",
		Summary:     "Get a listing",
		Description: "Fetches a listing from the Trading API by item id.",
		Tags:        []string{"ebay"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.GetItem)
}
