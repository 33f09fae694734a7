package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

// AddToCart is a new cart line. UnitPrice is the remote price of one unit; for
// hotels it is the total of a stay quote.
type AddToCart struct {
	ProductID   string             `json:"productId" validate:"required"`
	ProductType entity.ProductType `json:"productType" validate:"required,oneof=hotel flight bus"`
	Quantity    int                `json:"quantity" validate:"gte=1"`
	UnitPrice   float64            `json:"unitPrice" validate:"gte=0"`
}

// CartUsecase manages the logged in user's cart
type CartUsecase struct {
	carts    repository.CartRepository
	sessions SessionProvider
	logger   logger.Logger
}

// NewCartUsecase creates a new cart usecase
func NewCartUsecase(carts repository.CartRepository, sessions SessionProvider, logger logger.Logger) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		sessions: sessions,
		logger:   logger,
	}
}

// Cart returns the cart lines and their subtotal
func (c *CartUsecase) Cart(ctx context.Context, clientID string) (*entity.Cart, error) {
	state, err := c.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items, err := c.carts.GetCart(ctx, state.Token, state.UserID)
	if err != nil {
		return nil, err
	}
	subtotal := entity.CartSubtotal(items)
	return &entity.Cart{
		Items:    items,
		Subtotal: subtotal,
		Display:  utils.FormatCOP(subtotal),
	}, nil
}

// Add puts a product in the cart
func (c *CartUsecase) Add(ctx context.Context, clientID string, input AddToCart) (*entity.CartItem, error) {
	input.ProductID = strings.TrimSpace(input.ProductID)
	if err := validateInput("cart.add", input); err != nil {
		return nil, err
	}
	state, err := c.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return nil, err
	}

	item := entity.CartItem{
		UserID:      state.UserID,
		ProductID:   input.ProductID,
		ProductType: input.ProductType,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		TotalPrice:  input.UnitPrice * float64(input.Quantity),
	}
	added, err := c.carts.AddItem(ctx, state.Token, item)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Item added to cart", "clientId", clientID, "productId", item.ProductID, "type", item.ProductType)
	return added, nil
}

// UpdateQuantity changes a line's quantity and recomputes its total from the
// line's unit price
func (c *CartUsecase) UpdateQuantity(ctx context.Context, clientID, itemID string, quantity int) (*entity.CartItem, error) {
	if quantity < 1 {
		return nil, apperror.Validation("cart.update", "quantity must be at least 1")
	}
	state, err := c.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return nil, err
	}

	items, err := c.carts.GetCart(ctx, state.Token, state.UserID)
	if err != nil {
		return nil, err
	}
	var line *entity.CartItem
	for i := range items {
		if items[i].ID == itemID {
			line = &items[i]
			break
		}
	}
	if line == nil {
		return nil, apperror.NotFound("cart.update", fmt.Sprintf("cart item %s not found", itemID))
	}

	line.Quantity = quantity
	return c.carts.UpdateQuantity(ctx, state.Token, itemID, quantity, line.LineTotal())
}

// Remove deletes a cart line
func (c *CartUsecase) Remove(ctx context.Context, clientID, itemID string) error {
	state, err := c.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return err
	}
	return c.carts.RemoveItem(ctx, state.Token, itemID)
}
