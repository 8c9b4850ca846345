package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/internal/catalog"
	"github.com/formcraft/formcraft-backend/pkg/db/models"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/logger"
	"github.com/formcraft/formcraft-backend/pkg/metrics"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// AddItemInput is the payload to add a product to the cart. Selections
// map resolved group ids to chosen option ids.
type AddItemInput struct {
	ProductID  string            `json:"product_id" validate:"required"`
	Qty        int               `json:"qty" validate:"required,min=1"`
	Selections map[string]string `json:"selections"`
}

// View is the cart as the storefront renders it.
type View struct {
	Lines    types.CartLines `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	TotalQty int             `json:"total_qty"`
}

// Service exposes session cart operations.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*View, error)
	UpdateQty(ctx context.Context, sessionID, cartID string, delta int) (*View, error)
	RemoveItem(ctx context.Context, sessionID, cartID string) (*View, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store   Store
	catalog catalog.Service
	logg    *logger.Logger
}

// NewService wires the cart service.
func NewService(store Store, catalogSvc catalog.Service, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{store: store, catalog: catalogSvc, logg: logg}, nil
}

func (s *service) view(lines types.CartLines) *View {
	return &View{
		Lines:    lines,
		Subtotal: Subtotal(lines),
		TotalQty: TotalQty(lines),
	}
}

func (s *service) GetCart(ctx context.Context, sessionID string) (*View, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return s.view(lines), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*View, error) {
	if input.Qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}
	qty := input.Qty

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	lookup := catalog.LookupFrom(products)

	product, ok := lookup(input.ProductID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	line, err := buildLine(product, lookup, qty, input.Selections)
	if err != nil {
		return nil, err
	}

	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	lines = Append(lines, *line)
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}

	metrics.CartAdds.WithLabelValues(product.Type.String()).Inc()
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id": product.ID,
		"qty":        qty,
	}), "cart line added")

	return s.view(lines), nil
}

// buildLine snapshots the product into a cart line. Selections are
// validated against the resolved groups: every required group needs an
// answer, and answers must reference a real option.
func buildLine(product *models.Product, lookup catalog.Lookup, qty int, selections map[string]string) (*types.CartLine, error) {
	groups := catalog.ResolveVariantGroups(product, lookup)

	var missing []string
	variantSelections := types.StringMap{}
	variantCodes := types.StringMap{}
	var order []string

	for _, g := range groups {
		optionID, answered := selections[g.ID]
		if !answered {
			if g.Required {
				missing = append(missing, g.Name)
			}
			continue
		}

		var option *types.VariantOption
		for i := range g.Options {
			if g.Options[i].ID == optionID {
				option = &g.Options[i]
				break
			}
		}
		if option == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown option %q for %s", optionID, g.Name))
		}

		variantSelections[g.ID] = option.Label
		variantCodes[g.ID] = option.Code
		order = append(order, g.ID)
	}

	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required variants").
			WithDetails(map[string]any{"missing": missing})
	}

	line := &types.CartLine{
		CartID:            uuid.NewString(),
		ProductID:         product.ID,
		ProductName:       product.Name,
		ProductCode:       product.Code,
		ProductImages:     product.Images,
		UnitPrice:         product.Price,
		Qty:               qty,
		VariantSelections: variantSelections,
		VariantCodes:      variantCodes,
		SelectionOrder:    order,
		IsSet:             product.IsSet(),
	}

	if product.IsSet() {
		line.SetDetails = buildSetDetails(product, lookup, variantSelections, variantCodes)
	}
	return line, nil
}

// buildSetDetails snapshots each member's resolved choice so receipts
// and exports survive later catalog edits.
func buildSetDetails(set *models.Product, lookup catalog.Lookup, selections, codes types.StringMap) types.SetMemberDetails {
	var details types.SetMemberDetails
	for _, item := range set.SetItems {
		member, ok := lookup(item.ProductID)
		if !ok || member.IsSet() {
			continue
		}

		detail := types.SetMemberDetail{
			ProductName: member.Name,
			ProductCode: member.Code,
		}
		for _, g := range member.Variants {
			key := catalog.GroupKey(member.ID, g.ID)
			label, ok := selections[key]
			if !ok {
				continue
			}
			if detail.VariantLabel != "" {
				detail.VariantLabel += "/"
				detail.VariantCode += "_"
			}
			detail.VariantLabel += label
			detail.VariantCode += codes[key]
		}
		details = append(details, detail)
	}
	return details
}

func (s *service) UpdateQty(ctx context.Context, sessionID, cartID string, delta int) (*View, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	updated, found := UpdateQty(lines, cartID, delta)
	if !found {
		// Unknown cart id is a no-op, not an error.
		return s.view(lines), nil
	}

	if err := s.store.Save(ctx, sessionID, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return s.view(updated), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, cartID string) (*View, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	updated, found := Remove(lines, cartID)
	if !found {
		return s.view(lines), nil
	}

	if err := s.store.Save(ctx, sessionID, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return s.view(updated), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}
