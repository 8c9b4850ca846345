package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/formcraft/formcraft-backend/pkg/db"
	"github.com/formcraft/formcraft-backend/pkg/db/models"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// Service exposes catalog read and admin replace operations.
type Service interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ResolveGroups(ctx context.Context, id string) (*models.Product, []VariantGroupView, error)
	ReplaceCatalog(ctx context.Context, products []models.Product) ([]models.Product, error)
}

// VariantGroupView is a resolved group ready for the storefront.
type VariantGroupView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Options  []VariantOptionView
}

// VariantOptionView mirrors types.VariantOption for the API surface.
type VariantOptionView struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Code  string  `json:"code"`
	Image *string `json:"image,omitempty"`
}

type service struct {
	client *db.Client
	repo   Repository
	logg   *logger.Logger
}

// NewService wires the catalog service.
func NewService(client *db.Client, repo Repository, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{client: client, repo: repo, logg: logg}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding product")
	}
	return product, nil
}

func (s *service) ResolveGroups(ctx context.Context, id string) (*models.Product, []VariantGroupView, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog for resolution")
	}

	groups := ResolveVariantGroups(product, LookupFrom(products))
	views := make([]VariantGroupView, 0, len(groups))
	for _, g := range groups {
		view := VariantGroupView{ID: g.ID, Name: g.Name, Required: g.Required}
		for _, opt := range g.Options {
			view.Options = append(view.Options, VariantOptionView(opt))
		}
		views = append(views, view)
	}
	return product, views, nil
}

func (s *service) ReplaceCatalog(ctx context.Context, products []models.Product) ([]models.Product, error) {
	if err := validateCatalog(products); err != nil {
		return nil, err
	}

	// Dangling member references are tolerated so the admin can delete
	// a single before reworking the sets that bundle it; the resolver
	// skips missing members at read time.
	if dangling := danglingSetRefs(products); len(dangling) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dangling", dangling),
			"catalog sets reference missing singles")
	}

	for i := range products {
		products[i].Position = i
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceAll(ctx, products)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing catalog")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_count", len(products)), "catalog replaced")
	return products, nil
}

// danglingSetRefs lists set members whose product no longer exists as a
// single, formatted "set/member".
func danglingSetRefs(products []models.Product) []string {
	singles := make(map[string]bool, len(products))
	for _, p := range products {
		if !p.IsSet() {
			singles[p.ID] = true
		}
	}

	var dangling []string
	for _, p := range products {
		if !p.IsSet() {
			continue
		}
		for _, item := range p.SetItems {
			if !singles[item.ProductID] {
				dangling = append(dangling, p.ID+"/"+item.ProductID)
			}
		}
	}
	return dangling
}

func validateCatalog(products []models.Product) error {
	seenIDs := make(map[string]bool, len(products))
	seenCodes := make(map[string]bool, len(products))

	var problems []string
	for _, p := range products {
		switch {
		case p.ID == "":
			problems = append(problems, "product id must not be empty")
		case strings.Contains(p.ID, GroupKeySeparator):
			problems = append(problems, fmt.Sprintf("product id %q must not contain %q", p.ID, GroupKeySeparator))
		case seenIDs[p.ID]:
			problems = append(problems, fmt.Sprintf("duplicate product id %q", p.ID))
		}
		seenIDs[p.ID] = true

		switch {
		case p.Code == "":
			problems = append(problems, fmt.Sprintf("product %q needs a code", p.ID))
		case seenCodes[p.Code]:
			problems = append(problems, fmt.Sprintf("duplicate product code %q", p.Code))
		}
		seenCodes[p.Code] = true

		if p.Name == "" {
			problems = append(problems, fmt.Sprintf("product %q needs a name", p.ID))
		}
		if !p.Type.IsValid() {
			problems = append(problems, fmt.Sprintf("product %q has invalid type %q", p.ID, p.Type))
		}
		if p.Price.IsNegative() {
			problems = append(problems, fmt.Sprintf("product %q price must not be negative", p.ID))
		}

		if p.IsSet() {
			if len(p.SetItems) == 0 {
				problems = append(problems, fmt.Sprintf("set %q needs at least one member", p.ID))
			}
			if len(p.Variants) > 0 {
				problems = append(problems, fmt.Sprintf("set %q must not declare its own variant groups", p.ID))
			}
			continue
		}

		groupIDs := make(map[string]bool, len(p.Variants))
		for _, g := range p.Variants {
			switch {
			case g.ID == "":
				problems = append(problems, fmt.Sprintf("product %q has a variant group without id", p.ID))
			case strings.Contains(g.ID, GroupKeySeparator):
				problems = append(problems, fmt.Sprintf("group id %q must not contain %q", g.ID, GroupKeySeparator))
			case groupIDs[g.ID]:
				problems = append(problems, fmt.Sprintf("product %q has duplicate group id %q", p.ID, g.ID))
			}
			groupIDs[g.ID] = true

			if g.Name == "" {
				problems = append(problems, fmt.Sprintf("group %q needs a name", g.ID))
			}
			if len(g.Options) == 0 {
				problems = append(problems, fmt.Sprintf("group %q needs at least one option", g.ID))
			}

			optionIDs := make(map[string]bool, len(g.Options))
			for _, opt := range g.Options {
				if opt.ID == "" || opt.Label == "" {
					problems = append(problems, fmt.Sprintf("group %q has an option without id or label", g.ID))
					continue
				}
				if optionIDs[opt.ID] {
					problems = append(problems, fmt.Sprintf("group %q has duplicate option id %q", g.ID, opt.ID))
				}
				optionIDs[opt.ID] = true
			}
		}
	}

	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "catalog validation failed").
			WithDetails(map[string]any{"problems": problems})
	}
	return nil
}
