package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/enums"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

func validCatalog() []models.Product {
	tee := singleWithSizes("tee", "Tee", "TEE")
	return []models.Product{
		tee,
		{
			ID:       "bundle",
			Type:     enums.ProductTypeSet,
			Name:     "Bundle",
			Code:     "BND",
			Price:    decimal.NewFromInt(180),
			SetItems: types.SetItems{{ProductID: "tee", Label: "Tee"}},
		},
	}
}

func expectValidationProblem(t *testing.T, products []models.Product, fragment string) {
	t.Helper()

	err := validateCatalog(products)
	if err == nil {
		t.Fatalf("expected validation error containing %q", fragment)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, _ := typed.Details().(map[string]any)
	problems, _ := details["problems"].([]string)
	for _, p := range problems {
		if strings.Contains(p, fragment) {
			return
		}
	}
	t.Fatalf("no problem mentioning %q in %v", fragment, problems)
}

func TestValidateCatalogAcceptsValid(t *testing.T) {
	t.Parallel()

	if err := validateCatalog(validCatalog()); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}
}

func TestValidateCatalogRejectsSeparatorInIDs(t *testing.T) {
	t.Parallel()

	products := validCatalog()
	products[0].ID = "tee__v2"
	expectValidationProblem(t, products, "must not contain")
}

func TestValidateCatalogRejectsDuplicates(t *testing.T) {
	t.Parallel()

	products := validCatalog()
	dup := singleWithSizes("tee", "Tee Again", "TEE2")
	expectValidationProblem(t, append(products, dup), "duplicate product id")

	products = validCatalog()
	products[1].Code = "TEE"
	expectValidationProblem(t, products, "duplicate product code")
}

func TestValidateCatalogRejectsBadSets(t *testing.T) {
	t.Parallel()

	products := validCatalog()
	products[1].SetItems = nil
	expectValidationProblem(t, products, "at least one member")

	products = validCatalog()
	products[1].Variants = products[0].Variants
	expectValidationProblem(t, products, "must not declare its own variant groups")
}

func TestValidateCatalogToleratesDanglingSetMember(t *testing.T) {
	t.Parallel()

	products := validCatalog()
	products[1].SetItems = types.SetItems{
		{ProductID: "tee", Label: "Tee"},
		{ProductID: "gone", Label: "Retired"},
	}

	if err := validateCatalog(products); err != nil {
		t.Fatalf("dangling member reference must not block the replace: %v", err)
	}

	dangling := danglingSetRefs(products)
	if len(dangling) != 1 || dangling[0] != "bundle/gone" {
		t.Fatalf("expected the dangling ref to be reported, got %v", dangling)
	}
}

func TestValidateCatalogRejectsNegativePrice(t *testing.T) {
	t.Parallel()

	products := validCatalog()
	products[0].Price = decimal.NewFromInt(-1)
	expectValidationProblem(t, products, "must not be negative")
}

func TestValidateCatalogRejectsEmptyGroups(t *testing.T) {
	t.Parallel()

	products := validCatalog()
	products[0].Variants[0].Options = nil
	expectValidationProblem(t, products, "at least one option")
}
