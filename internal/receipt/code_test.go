package receipt

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/types"
)

func teeLine(cartID, size, sizeCode string, qty int) types.CartLine {
	return types.CartLine{
		CartID:            cartID,
		ProductID:         "tee",
		ProductName:       "Tee",
		ProductCode:       "TEE",
		UnitPrice:         decimal.NewFromInt(279),
		Qty:               qty,
		VariantSelections: types.StringMap{"size": size},
		VariantCodes:      types.StringMap{"size": sizeCode},
		SelectionOrder:    []string{"size"},
	}
}

func bundleLine(cartID string, qty int) types.CartLine {
	return types.CartLine{
		CartID:      cartID,
		ProductID:   "bundle",
		ProductName: "Bundle C",
		ProductCode: "SET_C",
		UnitPrice:   decimal.NewFromInt(449),
		Qty:         qty,
		IsSet:       true,
		VariantSelections: types.StringMap{
			"tee__size":  "M",
			"cap__color": "Black",
		},
		VariantCodes: types.StringMap{
			"tee__size":  "M",
			"cap__color": "BK",
		},
		SelectionOrder: []string{"tee__size", "cap__color"},
		SetDetails: types.SetMemberDetails{
			{ProductName: "Tee", ProductCode: "TEE", VariantLabel: "M", VariantCode: "M"},
			{ProductName: "Cap", ProductCode: "CAP", VariantLabel: "Black", VariantCode: "BK"},
			{ProductName: "Sticker", ProductCode: "STK"},
		},
	}
}

func TestItemCode(t *testing.T) {
	t.Parallel()

	if got := ItemCode(teeLine("a", "M", "M", 1)); got != "TEE_M" {
		t.Fatalf("unexpected code: %s", got)
	}

	plain := types.CartLine{ProductCode: "MUG"}
	if got := ItemCode(plain); got != "MUG" {
		t.Fatalf("no variants means bare code, got %s", got)
	}

	multi := types.CartLine{
		ProductCode:    "TEE",
		VariantCodes:   types.StringMap{"size": "M", "color": "NV"},
		SelectionOrder: []string{"size", "color"},
	}
	if got := ItemCode(multi); got != "TEE_M_NV" {
		t.Fatalf("codes must follow declaration order, got %s", got)
	}
}

func TestItemCodeFallsBackToSortedKeys(t *testing.T) {
	t.Parallel()

	line := types.CartLine{
		ProductCode:  "TEE",
		VariantCodes: types.StringMap{"size": "M", "color": "NV"},
	}
	if got := ItemCode(line); got != "TEE_NV_M" {
		t.Fatalf("without order snapshot keys sort, got %s", got)
	}

	// Lines persisted before the code snapshot carried labels only.
	mixed := types.CartLine{
		ProductCode:       "TEE",
		VariantCodes:      types.StringMap{"size": "M"},
		VariantSelections: types.StringMap{"size": "M", "color": "Navy"},
	}
	if got := ItemCode(mixed); got != "TEE_M" {
		t.Fatalf("keys without a code are skipped, got %s", got)
	}
}

func TestSingleColumn(t *testing.T) {
	t.Parallel()

	lines := types.CartLines{
		teeLine("a", "M", "M", 2),
		teeLine("b", "S", "S", 1),
	}

	if got := SingleColumn(lines, "tee"); got != "TEE_M*2;TEE_S*1" {
		t.Fatalf("unexpected column: %s", got)
	}
	if got := SingleColumn(lines, "mug"); got != "0" {
		t.Fatalf("unbought product must be literal 0, got %s", got)
	}
}

func TestSetColumn(t *testing.T) {
	t.Parallel()

	lines := types.CartLines{bundleLine("a", 2)}

	want := "SET_C_(TEE_M*1/CAP_BK*1/STK*1)@2"
	if got := SetColumn(lines, "bundle", "SET_C"); got != want {
		t.Fatalf("unexpected column:\n got %s\nwant %s", got, want)
	}
	if got := SetColumn(lines, "other", "OTH"); got != "0" {
		t.Fatalf("unbought set must be literal 0, got %s", got)
	}
}
