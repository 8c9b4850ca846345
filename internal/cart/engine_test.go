package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/types"
)

func line(cartID, productID string, qty int, price int64) types.CartLine {
	return types.CartLine{
		CartID:    cartID,
		ProductID: productID,
		Qty:       qty,
		UnitPrice: decimal.NewFromInt(price),
	}
}

func TestAppendNeverMerges(t *testing.T) {
	t.Parallel()

	lines := Append(nil, line("a", "tee", 1, 100))
	lines = Append(lines, line("b", "tee", 1, 100))

	if len(lines) != 2 {
		t.Fatalf("identical adds must stay separate lines, got %d", len(lines))
	}
}

func TestUpdateQtyDelta(t *testing.T) {
	t.Parallel()

	lines := types.CartLines{line("a", "tee", 2, 100)}

	updated, found := UpdateQty(lines, "a", 1)
	if !found || updated[0].Qty != 3 {
		t.Fatalf("expected qty 3, got %+v", updated)
	}
	if lines[0].Qty != 2 {
		t.Fatal("input slice must not be mutated")
	}

	updated, found = UpdateQty(updated, "a", -3)
	if !found || len(updated) != 0 {
		t.Fatalf("qty at zero must remove the line, got %+v", updated)
	}

	if _, found := UpdateQty(lines, "ghost", 1); found {
		t.Fatal("unknown cart id must report not found")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	lines := types.CartLines{line("a", "tee", 2, 100), line("b", "cap", 1, 50)}

	updated, found := Remove(lines, "a")
	if !found || len(updated) != 1 || updated[0].CartID != "b" {
		t.Fatalf("unexpected result: %+v", updated)
	}

	if _, found := Remove(lines, "ghost"); found {
		t.Fatal("unknown cart id must report not found")
	}
}

func TestSubtotalAndCounts(t *testing.T) {
	t.Parallel()

	lines := types.CartLines{
		line("a", "tee", 2, 100),
		line("b", "tee", 1, 100),
		line("c", "cap", 3, 50),
	}

	if got := Subtotal(lines); !got.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected subtotal 450, got %s", got)
	}
	if got := TotalQty(lines); got != 6 {
		t.Fatalf("expected total qty 6, got %d", got)
	}
	if got := CountFor(lines, "tee"); got != 3 {
		t.Fatalf("expected tee count 3, got %d", got)
	}
	if got := CountFor(lines, "ghost"); got != 0 {
		t.Fatalf("expected 0 for unknown product, got %d", got)
	}
}

func TestSubtotalEmpty(t *testing.T) {
	t.Parallel()

	if got := Subtotal(nil); !got.IsZero() {
		t.Fatalf("empty cart subtotal must be zero, got %s", got)
	}
}
