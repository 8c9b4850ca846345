package cart

import (
	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/types"
)

// Append adds a line to the cart. Every add keeps its own line even when
// product and selections match an existing one; the buyer sees additions
// in the order they made them.
func Append(lines types.CartLines, line types.CartLine) types.CartLines {
	return append(lines, line)
}

// UpdateQty applies a delta to the line's quantity. Quantities at or
// below zero remove the line. The second return reports whether the
// line was found.
func UpdateQty(lines types.CartLines, cartID string, delta int) (types.CartLines, bool) {
	for i := range lines {
		if lines[i].CartID != cartID {
			continue
		}
		next := lines[i].Qty + delta
		if next <= 0 {
			return append(lines[:i:i], lines[i+1:]...), true
		}
		updated := make(types.CartLines, len(lines))
		copy(updated, lines)
		updated[i].Qty = next
		return updated, true
	}
	return lines, false
}

// Remove deletes the line regardless of quantity.
func Remove(lines types.CartLines, cartID string) (types.CartLines, bool) {
	for i := range lines {
		if lines[i].CartID == cartID {
			return append(lines[:i:i], lines[i+1:]...), true
		}
	}
	return lines, false
}

// Subtotal sums every line's unit price times quantity.
func Subtotal(lines types.CartLines) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// TotalQty sums quantities across all lines.
func TotalQty(lines types.CartLines) int {
	total := 0
	for _, line := range lines {
		total += line.Qty
	}
	return total
}

// CountFor sums quantities of every line for the product. Badge counts
// on the storefront tiles use this.
func CountFor(lines types.CartLines, productID string) int {
	total := 0
	for _, line := range lines {
		if line.ProductID == productID {
			total += line.Qty
		}
	}
	return total
}
