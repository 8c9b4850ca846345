package receipt

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/types"
)

// LineKind tags a rendered receipt line.
type LineKind string

const (
	KindProductHeader LineKind = "product-header"
	KindVariantRow    LineKind = "variant-row"
	KindSetDetail     LineKind = "set-detail"
	KindDivider       LineKind = "divider"
)

// Line is one row of the rendered receipt.
type Line struct {
	Kind LineKind `json:"kind"`

	// product-header
	Name      string          `json:"name,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
	Qty       int             `json:"qty,omitempty"`
	Total     decimal.Decimal `json:"total,omitempty"`
	IsSet     bool            `json:"is_set,omitempty"`

	// variant-row
	VariantStr string `json:"variant_str,omitempty"`

	// set-detail
	Detail string `json:"detail,omitempty"`
}

// variantKey canonicalizes a line's selections so lines differing only
// in map iteration order still land in the same sub-group.
func variantKey(line types.CartLine) string {
	keys := selectionKeys(line)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(line.VariantSelections[k])
		b.WriteByte(';')
	}
	return b.String()
}

// variantStr joins the chosen option labels for display.
func variantStr(line types.CartLine) string {
	var labels []string
	for _, k := range selectionKeys(line) {
		if label, ok := line.VariantSelections[k]; ok {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, " / ")
}

// BuildLines renders cart lines into receipt rows. Lines are grouped by
// product in first-seen order with a divider between products, then
// sub-grouped by identical variant selections with quantities merged.
// The input is never modified; calling twice yields the same rows.
func BuildLines(items types.CartLines) []Line {
	var productOrder []string
	byProduct := map[string]types.CartLines{}
	for _, item := range items {
		if _, seen := byProduct[item.ProductID]; !seen {
			productOrder = append(productOrder, item.ProductID)
		}
		byProduct[item.ProductID] = append(byProduct[item.ProductID], item)
	}

	var lines []Line
	for i, productID := range productOrder {
		if i > 0 {
			lines = append(lines, Line{Kind: KindDivider})
		}

		pItems := byProduct[productID]
		name := pItems[0].ProductName
		unitPrice := pItems[0].UnitPrice
		isSet := pItems[0].IsSet

		var comboOrder []string
		byCombo := map[string]types.CartLines{}
		for _, item := range pItems {
			key := variantKey(item)
			if _, seen := byCombo[key]; !seen {
				comboOrder = append(comboOrder, key)
			}
			byCombo[key] = append(byCombo[key], item)
		}

		for _, key := range comboOrder {
			vItems := byCombo[key]
			first := vItems[0]

			qty := 0
			for _, item := range vItems {
				qty += item.Qty
			}
			total := unitPrice.Mul(decimal.NewFromInt(int64(qty)))

			lines = append(lines, Line{
				Kind:      KindProductHeader,
				Name:      name,
				UnitPrice: unitPrice,
				Qty:       qty,
				Total:     total,
				IsSet:     isSet,
			})

			if !isSet {
				if vs := variantStr(first); vs != "" {
					lines = append(lines, Line{Kind: KindVariantRow, VariantStr: vs})
				}
				continue
			}

			for _, d := range first.SetDetails {
				detail := d.ProductName
				if d.VariantLabel != "" {
					detail = d.ProductName + ": " + d.VariantLabel
				}
				lines = append(lines, Line{Kind: KindSetDetail, Detail: detail})
			}
		}
	}
	return lines
}
