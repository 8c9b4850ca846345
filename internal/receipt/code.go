package receipt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/formcraft/formcraft-backend/pkg/types"
)

// selectionKeys returns the line's group ids in the order the groups
// were declared at add time, falling back to the sorted union of the
// snapshot maps for lines persisted before the order snapshot existed.
func selectionKeys(line types.CartLine) []string {
	if len(line.SelectionOrder) > 0 {
		return line.SelectionOrder
	}
	seen := make(map[string]bool, len(line.VariantCodes))
	keys := make([]string, 0, len(line.VariantCodes)+len(line.VariantSelections))
	for k := range line.VariantCodes {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range line.VariantSelections {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ItemCode builds the compact code for one cart line: the product code,
// then each chosen variant code appended with underscores.
func ItemCode(line types.CartLine) string {
	var codes []string
	for _, key := range selectionKeys(line) {
		if code, ok := line.VariantCodes[key]; ok {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return line.ProductCode
	}
	return line.ProductCode + "_" + strings.Join(codes, "_")
}

// SingleColumn encodes a buyer's purchases of one single product for a
// CSV cell: code*qty per line joined with semicolons, or "0" when the
// product was not bought.
func SingleColumn(lines types.CartLines, productID string) string {
	var parts []string
	for _, line := range lines {
		if line.ProductID != productID {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s*%d", ItemCode(line), line.Qty))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, ";")
}

// SetColumn encodes a buyer's purchases of one set product for a CSV
// cell: setcode_(member*1/member*1)@qty per line joined with semicolons,
// or "0" when the set was not bought. Member codes carry the resolved
// variant code when one was chosen.
func SetColumn(lines types.CartLines, productID, productCode string) string {
	var parts []string
	for _, line := range lines {
		if line.ProductID != productID {
			continue
		}

		var inner []string
		for _, d := range line.SetDetails {
			code := d.ProductCode
			if d.VariantCode != "" {
				code += "_" + d.VariantCode
			}
			inner = append(inner, code+"*1")
		}
		parts = append(parts, fmt.Sprintf("%s_(%s)@%d", productCode, strings.Join(inner, "/"), line.Qty))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, ";")
}
