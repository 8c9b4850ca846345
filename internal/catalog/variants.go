package catalog

import (
	"fmt"
	"strings"

	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// GroupKeySeparator joins a set member's product id with one of its group
// ids to form a namespaced group id. Catalog validation rejects ids that
// contain it, so SplitGroupKey is an exact inverse.
const GroupKeySeparator = "__"

// GroupKey namespaces a member product's variant group id for use inside
// a set's flattened group list.
func GroupKey(memberProductID, groupID string) string {
	return memberProductID + GroupKeySeparator + groupID
}

// SplitGroupKey splits a namespaced group id back into member product id
// and the member's own group id. ok is false for non-namespaced ids.
func SplitGroupKey(key string) (memberProductID, groupID string, ok bool) {
	idx := strings.Index(key, GroupKeySeparator)
	if idx < 0 {
		return "", "", false
	}
	return key[:idx], key[idx+len(GroupKeySeparator):], true
}

// Lookup resolves a product by id, typically backed by the loaded catalog.
type Lookup func(id string) (*models.Product, bool)

// LookupFrom builds a Lookup over an in-memory product slice.
func LookupFrom(products []models.Product) Lookup {
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return func(id string) (*models.Product, bool) {
		p, ok := byID[id]
		return p, ok
	}
}

// ResolveVariantGroups returns the variant groups a buyer must answer for
// the product. Singles return their own groups. Sets flatten every
// member's groups under namespaced ids, prefixing each group name with
// the member's name; members missing from the catalog are skipped.
func ResolveVariantGroups(product *models.Product, lookup Lookup) types.VariantGroups {
	if product == nil {
		return nil
	}
	if !product.IsSet() {
		return product.Variants
	}

	var groups types.VariantGroups
	for _, item := range product.SetItems {
		member, ok := lookup(item.ProductID)
		if !ok || member.IsSet() {
			continue
		}
		for _, g := range member.Variants {
			groups = append(groups, types.VariantGroup{
				ID:       GroupKey(member.ID, g.ID),
				Name:     fmt.Sprintf("%s – %s", member.Name, g.Name),
				Required: g.Required,
				Options:  g.Options,
			})
		}
	}
	return groups
}

// VirtualProduct is one option of an expand-as-products group presented
// as a standalone storefront tile.
type VirtualProduct struct {
	Product      models.Product `json:"product"`
	GroupID      string         `json:"group_id"`
	OptionID     string         `json:"option_id"`
	OptionLabel  string         `json:"option_label"`
	SourceID     string         `json:"source_id"`
	DisplayName  string         `json:"display_name"`
	DisplayCode  string         `json:"display_code"`
	DisplayImage *string        `json:"display_image,omitempty"`
}

// ExpandVirtualProducts derives the storefront tiles for a product whose
// groups are flagged expand-as-products. Products without such groups
// return nil.
func ExpandVirtualProducts(product *models.Product) []VirtualProduct {
	if product == nil || product.IsSet() {
		return nil
	}

	var virtuals []VirtualProduct
	for _, g := range product.Variants {
		if !g.ExpandAsProducts {
			continue
		}
		for _, opt := range g.Options {
			image := opt.Image
			if image == nil && len(product.Images) > 0 {
				first := product.Images[0]
				image = &first
			}
			virtuals = append(virtuals, VirtualProduct{
				Product:      *product,
				GroupID:      g.ID,
				OptionID:     opt.ID,
				OptionLabel:  opt.Label,
				SourceID:     product.ID,
				DisplayName:  fmt.Sprintf("%s – %s", product.Name, opt.Label),
				DisplayCode:  fmt.Sprintf("%s_%s", product.Code, opt.Code),
				DisplayImage: image,
			})
		}
	}
	return virtuals
}

// CountForOption sums cart quantities of lines for the product whose
// selection for the group matches the option label. Used to badge
// virtual product tiles.
func CountForOption(lines types.CartLines, productID, groupID, optionLabel string) int {
	total := 0
	for _, line := range lines {
		if line.ProductID != productID {
			continue
		}
		if line.VariantSelections[groupID] == optionLabel {
			total += line.Qty
		}
	}
	return total
}

// HasVariants reports whether the product resolves to at least one group.
func HasVariants(product *models.Product, lookup Lookup) bool {
	return len(ResolveVariantGroups(product, lookup)) > 0
}
