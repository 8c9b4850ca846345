package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formcraft/formcraft-backend/api/responses"
	"github.com/formcraft/formcraft-backend/api/validators"
	"github.com/formcraft/formcraft-backend/internal/catalog"
	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// ProductsList returns the catalog in admin-defined order. With
// ?expand=true, products whose groups are flagged expand-as-products are
// also returned as per-option virtual tiles.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		products, err := svc.ListProducts(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := map[string]any{"products": products}
		if r.URL.Query().Get("expand") == "true" {
			var virtuals []catalog.VirtualProduct
			for i := range products {
				virtuals = append(virtuals, catalog.ExpandVirtualProducts(&products[i])...)
			}
			payload["virtual_products"] = virtuals
		}

		responses.WriteSuccess(w, payload)
	}
}

// ProductGroups resolves the variant groups the buyer must answer before
// the product can go in the cart.
func ProductGroups(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID := chi.URLParam(r, "productId")

		product, groups, err := svc.ResolveGroups(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"product": product,
			"groups":  groups,
		})
	}
}

type replaceCatalogRequest struct {
	Products []models.Product `json:"products" validate:"required"`
}

// ProductsReplace swaps the whole catalog. The admin UI always sends the
// complete list.
func ProductsReplace(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req replaceCatalogRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := svc.ReplaceCatalog(ctx, req.Products)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}
