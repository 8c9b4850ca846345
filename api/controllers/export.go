package controllers

import (
	"fmt"
	"net/http"

	"github.com/formcraft/formcraft-backend/api/responses"
	"github.com/formcraft/formcraft-backend/internal/export"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// ExportOrdersCSV streams the orders export. ?confirmed=true narrows the
// rows to confirmed payments.
func ExportOrdersCSV(svc export.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		onlyConfirmed := r.URL.Query().Get("confirmed") == "true"
		file, err := svc.OrdersCSV(ctx, onlyConfirmed)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Content); err != nil {
			logg.Warn(ctx, "writing csv response failed", err)
		}
	}
}
