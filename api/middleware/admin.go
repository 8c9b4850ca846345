package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/formcraft/formcraft-backend/api/responses"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// AdminAuth guards the admin surface with a static bearer token. An
// empty configured token disables the admin routes entirely.
func AdminAuth(token string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "admin surface disabled"))
				return
			}

			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
