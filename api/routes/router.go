package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formcraft/formcraft-backend/api/controllers"
	"github.com/formcraft/formcraft-backend/api/middleware"
	"github.com/formcraft/formcraft-backend/internal/cart"
	"github.com/formcraft/formcraft-backend/internal/catalog"
	"github.com/formcraft/formcraft-backend/internal/export"
	"github.com/formcraft/formcraft-backend/internal/form"
	"github.com/formcraft/formcraft-backend/internal/submissions"
	"github.com/formcraft/formcraft-backend/pkg/config"
	"github.com/formcraft/formcraft-backend/pkg/db"
	"github.com/formcraft/formcraft-backend/pkg/logger"
	"github.com/formcraft/formcraft-backend/pkg/metrics"
	"github.com/formcraft/formcraft-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	catalogService catalog.Service,
	formService form.Service,
	cartService cart.Service,
	submissionsService submissions.Service,
	exportService export.Service,
	uploader controllers.Uploader,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(catalogService, logg))
		r.Get("/products/{productId}/groups", controllers.ProductGroups(catalogService, logg))
		r.Get("/form", controllers.FormGet(formService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, logg))
			r.Patch("/items/{cartId}", controllers.CartUpdateQty(cartService, logg))
			r.Delete("/items/{cartId}", controllers.CartRemove(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Get("/receipt", controllers.CartReceipt(cartService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Post("/submissions", controllers.SubmissionCreate(submissionsService, logg))
		})
		r.Post("/submissions/{submissionId}/slip", controllers.SubmissionSlipUpload(submissionsService, cfg, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.App.AdminToken, logg))
			r.Put("/products", controllers.ProductsReplace(catalogService, logg))
			r.Put("/form", controllers.FormPut(formService, logg))
			r.Get("/submissions", controllers.SubmissionList(submissionsService, logg))
			r.Get("/submissions/{submissionId}", controllers.SubmissionGet(submissionsService, logg))
			r.Patch("/submissions/{submissionId}/payment", controllers.SubmissionPaymentPatch(submissionsService, logg))
			r.Post("/uploads", controllers.ImageUpload(uploader, cfg, logg))
			r.Get("/export/orders.csv", controllers.ExportOrdersCSV(exportService, logg))
		})
	})

	return r
}
