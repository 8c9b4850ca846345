package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formcraft/formcraft-backend/internal/cart"
	"github.com/formcraft/formcraft-backend/internal/catalog"
	"github.com/formcraft/formcraft-backend/internal/export"
	"github.com/formcraft/formcraft-backend/internal/submissions"
	"github.com/formcraft/formcraft-backend/pkg/config"
	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/logger"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

type stubCatalog struct{}

func (stubCatalog) ListProducts(context.Context) ([]models.Product, error) {
	return []models.Product{{ID: "tee", Type: enums.ProductTypeSingle, Name: "Tee", Code: "TEE"}}, nil
}

func (stubCatalog) GetProduct(context.Context, string) (*models.Product, error) {
	return &models.Product{ID: "tee"}, nil
}

func (stubCatalog) ResolveGroups(context.Context, string) (*models.Product, []catalog.VariantGroupView, error) {
	return &models.Product{ID: "tee"}, nil, nil
}

func (stubCatalog) ReplaceCatalog(_ context.Context, products []models.Product) ([]models.Product, error) {
	return products, nil
}

type stubForm struct{}

func (stubForm) GetForm(context.Context) (*models.FormConfig, error) {
	return &models.FormConfig{ID: models.FormConfigID, Title: "Order Form"}, nil
}

func (stubForm) PutForm(_ context.Context, cfg *models.FormConfig) (*models.FormConfig, error) {
	return cfg, nil
}

type stubCart struct{}

func (stubCart) GetCart(context.Context, string) (*cart.View, error) {
	return &cart.View{Lines: types.CartLines{}, Subtotal: decimal.Zero}, nil
}

func (stubCart) AddItem(context.Context, string, cart.AddItemInput) (*cart.View, error) {
	return &cart.View{Lines: types.CartLines{{CartID: "a"}}, Subtotal: decimal.Zero, TotalQty: 1}, nil
}

func (stubCart) UpdateQty(context.Context, string, string, int) (*cart.View, error) {
	return &cart.View{Lines: types.CartLines{}, Subtotal: decimal.Zero}, nil
}

func (stubCart) RemoveItem(context.Context, string, string) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCart) Clear(context.Context, string) error { return nil }

type stubSubmissions struct{}

func (stubSubmissions) Create(context.Context, submissions.CreateInput) (*models.Submission, error) {
	return &models.Submission{ID: uuid.New(), PaymentStatus: enums.PaymentStatusPending}, nil
}

func (stubSubmissions) Get(context.Context, uuid.UUID) (*models.Submission, error) {
	return &models.Submission{}, nil
}

func (stubSubmissions) List(context.Context, submissions.ListFilter) ([]models.Submission, error) {
	return nil, nil
}

func (stubSubmissions) AttachSlip(context.Context, uuid.UUID, string, io.Reader) (*models.Submission, error) {
	return &models.Submission{}, nil
}

func (stubSubmissions) UpdatePaymentStatus(context.Context, uuid.UUID, enums.PaymentStatus, *string) (*models.Submission, error) {
	return &models.Submission{}, nil
}

type stubExport struct{}

func (stubExport) OrdersCSV(context.Context, bool) (*export.File, error) {
	return &export.File{
		Filename:    "orders_" + time.Now().Format("2006-01-02") + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Content:     []byte("\uFEFF\"ID\""),
	}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.AdminToken = "secret"
	cfg.App.CORSOrigins = []string{"http://localhost:3000"}

	return NewRouter(
		cfg,
		logger.New("error", "json"),
		nil,
		nil,
		stubCatalog{},
		stubForm{},
		stubCart{},
		stubSubmissions{},
		stubExport{},
		nil,
	)
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-FormCraft-Env"))
}

func TestProductsListPublic(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Products []models.Product `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Products, 1)
}

func TestCartRequiresSessionHeader(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "X-Session-Id")
}

func TestCartAddWithSession(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := bytes.NewBufferString(`{"product_id":"tee","qty":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
	req.Header.Set("X-Session-Id", "sess-1")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminRequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestExportContentDisposition(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/export/orders.csv", nil)
	req.Header.Set("Authorization", "Bearer secret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\uFEFF")))
}

func TestRequestIDEchoed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-Id", "req-42")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
}
