package form

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.FormConfig{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func TestUpsertThenGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cfg := &models.FormConfig{
		Title:           "Pop-up Order Form",
		ShippingEnabled: true,
		ShippingCost:    decimal.NewFromInt(50),
		Sections: types.FormSections{
			{ID: "contact", Title: "Contact", Fields: []types.FormField{
				{ID: "name", Type: enums.FieldTypeText, Label: "Name", Required: true},
			}},
		},
	}
	if err := repo.Upsert(ctx, cfg); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != models.FormConfigID {
		t.Fatalf("upsert must pin the singleton id, got %q", got.ID)
	}
	if got.Title != "Pop-up Order Form" || !got.ShippingEnabled {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Sections) != 1 || got.Sections[0].Fields[0].ID != "name" {
		t.Fatalf("sections did not survive: %+v", got.Sections)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &models.FormConfig{Title: "First"}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.Upsert(ctx, &models.FormConfig{Title: "Second"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Second" {
		t.Fatalf("expected overwrite, got %q", got.Title)
	}

	var count int64
	db.Model(&models.FormConfig{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
}
