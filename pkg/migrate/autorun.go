package migrate

import (
	"context"

	"github.com/formcraft/formcraft-backend/pkg/config"
	"github.com/formcraft/formcraft-backend/pkg/db"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations at startup when AUTO_MIGRATE is
// set. Intended for development; production runs cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, client *db.Client, logg *logger.Logger) error {
	if !cfg.App.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}

	logg.Info(ctx, "running startup migrations")
	return Up(ctx, sqlDB, DefaultDir)
}
