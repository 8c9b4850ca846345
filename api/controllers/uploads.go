package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/formcraft/formcraft-backend/api/responses"
	"github.com/formcraft/formcraft-backend/pkg/config"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, body io.Reader) (string, error)
}

// ImageUpload stores an admin-supplied image (product shots, banner, QR)
// and returns the URL the form config or catalog can reference.
func ImageUpload(uploader Uploader, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if uploader == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "image storage is not configured"))
			return
		}

		if err := r.ParseMultipartForm(cfg.Media.MaxUploadBytes); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is required"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !allowedUploadType(cfg.Media.AllowedTypes, contentType) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unsupported content type"))
			return
		}

		objectName := fmt.Sprintf("%s/%s-%d", cfg.Media.ProductPrefix, uuid.NewString(), time.Now().Unix())
		url, err := uploader.Upload(ctx, objectName, contentType, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "image upload failed"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"url": url})
	}
}
