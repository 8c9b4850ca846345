package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/formcraft/formcraft-backend/pkg/config"
)

const uploadEndpoint = "https://storage.googleapis.com/upload/storage/v1/b/%s/o?uploadType=media&name=%s"

// Client uploads objects to a GCS bucket over the JSON API.
type Client struct {
	cfg    config.GCSConfig
	source oauth2.TokenSource
	http   *http.Client
}

// New builds a client from service account credentials. The bucket must
// allow public reads for the returned URLs to resolve.
func New(ctx context.Context, cfg config.GCSConfig) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}

	var source oauth2.TokenSource
	if cfg.CredentialsFile != "" {
		raw, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading gcs credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, raw, "https://www.googleapis.com/auth/devstorage.read_write")
		if err != nil {
			return nil, fmt.Errorf("parsing gcs credentials: %w", err)
		}
		source = creds.TokenSource
	} else {
		creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/devstorage.read_write")
		if err != nil {
			return nil, fmt.Errorf("finding default gcs credentials: %w", err)
		}
		source = creds.TokenSource
	}

	return &Client{
		cfg:    cfg,
		source: source,
		http:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Upload streams the object body and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectName string, contentType string, body io.Reader) (string, error) {
	token, err := c.source.Token()
	if err != nil {
		return "", fmt.Errorf("fetching gcs token: %w", err)
	}

	endpoint := fmt.Sprintf(uploadEndpoint, c.cfg.Bucket, url.QueryEscape(objectName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("building gcs upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading to gcs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gcs upload failed with status %d: %s", resp.StatusCode, payload)
	}

	return c.PublicURL(objectName), nil
}

// PublicURL returns the public URL for an object in the bucket.
func (c *Client) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", c.cfg.PublicBaseURL, c.cfg.Bucket, objectName)
}
