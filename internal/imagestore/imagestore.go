// Package imagestore uploads customer images (cake sketches, payment
// screenshots) to Cloudinary and returns their durable URLs.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Folders under the configured root.
const (
	FolderCakeSketches       = "cake-sketches"
	FolderPaymentScreenshots = "payment-screenshots"
)

var (
	ErrNotConfigured = errors.New("image store is not configured")
	ErrNotDataURI    = errors.New("image payload must be a data URI")
)

// Credentials are the three Cloudinary values. All are required.
type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Complete reports whether every credential is set.
func (c Credentials) Complete() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// uploadAPI is the subset of *uploader.API the store calls.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Store uploads images. A Store built from incomplete credentials is
// disabled: every Upload returns ErrNotConfigured.
type Store struct {
	api  uploadAPI
	root string
}

// New creates a Store for the given credentials and root folder.
func New(creds Credentials, root string) (*Store, error) {
	if !creds.Complete() {
		log.Println("WARNING: Cloudinary credentials are missing; image uploads will fail until CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are set")
		return &Store{root: root}, nil
	}

	cld, err := cloudinary.NewFromParams(creds.CloudName, creds.APIKey, creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Store{api: &cld.Upload, root: root}, nil
}

// Enabled reports whether uploads can succeed.
func (s *Store) Enabled() bool {
	return s.api != nil
}

// Upload sends a base64 data URI to the given folder and returns the
// secure URL of the stored image.
func (s *Store) Upload(ctx context.Context, dataURI, folder string) (string, error) {
	if s.api == nil {
		return "", ErrNotConfigured
	}
	if !IsDataURI(dataURI) {
		return "", ErrNotDataURI
	}

	res, err := s.api.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:         path.Join(s.root, folder),
		ResourceType:   "image",
		Overwrite:      api.Bool(false),
		UniqueFilename: api.Bool(true),
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload to %s: %w", folder, err)
	}
	// Cloudinary reports API-level failures in the body, not as err.
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload to %s: %s", folder, res.Error.Message)
	}

	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	if res.URL != "" {
		return res.URL, nil
	}
	return "", fmt.Errorf("upload to %s: empty url in response", folder)
}

// IsDataURI reports whether s looks like a data URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
