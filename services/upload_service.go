package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"vivero_server/lib"
	"vivero_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// allowedImageTypes maps accepted upload content types to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadService struct {
	logger *gecho.Logger
	cfg    *structs.Config
}

func NewUploadService(logger *gecho.Logger, cfg *structs.Config) *UploadService {
	return &UploadService{
		logger: logger,
		cfg:    cfg,
	}
}

// SaveImage validates and stores an uploaded image under a generated name
// and returns its public URL path.
func (us *UploadService) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > us.cfg.Upload.MaxSizeBytes {
		return "", &lib.ValidationError{Errors: []lib.FieldError{{
			Field:   "image",
			Message: fmt.Sprintf("must be at most %d bytes", us.cfg.Upload.MaxSizeBytes),
		}}}
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", &lib.ValidationError{Errors: []lib.FieldError{{
			Field:   "image",
			Message: "must be a jpeg, png, webp or gif image",
		}}}
	}

	if err := os.MkdirAll(us.cfg.Upload.Dir, 0o755); err != nil {
		us.logger.Error("Failed to create upload directory", gecho.Field("error", err), gecho.Field("dir", us.cfg.Upload.Dir))
		return "", err
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(us.cfg.Upload.Dir, filename)

	out, err := os.Create(dst)
	if err != nil {
		us.logger.Error("Failed to create upload file", gecho.Field("error", err), gecho.Field("path", dst))
		return "", err
	}
	defer out.Close()

	// Cap the copy at the configured limit in case the reported size lied
	written, err := io.Copy(out, io.LimitReader(file, us.cfg.Upload.MaxSizeBytes+1))
	if err != nil {
		os.Remove(dst)
		us.logger.Error("Failed to write upload file", gecho.Field("error", err), gecho.Field("path", dst))
		return "", err
	}
	if written > us.cfg.Upload.MaxSizeBytes {
		os.Remove(dst)
		return "", &lib.ValidationError{Errors: []lib.FieldError{{
			Field:   "image",
			Message: fmt.Sprintf("must be at most %d bytes", us.cfg.Upload.MaxSizeBytes),
		}}}
	}

	us.logger.Debug("Image stored", gecho.Field("file", filename), gecho.Field("bytes", written))
	// Served by the router under /uploads/ regardless of the storage dir
	return "/uploads/" + filename, nil
}

// DeleteImage removes a stored image by its public URL path. Unknown or
// already-deleted files are ignored.
func (us *UploadService) DeleteImage(url string) {
	name := path.Base(url)
	if name == "." || name == "/" || name == "" {
		return
	}

	// Only ever touch files inside the upload directory
	target := filepath.Join(us.cfg.Upload.Dir, name)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		us.logger.Warn("Failed to delete stored image", gecho.Field("error", err), gecho.Field("path", target))
	}
}

// PublicURL turns a stored path into an absolute URL for API responses.
func (us *UploadService) PublicURL(storedPath string) string {
	if storedPath == "" || strings.HasPrefix(storedPath, "http") {
		return storedPath
	}
	return strings.TrimRight(us.cfg.Server.PublicURL, "/") + storedPath
}
