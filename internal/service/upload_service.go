package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zephyr/internal/middleware"
	"zephyr/internal/models"
	"zephyr/internal/observability"

	"github.com/google/uuid"
)

// Upload kinds and limits.
const (
	UploadKindProfile = "profile"
	UploadKindPost    = "post"

	MaxUploadSize = 5 * 1024 * 1024
)

var uploadSubdirs = map[string]string{
	UploadKindProfile: "profile_pictures",
	UploadKindPost:    "post_images",
}

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadService stores uploaded images below root, one directory per kind.
type UploadService struct {
	root string
}

// NewUploadService creates the kind directories under root.
func NewUploadService(root string) (*UploadService, error) {
	for _, sub := range uploadSubdirs {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &UploadService{root: root}, nil
}

// Root returns the directory served under /uploads.
func (s *UploadService) Root() string {
	return s.root
}

// Store validates and writes content under a random name and returns that name.
func (s *UploadService) Store(ctx context.Context, content []byte, filename, kind string) (name string, err error) {
	ctx, span := startSpan(ctx, "UploadService.Store", 0)
	defer func() { observability.EndSpan(span, err) }()

	if filename == "" || len(content) == 0 {
		return "", models.NewValidationError("No file provided")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExtensions[ext] {
		return "", models.NewValidationError("File type not allowed. Allowed types: " + allowedExtensionList())
	}
	if len(content) > MaxUploadSize {
		return "", models.NewValidationError(fmt.Sprintf("File too large. Max size: %dMB", MaxUploadSize/(1024*1024)))
	}

	sub, ok := uploadSubdirs[kind]
	if !ok {
		return "", models.NewValidationError("Invalid upload type")
	}

	name = uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.root, sub, name), content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	observability.UploadsStored.WithLabelValues(kind).Inc()
	middleware.Logger.InfoContext(ctx, "Upload stored",
		slog.String("kind", kind),
		slog.String("filename", name),
		slog.Int("bytes", len(content)),
	)
	return name, nil
}

// Delete removes a stored file. It reports false when kind is unknown, the
// name is not a plain file name or no such file exists.
func (s *UploadService) Delete(name, kind string) (bool, error) {
	sub, ok := uploadSubdirs[kind]
	if !ok || name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return false, nil
	}

	err := os.Remove(filepath.Join(s.root, sub, name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, models.NewInternalError(err)
	}
}

// URL returns the public path of a stored file.
func (s *UploadService) URL(name, kind string) string {
	return "/uploads/" + uploadSubdirs[kind] + "/" + name
}

func allowedExtensionList() string {
	exts := make([]string, 0, len(allowedUploadExtensions))
	for ext := range allowedUploadExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
