package upload

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/frahmantamala/asset-management/internal"
)

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadedImage is what the API returns after a successful upload: a URL to
// the stored file plus the raw bytes, so callers can embed either.
type UploadedImage struct {
	ImageURL    string `json:"imageUrl"`
	ImageData   []byte `json:"imageData"`
	ContentType string `json:"contentType"`
}

type Service struct {
	directory string
	baseURL   string
	maxSize   int64
	logger    *slog.Logger
}

func NewService(directory, baseURL string, maxSizeMB int, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		logger:    logger,
	}
}

// SaveImage validates and persists an uploaded file under a generated name.
// Validation is ordered: extension first, then size.
func (s *Service) SaveImage(filename string, size int64, content io.Reader) (*UploadedImage, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		s.logger.Warn("upload rejected: unsupported file type", "filename", filename, "extension", ext)
		return nil, internal.NewValidationError(
			"Invalid file type. Only image files are allowed", internal.ErrCodeInvalidFileType)
	}

	if size > s.maxSize {
		s.logger.Warn("upload rejected: file too large", "filename", filename, "size", size)
		return nil, internal.NewValidationError(
			fmt.Sprintf("File size exceeds the %dMB limit", s.maxSize/(1024*1024)),
			internal.ErrCodeFileTooLarge)
	}

	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		s.logger.Warn("upload rejected: file too large", "filename", filename, "size", len(data))
		return nil, internal.NewValidationError(
			fmt.Sprintf("File size exceeds the %dMB limit", s.maxSize/(1024*1024)),
			internal.ErrCodeFileTooLarge)
	}

	storedName := uuid.NewString() + ext
	path := filepath.Join(s.directory, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	s.logger.Info("image uploaded", "stored_name", storedName, "size", len(data))

	return &UploadedImage{
		ImageURL:    s.baseURL + "/uploads/" + storedName,
		ImageData:   data,
		ContentType: contentType,
	}, nil
}

// DeleteImage removes a previously uploaded file identified by its URL. The
// stored name is taken from the URL's last path segment to keep traversal out.
func (s *Service) DeleteImage(imageURL string) error {
	storedName := filepath.Base(strings.TrimSpace(imageURL))
	if storedName == "" || storedName == "." || storedName == "/" {
		return internal.NewValidationError("imageUrl is required", internal.ErrCodeValidationFailed)
	}

	path := filepath.Join(s.directory, storedName)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return internal.ErrImageNotFound
		}
		return fmt.Errorf("delete upload: %w", err)
	}

	s.logger.Info("image deleted", "stored_name", storedName)
	return nil
}

// ReadImage returns a stored file's bytes and content type by stored name.
func (s *Service) ReadImage(storedName string) ([]byte, string, error) {
	name := filepath.Base(storedName)
	ext := strings.ToLower(filepath.Ext(name))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, "", internal.ErrImageNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.directory, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", internal.ErrImageNotFound
		}
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	return data, contentType, nil
}
