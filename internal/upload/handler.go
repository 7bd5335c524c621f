package upload

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
)

type ServiceAPI interface {
	SaveImage(filename string, size int64, content io.Reader) (*UploadedImage, error)
	DeleteImage(imageURL string) error
	ReadImage(storedName string) ([]byte, string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Upload accepts a multipart form with a single "file" part.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	result, err := h.Service.SaveImage(header.Filename, header.Size, file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("imageUrl")
	if imageURL == "" {
		h.WriteError(w, http.StatusBadRequest, "imageUrl query parameter is required")
		return
	}

	if err := h.Service.DeleteImage(imageURL); err != nil {
		if errors.Is(err, internal.ErrImageNotFound) {
			h.WriteError(w, http.StatusBadRequest, "file not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// ServeFile streams an uploaded file back by its stored name.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, contentType, err := h.Service.ReadImage(name)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("failed to write file response", "error", err, "name", name)
	}
}
