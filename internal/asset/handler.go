package asset

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
)

type ServiceAPI interface {
	GetAllAssets() ([]*Asset, error)
	GetAvailableAssets() ([]*Asset, error)
	GetAssignedAssets(userID int64) ([]*Asset, error)
	GetAssetByID(id int64) (*Asset, error)
	CreateAsset(dto CreateAssetDTO) (*Asset, error)
	ReviseAsset(id int64, dto UpdateAssetDTO) (*Asset, error)
	DeleteAsset(id int64) error
	GetAssetImage(id int64) ([]byte, string, error)
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

func (h *Handler) assetIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid asset id")
		return 0, false
	}
	return id, true
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.GetAllAssets()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, assets)
}

func (h *Handler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.GetAvailableAssets()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, assets)
}

// GetAssigned lists the assets currently held by the authenticated user.
func (h *Handler) GetAssigned(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assets, err := h.Service.GetAssignedAssets(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, assets)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.assetIDFromURL(w, r)
	if !ok {
		return
	}

	a, err := h.Service.GetAssetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateAsset(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.assetIDFromURL(w, r)
	if !ok {
		return
	}

	var dto UpdateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.ReviseAsset(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.assetIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteAsset(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeImage streams the stored image bytes with the recorded content type.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.assetIDFromURL(w, r)
	if !ok {
		return
	}

	data, contentType, err := h.Service.GetAssetImage(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("failed to write image response", "error", err, "asset_id", id)
	}
}
