package assetrequest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/auth"
	requestDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assetrequest"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

// ErrNoPendingRequest is returned by the repository when a decision matched no
// pending row, either because the request does not exist or because another
// admin already processed it.
var ErrNoPendingRequest = errors.New("no pending request matched")

type RepositoryAPI interface {
	GetAllViews() ([]*requestDatamodel.RequestView, error)
	GetViewsByUser(userID int64) ([]*requestDatamodel.RequestView, error)
	GetViewByID(id int64) (*requestDatamodel.RequestView, error)
	Create(row *requestDatamodel.AssetRequest) error
	Process(id int64, decision string, adminNotes *string, processedAt time.Time) (*requestDatamodel.AssetRequest, error)
}

// AssetCatalog is the slice of the catalog service the workflow needs.
type AssetCatalog interface {
	GetAssetByID(id int64) (*asset.Asset, error)
}

type Service struct {
	repo     RepositoryAPI
	catalog  AssetCatalog
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, catalog AssetCatalog, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) GetAllRequests() ([]*AssetRequest, error) {
	rows, err := s.repo.GetAllViews()
	if err != nil {
		s.logger.Error("failed to list asset requests", "error", err)
		return nil, err
	}
	return FromViewSlice(rows), nil
}

func (s *Service) GetRequestsForUser(userID int64) ([]*AssetRequest, error) {
	rows, err := s.repo.GetViewsByUser(userID)
	if err != nil {
		s.logger.Error("failed to list asset requests", "error", err, "user_id", userID)
		return nil, err
	}
	return FromViewSlice(rows), nil
}

// GetRequestByID returns a single request, visible only to its owner or an
// admin.
func (s *Service) GetRequestByID(id int64, viewer *auth.User) (*AssetRequest, error) {
	row, err := s.repo.GetViewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		s.logger.Error("failed to get asset request", "error", err, "request_id", id)
		return nil, err
	}

	if row.UserID != viewer.ID && !viewer.IsAdmin() {
		s.logger.Warn("request access denied",
			"request_id", id, "owner_id", row.UserID, "viewer_id", viewer.ID)
		return nil, internal.ErrRequestAccessDenied
	}

	return FromView(row), nil
}

// SubmitRequest files a pending request for an available asset. The partial
// unique index on (user_id, asset_id) for pending rows is the authority on
// duplicates, so a concurrent double submit loses cleanly at insert time.
func (s *Service) SubmitRequest(ctx context.Context, userID int64, dto CreateRequestDTO) (*AssetRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("request validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	target, err := s.catalog.GetAssetByID(dto.AssetID)
	if err != nil {
		return nil, err
	}
	if !target.IsAvailable() {
		s.logger.Warn("request rejected: asset not available",
			"asset_id", dto.AssetID, "asset_status", target.Status, "user_id", userID)
		return nil, internal.ErrAssetUnavailable
	}

	row := &requestDatamodel.AssetRequest{
		UserID:      userID,
		AssetID:     dto.AssetID,
		Status:      StatusPending,
		Reason:      dto.Reason,
		RequestDate: time.Now(),
	}

	if err := s.repo.Create(row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("request rejected: pending request already exists",
				"asset_id", dto.AssetID, "user_id", userID)
			return nil, internal.ErrDuplicateActiveRequest
		}
		s.logger.Error("failed to create asset request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("asset request submitted",
		"request_id", row.ID, "user_id", userID, "asset_id", dto.AssetID)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, events.NewRequestSubmitted(row.ID, userID, dto.AssetID))
	}

	view, err := s.repo.GetViewByID(row.ID)
	if err != nil {
		s.logger.Error("failed to reload submitted request", "error", err, "request_id", row.ID)
		return nil, err
	}
	return FromView(view), nil
}

// ProcessRequest applies an admin decision. A missing request and an already
// processed one are deliberately indistinguishable to the caller.
func (s *Service) ProcessRequest(ctx context.Context, id int64, dto ProcessRequestDTO) (*AssetRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("decision validation failed", "error", err, "request_id", id)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	row, err := s.repo.Process(id, dto.Status, dto.AdminNotes, time.Now())
	if err != nil {
		if errors.Is(err, ErrNoPendingRequest) {
			s.logger.Warn("decision rejected: request missing or already processed", "request_id", id)
			return nil, internal.ErrAlreadyProcessed
		}
		s.logger.Error("failed to process asset request", "error", err, "request_id", id)
		return nil, err
	}

	s.logger.Info("asset request processed",
		"request_id", row.ID, "decision", row.Status, "asset_id", row.AssetID)

	if s.eventBus != nil {
		switch row.Status {
		case StatusApproved:
			_ = s.eventBus.Publish(ctx, events.NewRequestApproved(row.ID, row.UserID, row.AssetID))
		case StatusRejected:
			_ = s.eventBus.Publish(ctx, events.NewRequestRejected(row.ID, row.UserID, row.AssetID))
		}
	}

	view, err := s.repo.GetViewByID(row.ID)
	if err != nil {
		s.logger.Error("failed to reload processed request", "error", err, "request_id", row.ID)
		return nil, err
	}
	return FromView(view), nil
}
