package asset

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
)

// RepositoryAPI is the catalog's data access surface. Note the absence of a
// status mutator: only the approval engine's transaction moves status.
type RepositoryAPI interface {
	GetAll() ([]*assetDatamodel.Asset, error)
	GetAvailable() ([]*assetDatamodel.Asset, error)
	GetAssignedToUser(userID int64) ([]*assetDatamodel.Asset, error)
	GetByID(id int64) (*assetDatamodel.Asset, error)
	Create(row *assetDatamodel.Asset) error
	ReviseDescription(row *assetDatamodel.Asset) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllAssets() ([]*Asset, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list assets", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetAvailableAssets() ([]*Asset, error) {
	rows, err := s.repo.GetAvailable()
	if err != nil {
		s.logger.Error("failed to list available assets", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// GetAssignedAssets lists assets the user holds through approved requests.
func (s *Service) GetAssignedAssets(userID int64) ([]*Asset, error) {
	rows, err := s.repo.GetAssignedToUser(userID)
	if err != nil {
		s.logger.Error("failed to list assigned assets", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetAssetByID(id int64) (*Asset, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		s.logger.Error("failed to get asset", "error", err, "asset_id", id)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateAsset(dto CreateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("asset validation failed", "error", err)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	status := StatusAvailable
	if dto.Status != nil {
		status = *dto.Status
	}

	now := time.Now()
	row := &assetDatamodel.Asset{
		Name:             dto.Name,
		Category:         dto.Category,
		SerialNumber:     dto.SerialNumber,
		PurchaseDate:     dto.PurchaseDate,
		Status:           status,
		ImageURL:         dto.ImageURL,
		ImageData:        dto.ImageData,
		ImageContentType: dto.ImageContentType,
		CreatedAt:        now,
		UpdatedAt:        &now,
	}

	if err := s.repo.Create(row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("asset creation rejected: duplicate serial number", "serial_number", dto.SerialNumber)
			return nil, internal.ErrDuplicateSerialNumber
		}
		s.logger.Error("failed to create asset", "error", err)
		return nil, err
	}

	s.logger.Info("asset created",
		"asset_id", row.ID,
		"serial_number", row.SerialNumber,
		"status", row.Status)

	return FromDataModel(row), nil
}

// ReviseAsset replaces the descriptive fields of an existing asset and bumps
// its update timestamp. The stored status is preserved untouched.
func (s *Service) ReviseAsset(id int64, dto UpdateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("asset validation failed", "error", err, "asset_id", id)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		s.logger.Error("failed to load asset for revision", "error", err, "asset_id", id)
		return nil, err
	}

	now := time.Now()
	row.Name = dto.Name
	row.Category = dto.Category
	row.SerialNumber = dto.SerialNumber
	row.PurchaseDate = dto.PurchaseDate
	row.ImageURL = dto.ImageURL
	row.ImageData = dto.ImageData
	row.ImageContentType = dto.ImageContentType
	row.UpdatedAt = &now

	if err := s.repo.ReviseDescription(row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("asset revision rejected: duplicate serial number", "serial_number", dto.SerialNumber)
			return nil, internal.ErrDuplicateSerialNumber
		}
		s.logger.Error("failed to revise asset", "error", err, "asset_id", id)
		return nil, err
	}

	s.logger.Info("asset revised", "asset_id", id, "serial_number", row.SerialNumber)

	return FromDataModel(row), nil
}

func (s *Service) DeleteAsset(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrAssetNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete asset", "error", err, "asset_id", id)
		return err
	}

	s.logger.Info("asset deleted", "asset_id", id)
	return nil
}

// GetAssetImage returns the stored image payload for an asset, falling back
// to image/jpeg when no content type was recorded.
func (s *Service) GetAssetImage(id int64) ([]byte, string, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", internal.ErrAssetNotFound
		}
		return nil, "", err
	}

	if len(row.ImageData) == 0 {
		return nil, "", internal.ErrImageNotFound
	}

	contentType := "image/jpeg"
	if row.ImageContentType != nil && *row.ImageContentType != "" {
		contentType = *row.ImageContentType
	}

	return row.ImageData, contentType, nil
}
