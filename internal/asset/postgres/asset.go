package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal/asset"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	requestDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assetrequest"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) asset.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetAll() ([]*assetDatamodel.Asset, error) {
	var rows []*assetDatamodel.Asset
	if err := r.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) GetAvailable() ([]*assetDatamodel.Asset, error) {
	var rows []*assetDatamodel.Asset
	err := r.db.
		Where("status = ?", assetDatamodel.StatusAvailable).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetAssignedToUser resolves a user's holdings through their approved
// requests rather than a column on the asset itself.
func (r *Repository) GetAssignedToUser(userID int64) ([]*assetDatamodel.Asset, error) {
	var rows []*assetDatamodel.Asset
	err := r.db.
		Joins("JOIN asset_requests ON asset_requests.asset_id = assets.id").
		Where("asset_requests.user_id = ? AND asset_requests.status = ?",
			userID, requestDatamodel.StatusApproved).
		Where("assets.status = ?", assetDatamodel.StatusAssigned).
		Order("asset_requests.processed_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) GetByID(id int64) (*assetDatamodel.Asset, error) {
	var row assetDatamodel.Asset
	if err := r.db.First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(row *assetDatamodel.Asset) error {
	return r.db.Create(row).Error
}

// ReviseDescription saves every descriptive column but leaves status out of
// the update set, so catalog edits can never race the approval transaction.
func (r *Repository) ReviseDescription(row *assetDatamodel.Asset) error {
	return r.db.Model(&assetDatamodel.Asset{}).
		Where("id = ?", row.ID).
		Select("name", "category", "serial_number", "purchase_date",
			"image_url", "image_data", "image_content_type", "updated_at").
		Updates(row).Error
}

func (r *Repository) Delete(id int64) error {
	return r.db.Delete(&assetDatamodel.Asset{}, id).Error
}
