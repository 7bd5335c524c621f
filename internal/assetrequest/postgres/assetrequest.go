package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal/assetrequest"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	requestDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assetrequest"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) assetrequest.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) viewQuery() *gorm.DB {
	return r.db.
		Table("asset_requests").
		Select(`asset_requests.id,
			asset_requests.user_id,
			users.email AS user_email,
			asset_requests.asset_id,
			assets.name AS asset_name,
			asset_requests.status,
			asset_requests.reason,
			asset_requests.admin_notes,
			asset_requests.request_date,
			asset_requests.processed_date`).
		Joins("JOIN users ON users.id = asset_requests.user_id").
		Joins("JOIN assets ON assets.id = asset_requests.asset_id")
}

func (r *Repository) GetAllViews() ([]*requestDatamodel.RequestView, error) {
	var rows []*requestDatamodel.RequestView
	err := r.viewQuery().
		Order("asset_requests.request_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) GetViewsByUser(userID int64) ([]*requestDatamodel.RequestView, error) {
	var rows []*requestDatamodel.RequestView
	err := r.viewQuery().
		Where("asset_requests.user_id = ?", userID).
		Order("asset_requests.request_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) GetViewByID(id int64) (*requestDatamodel.RequestView, error) {
	var row requestDatamodel.RequestView
	err := r.viewQuery().
		Where("asset_requests.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// Create inserts a pending request. The partial unique index on
// (user_id, asset_id) WHERE status = 'Pending' turns a duplicate submit into
// gorm.ErrDuplicatedKey.
func (r *Repository) Create(row *requestDatamodel.AssetRequest) error {
	return r.db.Create(row).Error
}

// Process applies a terminal decision inside one transaction. The UPDATE is
// guarded on status = 'Pending' and checked via RowsAffected, so two admins
// deciding the same request cannot both win; approval flips the asset to
// Assigned in the same transaction.
func (r *Repository) Process(id int64, decision string, adminNotes *string, processedAt time.Time) (*requestDatamodel.AssetRequest, error) {
	var row requestDatamodel.AssetRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&requestDatamodel.AssetRequest{}).
			Where("id = ? AND status = ?", id, requestDatamodel.StatusPending).
			Updates(map[string]interface{}{
				"status":         decision,
				"admin_notes":    adminNotes,
				"processed_date": processedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return assetrequest.ErrNoPendingRequest
		}

		if err := tx.First(&row, id).Error; err != nil {
			return err
		}

		if decision == requestDatamodel.StatusApproved {
			return tx.Model(&assetDatamodel.Asset{}).
				Where("id = ?", row.AssetID).
				Updates(map[string]interface{}{
					"status":     assetDatamodel.StatusAssigned,
					"updated_at": processedAt,
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}
