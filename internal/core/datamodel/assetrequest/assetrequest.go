package assetrequest

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type AssetRequest struct {
	ID            int64      `gorm:"primaryKey"`
	UserID        int64      `gorm:"column:user_id;not null"`
	AssetID       int64      `gorm:"column:asset_id;not null"`
	Status        string     `gorm:"column:status;not null;default:Pending"`
	Reason        *string    `gorm:"column:reason"`
	AdminNotes    *string    `gorm:"column:admin_notes"`
	RequestDate   time.Time  `gorm:"column:request_date"`
	ProcessedDate *time.Time `gorm:"column:processed_date"`
}

func (AssetRequest) TableName() string {
	return "asset_requests"
}

// RequestView is the joined read shape: a request row denormalized with the
// requester's email and the asset's name.
type RequestView struct {
	ID            int64      `gorm:"column:id"`
	UserID        int64      `gorm:"column:user_id"`
	UserEmail     string     `gorm:"column:user_email"`
	AssetID       int64      `gorm:"column:asset_id"`
	AssetName     string     `gorm:"column:asset_name"`
	Status        string     `gorm:"column:status"`
	Reason        *string    `gorm:"column:reason"`
	AdminNotes    *string    `gorm:"column:admin_notes"`
	RequestDate   time.Time  `gorm:"column:request_date"`
	ProcessedDate *time.Time `gorm:"column:processed_date"`
}
