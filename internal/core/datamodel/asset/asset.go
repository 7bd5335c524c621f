package asset

import "time"

const (
	StatusAvailable = "Available"
	StatusAssigned  = "Assigned"

	// Reserved states, not used by the approval engine.
	StatusMaintenance = "Maintenance"
	StatusRetired     = "Retired"
)

type Asset struct {
	ID               int64      `gorm:"primaryKey"`
	Name             string     `gorm:"column:name;not null"`
	Category         string     `gorm:"column:category;not null"`
	SerialNumber     string     `gorm:"column:serial_number;uniqueIndex;not null"`
	PurchaseDate     time.Time  `gorm:"column:purchase_date"`
	Status           string     `gorm:"column:status;not null;default:Available"`
	ImageURL         *string    `gorm:"column:image_url"`
	ImageData        []byte     `gorm:"column:image_data"`
	ImageContentType *string    `gorm:"column:image_content_type"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}
