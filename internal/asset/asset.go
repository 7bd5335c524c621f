package asset

import (
	"time"

	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
)

const (
	StatusAvailable = assetDatamodel.StatusAvailable
	StatusAssigned  = assetDatamodel.StatusAssigned
)

// Asset is the catalog domain model. Status is deliberately absent from every
// write DTO: it only moves through the approval engine's transaction.
type Asset struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	SerialNumber     string     `json:"serialNumber"`
	PurchaseDate     time.Time  `json:"purchaseDate"`
	Status           string     `json:"status"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
	ImageData        []byte     `json:"imageData,omitempty"`
	ImageContentType *string    `json:"imageContentType,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

func (a *Asset) IsAvailable() bool {
	return a.Status == StatusAvailable
}

func FromDataModel(row *assetDatamodel.Asset) *Asset {
	return &Asset{
		ID:               row.ID,
		Name:             row.Name,
		Category:         row.Category,
		SerialNumber:     row.SerialNumber,
		PurchaseDate:     row.PurchaseDate,
		Status:           row.Status,
		ImageURL:         row.ImageURL,
		ImageData:        row.ImageData,
		ImageContentType: row.ImageContentType,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*assetDatamodel.Asset) []*Asset {
	result := make([]*Asset, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
