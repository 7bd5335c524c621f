package asset

import (
	"errors"
	"time"
)

// CreateAssetDTO is the admin payload for adding a catalog entry. Status may
// be supplied here only because a freshly created asset has no request
// history yet; it defaults to Available.
type CreateAssetDTO struct {
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	SerialNumber     string    `json:"serialNumber"`
	PurchaseDate     time.Time `json:"purchaseDate"`
	Status           *string   `json:"status,omitempty"`
	ImageURL         *string   `json:"imageUrl,omitempty"`
	ImageData        []byte    `json:"imageData,omitempty"`
	ImageContentType *string   `json:"imageContentType,omitempty"`
}

func (dto CreateAssetDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Category == "" {
		return errors.New("category is required")
	}
	if dto.SerialNumber == "" {
		return errors.New("serial number is required")
	}
	if dto.Status != nil {
		switch *dto.Status {
		case StatusAvailable, StatusAssigned:
		default:
			return errors.New("status must be either 'Available' or 'Assigned'")
		}
	}
	return nil
}

// UpdateAssetDTO replaces the descriptive fields of an asset. There is no
// status field: administrative edits cannot bypass the approval workflow.
type UpdateAssetDTO struct {
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	SerialNumber     string    `json:"serialNumber"`
	PurchaseDate     time.Time `json:"purchaseDate"`
	ImageURL         *string   `json:"imageUrl,omitempty"`
	ImageData        []byte    `json:"imageData,omitempty"`
	ImageContentType *string   `json:"imageContentType,omitempty"`
}

func (dto UpdateAssetDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Category == "" {
		return errors.New("category is required")
	}
	if dto.SerialNumber == "" {
		return errors.New("serial number is required")
	}
	return nil
}
