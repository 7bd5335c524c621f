package assetrequest

import "errors"

type CreateRequestDTO struct {
	AssetID int64   `json:"assetId"`
	Reason  *string `json:"reason,omitempty"`
}

func (dto CreateRequestDTO) Validate() error {
	if dto.AssetID <= 0 {
		return errors.New("asset id is required")
	}
	return nil
}

// ProcessRequestDTO is the admin decision payload. Status must be a terminal
// state; Pending is not a valid decision.
type ProcessRequestDTO struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

func (dto ProcessRequestDTO) Validate() error {
	switch dto.Status {
	case StatusApproved, StatusRejected:
		return nil
	default:
		return errors.New("status must be either 'Approved' or 'Rejected'")
	}
}
