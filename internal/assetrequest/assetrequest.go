package assetrequest

import (
	"time"

	requestDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assetrequest"
)

const (
	StatusPending  = requestDatamodel.StatusPending
	StatusApproved = requestDatamodel.StatusApproved
	StatusRejected = requestDatamodel.StatusRejected
)

// AssetRequest is the workflow domain model, carrying the denormalized
// requester email and asset name for list views.
type AssetRequest struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	UserEmail     string     `json:"userEmail"`
	AssetID       int64      `json:"assetId"`
	AssetName     string     `json:"assetName"`
	Status        string     `json:"status"`
	Reason        *string    `json:"reason,omitempty"`
	AdminNotes    *string    `json:"adminNotes,omitempty"`
	RequestDate   time.Time  `json:"requestDate"`
	ProcessedDate *time.Time `json:"processedDate,omitempty"`
}

func (r *AssetRequest) IsPending() bool {
	return r.Status == StatusPending
}

func FromView(row *requestDatamodel.RequestView) *AssetRequest {
	return &AssetRequest{
		ID:            row.ID,
		UserID:        row.UserID,
		UserEmail:     row.UserEmail,
		AssetID:       row.AssetID,
		AssetName:     row.AssetName,
		Status:        row.Status,
		Reason:        row.Reason,
		AdminNotes:    row.AdminNotes,
		RequestDate:   row.RequestDate,
		ProcessedDate: row.ProcessedDate,
	}
}

func FromViewSlice(rows []*requestDatamodel.RequestView) []*AssetRequest {
	result := make([]*AssetRequest, len(rows))
	for i, row := range rows {
		result[i] = FromView(row)
	}
	return result
}
