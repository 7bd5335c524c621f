package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventRequestSubmitted = "assetrequest.submitted"
	EventRequestApproved  = "assetrequest.approved"
	EventRequestRejected  = "assetrequest.rejected"
)

// NewRequestSubmitted is published when a user creates a new asset request.
func NewRequestSubmitted(requestID, userID, assetID int64) BaseEvent {
	return newRequestEvent(EventRequestSubmitted, requestID, userID, assetID)
}

// NewRequestApproved is published after an approval transaction commits; the
// linked asset has already moved to Assigned at this point.
func NewRequestApproved(requestID, userID, assetID int64) BaseEvent {
	return newRequestEvent(EventRequestApproved, requestID, userID, assetID)
}

func NewRequestRejected(requestID, userID, assetID int64) BaseEvent {
	return newRequestEvent(EventRequestRejected, requestID, userID, assetID)
}

func newRequestEvent(eventType string, requestID, userID, assetID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"request_id": requestID,
			"user_id":    userID,
			"asset_id":   assetID,
		},
	}
}
