package dto

import "github.com/google/uuid"

// MarkReadRequest marks one notification read, or all of the user's
// notifications when All is set.
type MarkReadRequest struct {
	Fid            int64      `json:"fid" binding:"omitempty,gt=0"`
	NotificationID *uuid.UUID `json:"notificationId"`
	All            bool       `json:"all"`
}
