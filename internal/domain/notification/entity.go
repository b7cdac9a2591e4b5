package notification

import "time"

// Type represents the type of notification
type Type string

const (
	TypeLeaveSubmitted   Type = "leave_submitted"
	TypeLeaveRecommended Type = "leave_recommended"
	TypeLeaveHRApproved  Type = "leave_hr_approved"
	TypeLeaveApproved    Type = "leave_approved"
	TypeLeaveDisapproved Type = "leave_disapproved"
	TypeLeaveCancelled   Type = "leave_cancelled"
	TypeUndertimeAdded   Type = "undertime_added"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
