package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// Action tags written to the audit trail
const (
	ActionLoginSuccess     = "LOGIN_SUCCESS"
	ActionLoginFailure     = "LOGIN_FAILURE"
	ActionLogout           = "LOGOUT"
	ActionCreateUser       = "CREATE_USER"
	ActionDeleteUser       = "DELETE_USER"
	ActionCreateInventory  = "CREATE_INVENTORY"
	ActionDeleteInventory  = "DELETE_INVENTORY"
	ActionExportReport     = "EXPORT_REPORT"
	ActionCreateTraining   = "CREATE_TRAINING"
	ActionDeleteTraining   = "DELETE_TRAINING"
	ActionCreateBatch      = "CREATE_BATCH"
	ActionAddParticipant   = "ADD_PARTICIPANT"
	ActionRecordAttendance = "RECORD_ATTENDANCE"
	ActionCreateContent    = "CREATE_CONTENT"
	ActionReviewContent    = "REVIEW_CONTENT"
	ActionSyncProgress     = "SYNC_PROGRESS"
)

// SystemActor is the label used for entries without an acting user
const SystemActor = "System"

// Log is an immutable audit entry. A nil UserID marks a system or
// unauthenticated event such as a failed login.
type Log struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Action    string
	Details   string
	Timestamp time.Time
}

// NewLog builds an audit entry stamped with the current time
func NewLog(userID *uuid.UUID, action, details string) (*Log, error) {
	if action == "" {
		return nil, shared.Invalid("Audit action cannot be empty")
	}
	return &Log{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, nil
}

// ActorLabel renders "User <id>" or "System" when there is no actor
func (l *Log) ActorLabel() string {
	if l.UserID == nil {
		return SystemActor
	}
	return "User " + l.UserID.String()
}
