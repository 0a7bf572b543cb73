package order

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"
)

const maxMessageLength = 255

// HistoryItem is one entry in an order's append-only audit log. The state it
// carries is a snapshot taken when the entry was created; for comment entries
// that is the order's current state, not a transition target.
//
// Entries are immutable in practice after creation; the setters exist for the
// persistence layer.
type HistoryItem struct {
	kernel.Entity

	newState  State
	message   string
	timestamp time.Time
	createdBy *user.User
}

// NewHistoryItem creates an entry stamped with the current time. The state
// snapshot is set by the owning order when the entry is appended.
func NewHistoryItem(createdBy *user.User, message string) *HistoryItem {
	return &HistoryItem{
		message:   message,
		timestamp: time.Now(),
		createdBy: createdBy,
	}
}

// RestoreHistoryItem rebuilds an entry from storage. Intended for the
// persistence layer.
func RestoreHistoryItem(id, version int64, newState State, message string, timestamp time.Time, createdBy *user.User) *HistoryItem {
	h := &HistoryItem{newState: newState, message: message, timestamp: timestamp, createdBy: createdBy}
	h.Entity = kernel.RestoreEntity(id, version)
	return h
}

// NewState returns the state snapshot, or Undefined if none was recorded.
func (h *HistoryItem) NewState() State {
	return h.newState
}

func (h *HistoryItem) SetNewState(state State) {
	h.newState = state
}

func (h *HistoryItem) Message() string {
	return h.message
}

func (h *HistoryItem) SetMessage(message string) {
	h.message = message
}

func (h *HistoryItem) Timestamp() time.Time {
	return h.timestamp
}

func (h *HistoryItem) SetTimestamp(timestamp time.Time) {
	h.timestamp = timestamp
}

func (h *HistoryItem) CreatedBy() *user.User {
	return h.createdBy
}

func (h *HistoryItem) SetCreatedBy(createdBy *user.User) {
	h.createdBy = createdBy
}

func (h *HistoryItem) violations(field string) []errs.FieldViolation {
	var violations []errs.FieldViolation

	if h.message == "" {
		violations = append(violations, errs.FieldViolation{Field: field + ".message", Message: "is required"})
	} else if len(h.message) > maxMessageLength {
		violations = append(violations, errs.FieldViolation{Field: field + ".message", Message: "must be at most 255 characters"})
	}
	if h.timestamp.IsZero() {
		violations = append(violations, errs.FieldViolation{Field: field + ".timestamp", Message: "is required"})
	}
	if h.createdBy == nil {
		violations = append(violations, errs.FieldViolation{Field: field + ".createdBy", Message: "is required"})
	}

	return violations
}
