package domain

import "time"

// AuditEntry records a successful login or an admin mutation. Entries are
// persisted asynchronously; losing one never fails the originating request.
type AuditEntry struct {
	ActorID  string    `json:"actor_id"`
	Role     Role      `json:"role"`
	Action   string    `json:"action"` // create, update, delete, login
	Entity   string    `json:"entity"` // user, classroom, subject, session
	EntityID string    `json:"entity_id,omitempty"`
	At       time.Time `json:"at"`
}
