package domain

import "time"

// Role is the closed set of roles a user can hold. It is assigned at
// creation and only changes through an explicit update.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleParent  Role = "PARENT"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	}
	return false
}

// User models a member of the school: student, teacher, parent or admin.
// PasswordHash is excluded from serialization; it only travels through the
// login path, where the repository fetches it explicitly.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"rol"`
	ChildrenIDs  []string  `json:"-"`
	Children     []*User   `json:"children,omitempty"`
	ClassroomID  string    `json:"classroom,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
