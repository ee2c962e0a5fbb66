package domain

import "time"

// Subject is a course taught by a teacher in a classroom.
type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ClassroomID string    `json:"classroom"`
	TeacherID   string    `json:"teacher"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
