package domain

import "time"

// Classroom groups students and subjects.
type Classroom struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClassroomDetail is the enriched single-classroom view: the classroom plus
// the students assigned to it and the subjects taught in it.
type ClassroomDetail struct {
	Classroom
	Students []*User    `json:"students"`
	Subjects []*Subject `json:"subjects"`
}
