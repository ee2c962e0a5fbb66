package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// pagedResponse is the pagination envelope used by every list endpoint.
type pagedResponse struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Data        any   `json:"data"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// --- Users ---

// Field limits mirror the persistence schema of the original system: names
// 3-22 chars, passwords at least 8.
type createUserRequest struct {
	Email       string   `json:"email"     validate:"required,email"`
	Password    string   `json:"password"  validate:"required,min=8"`
	FirstName   string   `json:"firstName" validate:"required,min=3,max=22"`
	LastName    string   `json:"lastName"  validate:"required,min=3,max=22"`
	Role        string   `json:"rol"       validate:"required,oneof=STUDENT TEACHER PARENT ADMIN"`
	Children    []string `json:"children"`
	ClassroomID string   `json:"classroom"`
}

type updateUserRequest struct {
	Email       string   `json:"email"     validate:"omitempty,email"`
	Password    string   `json:"password"  validate:"omitempty,min=8"`
	FirstName   string   `json:"firstName" validate:"omitempty,min=3,max=22"`
	LastName    string   `json:"lastName"  validate:"omitempty,min=3,max=22"`
	Role        string   `json:"rol"       validate:"omitempty,oneof=STUDENT TEACHER PARENT ADMIN"`
	Children    []string `json:"children"`
	ClassroomID string   `json:"classroom"`
}

// --- Classrooms ---

type classroomRequest struct {
	Name string `json:"name" validate:"required,min=5,max=30"`
}

type updateClassroomRequest struct {
	Name string `json:"name" validate:"omitempty,min=5,max=30"`
}

// --- Subjects ---

type createSubjectRequest struct {
	Name        string `json:"name"      validate:"required,min=5,max=40"`
	ClassroomID string `json:"classroom" validate:"required"`
	TeacherID   string `json:"teacher"   validate:"required"`
}

type updateSubjectRequest struct {
	Name        string `json:"name"      validate:"omitempty,min=5,max=40"`
	ClassroomID string `json:"classroom"`
	TeacherID   string `json:"teacher"`
}
