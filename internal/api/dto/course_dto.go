package dto

// CourseRequest payload for create/update.
type CourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ClassRequest payload for create/update.
type ClassRequest struct {
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	CourseID  string  `json:"course_id"`
	TeacherID *string `json:"teacher_id,omitempty"`
}

// EnrollRequest payload for placing a student in a class.
type EnrollRequest struct {
	StudentID string `json:"student_id"`
}
