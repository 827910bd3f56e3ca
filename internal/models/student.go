package models

import "fmt"

// Student is a [Person] registered for a course. The course name is free-form.
type Student struct {
	Person
	courseName string
}

// Enrollment is the flat record persisted for each [Student].
type Enrollment struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	CourseName string `json:"course_name"`
}

// NewStudent validates the names and returns a new [Student].
//
// A validation failure returns a nil student and an error wrapping [shared.ErrInvalidName].
func NewStudent(firstName, lastName, courseName string) (*Student, error) {
	p, err := NewPerson(firstName, lastName)
	if err != nil {
		return nil, err
	}
	return &Student{Person: p, courseName: courseName}, nil
}

// NewStudentFromEnrollment builds a [Student] from a persisted record.
func NewStudentFromEnrollment(e Enrollment) (*Student, error) {
	return NewStudent(e.FirstName, e.LastName, e.CourseName)
}

// CourseName returns the course exactly as entered.
func (s *Student) CourseName() string { return s.courseName }

// SetCourseName replaces the course name.
func (s *Student) SetCourseName(v string) { s.courseName = v }

// Enrollment converts s to its flat record with title-cased names.
func (s *Student) Enrollment() Enrollment {
	return Enrollment{
		FirstName:  s.FirstName(),
		LastName:   s.LastName(),
		CourseName: s.courseName,
	}
}

func (s *Student) String() string {
	return fmt.Sprintf("%s %s (%s)", s.FirstName(), s.LastName(), s.courseName)
}

// Enrollments flattens a slice of students in order.
func Enrollments(students []*Student) []Enrollment {
	out := make([]Enrollment, 0, len(students))
	for _, s := range students {
		out = append(out, s.Enrollment())
	}
	return out
}
