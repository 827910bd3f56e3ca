package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/enroll/internal/models"
)

var (
	_ list.Item = studentItem{}
)

// studentItem wraps [models.Student] to implement [list.Item].
type studentItem struct {
	student *models.Student
}

func (i studentItem) FilterValue() string { return i.student.Person.String() + " " + i.student.CourseName() }
func (i studentItem) Title() string       { return i.student.Person.String() }
func (i studentItem) Description() string { return i.student.CourseName() }

func studentItems(students []*models.Student) []list.Item {
	items := make([]list.Item, len(students))
	for i, s := range students {
		items[i] = studentItem{student: s}
	}
	return items
}
