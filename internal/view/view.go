// Package view describes what the students page shows.
//
// RenderList turns students into a ListView, a plain description of the
// cards to draw. Page holds the whole document state (list, banners,
// form) and Render writes it out as HTML. Nothing here does I/O besides
// writing to the io.Writer given to Render.
package view

import (
	"strconv"

	"github.com/aanand-mishra/students-web/internal/types"
)

// Placeholder texts of the list area.
const (
	EmptyListMessage  = "📚 No students found. Add your first student!"
	FailedListMessage = "Failed to load students"
)

// Fallback texts for optional card fields.
const (
	NotAvailable = "N/A"
	NotSpecified = "Not specified"
)

const (
	DeletePrompt = "Are you sure you want to delete this student?"

	// FormSectionID anchors the form so it can be scrolled into view.
	FormSectionID = "form-section"
)

// Card is one rendered student.
type Card struct {
	ID     int64
	Title  string
	Email  string
	Age    string
	Course string
}

// ListView is the content of the list area: either a placeholder message
// or a sequence of cards.
type ListView struct {
	Placeholder string
	Cards       []Card
}

// Empty reports whether the list area shows a placeholder instead of cards.
func (l ListView) Empty() bool {
	return len(l.Cards) == 0
}

// RenderList builds the list area for students. An empty sequence yields
// the empty-state placeholder.
func RenderList(students []types.Student) ListView {
	if len(students) == 0 {
		return ListView{Placeholder: EmptyListMessage}
	}

	cards := make([]Card, 0, len(students))
	for _, s := range students {
		cards = append(cards, RenderCard(s))
	}
	return ListView{Cards: cards}
}

// FailedList is the list area after a failed load.
func FailedList() ListView {
	return ListView{Placeholder: FailedListMessage}
}

// RenderCard applies the display fallbacks: a missing or empty email and
// a missing or zero age show "N/A", a missing or empty course shows
// "Not specified".
func RenderCard(s types.Student) Card {
	card := Card{
		ID:     s.ID,
		Title:  s.FirstName + " " + s.LastName,
		Email:  NotAvailable,
		Age:    NotAvailable,
		Course: NotSpecified,
	}
	if s.Email != nil && *s.Email != "" {
		card.Email = *s.Email
	}
	if s.Age != nil && *s.Age != 0 {
		card.Age = strconv.Itoa(*s.Age)
	}
	if s.Course != nil && *s.Course != "" {
		card.Course = *s.Course
	}
	return card
}

// FormFields are the raw values of the student form, as typed.
// ID is the hidden student-id field.
type FormFields struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Age       string
	Course    string
}

// FieldsFor fills the form from a fetched student. Optional fields fall
// back to "" (a zero age too).
func FieldsFor(s types.Student) FormFields {
	f := FormFields{
		ID:        strconv.FormatInt(s.ID, 10),
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
	if s.Email != nil {
		f.Email = *s.Email
	}
	if s.Age != nil && *s.Age != 0 {
		f.Age = strconv.Itoa(*s.Age)
	}
	if s.Course != nil {
		f.Course = *s.Course
	}
	return f
}

// FormMode is the form chrome: heading, submit label and whether the
// cancel action is offered.
type FormMode struct {
	Editing       bool
	Title         string
	SubmitLabel   string
	CancelVisible bool
}

// CreateMode is the chrome for adding a new student.
func CreateMode() FormMode {
	return FormMode{
		Title:       "Add New Student",
		SubmitLabel: "Add Student",
	}
}

// EditMode is the chrome for updating an existing student.
func EditMode() FormMode {
	return FormMode{
		Editing:       true,
		Title:         "Edit Student",
		SubmitLabel:   "Update Student",
		CancelVisible: true,
	}
}
