// Package storage defines the Storage interface, the contract any
// database backend must satisfy to serve the students API.
//
// Handlers depend only on this interface, so tests can pass a fake and
// a new database only needs a new implementation plus one line in main.go.
package storage

import (
	"errors"

	"github.com/aanand-mishra/students-web/internal/types"
)

// ErrNotFound is returned (wrapped) when no student has the requested id.
var ErrNotFound = errors.New("student not found")

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a new student record and returns it with its
	// generated id.
	CreateStudent(input types.StudentInput) (types.Student, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns an error wrapping ErrNotFound if it does not exist.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student, ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID replaces all fields of an existing student and
	// returns the stored record.
	UpdateStudentByID(id int64, input types.StudentInput) (types.Student, error)

	// DeleteStudentByID removes a student record permanently.
	DeleteStudentByID(id int64) error
}
