// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	if dir := filepath.Dir(cfg.StoragePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// email, age and course are optional and stored as NULL when absent.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT    NOT NULL,
			last_name  TEXT    NOT NULL,
			email      TEXT,
			age        INTEGER,
			course     TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row and returns it as stored.
//
// Placeholders (?) keep user input out of the SQL text; the driver sends
// the values separately.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(input types.StudentInput) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (first_name, last_name, email, age, course) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	student := input.Student(0)

	result, err := stmt.Exec(
		student.FirstName,
		student.LastName,
		nullable(student.Email),
		nullable(student.Age),
		nullable(student.Course),
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	student.ID = lastID
	return student, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudentByID fetches exactly one student row matched by primary key.
//
// Scan reads the columns IN ORDER into the given pointers. The optional
// columns scan into pointer fields, which Scan sets to nil on NULL.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, first_name, last_name, email, age, course FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudents returns all student rows as a slice, oldest first.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, first_name, last_name, email, age, course FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so the API encodes [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateStudentByID replaces a student's data with the provided values.
// Returns the updated student so the caller can echo it back to the client.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdateStudentByID(id int64, input types.StudentInput) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET first_name = ?, last_name = ?, email = ?, age = ?, course = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	student := input.Student(id)

	result, err := stmt.Exec(
		student.FirstName,
		student.LastName,
		nullable(student.Email),
		nullable(student.Age),
		nullable(student.Course),
		id,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	if err := requireAffected(result, id); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	return s.GetStudentByID(id)
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteStudentByID removes a student row by primary key.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeleteStudentByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	if err := requireAffected(result, id); err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var student types.Student
	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.Age,
		&student.Course,
	)
	return student, err
}

// nullable turns a nil pointer into NULL and dereferences anything else.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func requireAffected(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
