// Package student contains the HTTP handlers of the students API, the
// REST collection the web front end talks to.
//
// HANDLER PATTERN: factory functions accept their dependencies (storage)
// and return an http.HandlerFunc closing over them:
//
//	router.HandleFunc("POST /api/students", student.New(storage))
//	//                                      ^^^^^^^^^^^^^^^^^^^^
//	//              New(storage) runs ONCE at startup; the returned
//	//              func runs on EVERY incoming request.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"
	"github.com/aanand-mishra/students-web/internal/utils/response"
)

// validate is shared by all handlers. A *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

// newValidator reports field names by their json tag ("firstName"), which
// is what API clients actually send.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "firstName": "Ann", "lastName": "Lee", "email": "", "age": null, "course": "Math" }
//
// Success response (201 Created): the stored student.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		input, ok := decodeInput(w, r)
		if !ok {
			return
		}

		created, err := storage.CreateStudent(input)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//	404 Not Found    — no such student
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		student, err := storage.GetStudentByID(intID)
		if err != nil {
			writeStorageError(w, "error getting student", id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns an empty array [] (not null) when there are no students.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := storage.GetStudents()
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL fields of an existing student and returns the stored record.
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		input, ok := decodeInput(w, r)
		if !ok {
			return
		}

		updated, err := storage.UpdateStudentByID(intID, input)
		if err != nil {
			writeStorageError(w, "error updating student", id, err)
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		if err := storage.DeleteStudentByID(intID); err != nil {
			writeStorageError(w, "error deleting student", id, err)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// decodeInput reads and validates a StudentInput body. On failure it has
// already written the 400 response and returns false.
func decodeInput(w http.ResponseWriter, r *http.Request) (types.StudentInput, bool) {
	var input types.StudentInput

	err := json.NewDecoder(r.Body).Decode(&input)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return input, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return input, false
	}

	if err := validate.Struct(input); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return input, false
		}
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return input, false
	}

	return input, true
}

func parseID(w http.ResponseWriter, id string) (int64, bool) {
	intID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return intID, true
}

// writeStorageError maps storage.ErrNotFound to 404 and anything else to 500.
func writeStorageError(w http.ResponseWriter, msg, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}

	slog.Error(msg,
		slog.String("id", id),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError,
		response.GeneralError(err))
}
