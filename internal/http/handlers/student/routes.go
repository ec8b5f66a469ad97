package student

import (
	"net/http"

	"github.com/aanand-mishra/students-web/internal/storage"
)

// Register mounts the student routes on mux:
//
//	POST   /api/students        → create a new student
//	GET    /api/students        → list all students
//	GET    /api/students/{id}   → get one student by ID
//	PUT    /api/students/{id}   → update a student
//	DELETE /api/students/{id}   → delete a student
func Register(mux *http.ServeMux, storage storage.Storage) {
	mux.HandleFunc("POST /api/students", New(storage))
	mux.HandleFunc("GET /api/students", GetList(storage))
	mux.HandleFunc("GET /api/students/{id}", GetByID(storage))
	mux.HandleFunc("PUT /api/students/{id}", Update(storage))
	mux.HandleFunc("DELETE /api/students/{id}", Delete(storage))
}
