package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/student-records/internal/metrics"
	"github.com/crucial707/student-records/internal/middleware"
	"github.com/crucial707/student-records/internal/models"
	"github.com/crucial707/student-records/internal/repo"
	"github.com/go-chi/chi/v5"
)

// StudentStore is the record store the student handlers operate on.
type StudentStore interface {
	Create(id int, s models.Student) (models.Student, error)
	Get(id int) (models.Student, error)
	Update(id int, s models.Student) (models.Student, error)
	Delete(id int) error
	Count() int
}

// ==========================
// StudentHandler
// ==========================
type StudentHandler struct {
	Repo StudentStore
}

// studentInput uses pointers so that presence is checked, not content: "" and 0 are valid values.
// It is filled by readStudentInput, not by decoding into it directly.
type studentInput struct {
	Name   *string `json:"name" validate:"required"`
	Gender *string `json:"Gender" validate:"required"`
	Age    *int    `json:"age" validate:"required"`
}

func (in studentInput) student() models.Student {
	return models.Student{Name: *in.Name, Gender: *in.Gender, Age: *in.Age}
}

type studentMessage struct {
	Message string          `json:"message"`
	Student *models.Student `json:"student,omitempty"`
}

// ==========================
// Create Student
// ==========================
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	s, ok := decodeStudent(w, r)
	if !ok {
		return
	}

	created, err := h.Repo.Create(id, s)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.mutated(r, "student created", id)

	writeJSON(w, http.StatusOK, studentMessage{Message: "Student added successfully", Student: &created})
}

// ==========================
// Get Student
// ==========================
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	s, err := h.Repo.Get(id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

// ==========================
// Update Student
// ==========================
func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	s, ok := decodeStudent(w, r)
	if !ok {
		return
	}

	updated, err := h.Repo.Update(id, s)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.mutated(r, "student updated", id)

	writeJSON(w, http.StatusOK, studentMessage{Message: "Student updated successfully", Student: &updated})
}

// ==========================
// Delete Student
// ==========================
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.mutated(r, "student deleted", id)

	writeJSON(w, http.StatusOK, studentMessage{Message: "Student deleted successfully"})
}

func (h *StudentHandler) mutated(r *http.Request, msg string, id int) {
	subject, _ := middleware.GetSubject(r.Context())
	slog.Info(msg, "student_id", id, "subject", subject)
	metrics.SetStudentsStored(h.Repo.Count())
}

// writeStoreError maps store errors to HTTP responses.
func (h *StudentHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrStudentExists):
		JSONError(w, "Student already exists", http.StatusBadRequest)
	case errors.Is(err, repo.ErrStudentNotFound):
		JSONError(w, "Student not found", http.StatusNotFound)
	default:
		slog.Error("student store", "method", r.Method, "path", r.URL.Path, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func studentID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid student id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeStudent(w http.ResponseWriter, r *http.Request) (models.Student, bool) {
	input, fields, err := readStudentInput(r.Body)
	if err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return models.Student{}, false
	}
	if err := validate.Struct(input); err != nil {
		missing, ok := validationFields(err)
		if !ok {
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return models.Student{}, false
		}
		for k, v := range missing {
			if _, seen := fields[k]; !seen {
				fields[k] = v
			}
		}
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return models.Student{}, false
	}
	return input.student(), true
}
