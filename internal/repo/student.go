package repo

import (
	"errors"
	"sync"

	"github.com/crucial707/student-records/internal/models"
)

var (
	ErrStudentExists   = errors.New("student already exists")
	ErrStudentNotFound = errors.New("student not found")
)

// ==========================
// StudentRepo
// ==========================

// StudentRepo keeps students in memory keyed by their externally supplied ID.
// Each operation holds the lock for its whole check-and-mutate step.
type StudentRepo struct {
	mu       sync.RWMutex
	students map[int]models.Student
}

// ==========================
// Constructor
// ==========================
func NewStudentRepo() *StudentRepo {
	return &StudentRepo{students: make(map[int]models.Student)}
}

// ==========================
// Create Student
// ==========================
func (r *StudentRepo) Create(id int, s models.Student) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; ok {
		return models.Student{}, ErrStudentExists
	}
	r.students[id] = s
	return s, nil
}

// ==========================
// Get Student
// ==========================
func (r *StudentRepo) Get(id int) (models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[id]
	if !ok {
		return models.Student{}, ErrStudentNotFound
	}
	return s, nil
}

// ==========================
// Update Student (full replacement)
// ==========================
func (r *StudentRepo) Update(id int, s models.Student) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return models.Student{}, ErrStudentNotFound
	}
	r.students[id] = s
	return s, nil
}

// ==========================
// Delete Student
// ==========================
func (r *StudentRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

// Count returns the number of stored students.
func (r *StudentRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}
