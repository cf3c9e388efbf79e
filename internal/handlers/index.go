package handlers

import "net/http"

// IndexHandler describes the API at the root path.
type IndexHandler struct {
	Author string
}

// Index lists the student endpoints and the API author.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"endpoints": map[string]string{
			"Create": "POST /students/{student_id}",
			"Read":   "GET /students/{student_id}",
			"Update": "PUT /students/{student_id}",
			"Delete": "DELETE /students/{student_id}",
		},
		"author": h.Author,
	})
}
