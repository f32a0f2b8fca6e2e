package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/staffdb/app/store"
)

// APIConnectionResponse is the JSON response for /api/v1/connection
type APIConnectionResponse struct {
	Status      string `json:"status"`
	UserVersion int    `json:"user_version"`
}

// APISchemaResponse is the JSON response for /api/v1/schema
type APISchemaResponse struct {
	Status string `json:"status"`
	Table  string `json:"table"`
}

// APIAddResponse is the JSON response for a created employee
type APIAddResponse struct {
	ID int64 `json:"id"`
}

// APISearchResponse is the JSON response for employee search
type APISearchResponse struct {
	Employees []store.Employee `json:"employees"`
	Count     int              `json:"count"`
}

// handleConnection opens the database if needed and runs a trivial statement
func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	db, err := s.conn.Connection(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "database connection failed")
		return
	}

	version, err := store.Check(r.Context(), db)
	if err != nil {
		s.writeStoreError(w, err, "database connection failed")
		return
	}

	s.writeJSON(w, http.StatusOK, APIConnectionResponse{Status: "ok", UserVersion: version})
}

// handleSchema creates the employee table if missing
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	db, err := s.conn.Connection(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "database connection failed")
		return
	}

	if err := store.EnsureSchema(r.Context(), db); err != nil {
		s.writeStoreError(w, err, "failed to create table")
		return
	}

	s.writeJSON(w, http.StatusOK, APISchemaResponse{Status: "ok", Table: store.TableName})
}

// handleAddEmployee inserts employee from form fields name, salary and role
func (s *Server) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	emp, err := store.ParseEmployee(r.PostFormValue("name"), r.PostFormValue("salary"), r.PostFormValue("role"))
	if err != nil {
		s.writeStoreError(w, err, "invalid employee")
		return
	}

	db, err := s.conn.Connection(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "database connection failed")
		return
	}

	id, err := store.InsertEmployee(r.Context(), db, emp)
	if err != nil {
		s.writeStoreError(w, err, "failed to add employee")
		return
	}

	log.Printf("[INFO] employee %q added with id %d", emp.Name, id)
	s.writeJSON(w, http.StatusCreated, APIAddResponse{ID: id})
}

// handleSearchEmployees returns employees matching query params text, name, role, min_salary and case_sensitive
func (s *Server) handleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ParseFilter(q.Get("text"), q.Get("min_salary"))
	filter.Name = q.Get("name")
	filter.Role = q.Get("role")
	if cs := q.Get("case_sensitive"); cs != "" {
		val, err := strconv.ParseBool(cs)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "invalid case_sensitive value")
			return
		}
		filter.CaseSensitive = val
	}

	db, err := s.conn.Connection(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "database connection failed")
		return
	}

	employees, err := store.SearchEmployees(r.Context(), db, filter)
	if err != nil {
		s.writeStoreError(w, err, "search failed")
		return
	}

	s.writeJSON(w, http.StatusOK, APISearchResponse{Employees: employees, Count: len(employees)})
}

// writeStoreError maps store error kinds to http status codes.
// Validation errors are reported to the client as is, others get the generic message.
func (s *Server) writeStoreError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, store.ErrValidation):
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrConnection):
		log.Printf("[ERROR] %s: %v", message, err)
		s.writeJSONError(w, http.StatusServiceUnavailable, message)
	default:
		log.Printf("[ERROR] %s: %v", message, err)
		s.writeJSONError(w, http.StatusInternalServerError, message)
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
