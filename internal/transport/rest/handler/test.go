package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"examportal/internal/model"
	"examportal/internal/service"
	"examportal/internal/transport/rest/middleware"
)

// TestHandler handles test authoring endpoints
type TestHandler struct {
	testSvc *service.TestService
}

// NewTestHandler creates a new test handler
func NewTestHandler(testSvc *service.TestService) *TestHandler {
	return &TestHandler{testSvc: testSvc}
}

// CreateTestRequest is the request body for creating a test
type CreateTestRequest struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Subject         string           `json:"subject"`
	Instructions    string           `json:"instructions"`
	DurationMinutes int              `json:"durationMinutes"`
	Questions       []model.Question `json:"questions"`
}

// Create handles POST /v1/tests
func (h *TestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	test := &model.Test{
		Title:           req.Title,
		Description:     req.Description,
		Subject:         req.Subject,
		Instructions:    req.Instructions,
		DurationMinutes: req.DurationMinutes,
		Questions:       req.Questions,
		CreatedBy:       middleware.GetUserID(r.Context()),
	}

	id, err := h.testSvc.Create(r.Context(), test)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"testId": id})
}

// List handles GET /v1/tests
func (h *TestHandler) List(w http.ResponseWriter, r *http.Request) {
	tests, err := h.testSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tests": tests})
}

// Get handles GET /v1/tests/{testId}
func (h *TestHandler) Get(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	test, err := h.testSvc.GetByID(r.Context(), testID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if test == nil {
		writeError(w, http.StatusNotFound, "test not found")
		return
	}
	writeJSON(w, http.StatusOK, test)
}

// SetActiveRequest is the request body for toggling the active flag
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive handles PUT /v1/tests/{testId}/active
func (h *TestHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := h.testSvc.SetActive(r.Context(), testID, req.Active)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "test not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// ListActive handles GET /v1/tests/active (student view)
func (h *TestHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	tests, err := h.testSvc.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Students only get the outline: no questions, no answers
	type listing struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		Subject         string `json:"subject"`
		Description     string `json:"description,omitempty"`
		DurationMinutes int    `json:"durationMinutes"`
		QuestionCount   int    `json:"questionCount"`
	}
	listings := make([]listing, 0, len(tests))
	for _, t := range tests {
		listings = append(listings, listing{
			ID:              t.ID,
			Title:           t.Title,
			Subject:         t.Subject,
			Description:     t.Description,
			DurationMinutes: t.DurationMinutes,
			QuestionCount:   len(t.Questions),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tests": listings})
}
