package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"examportal/internal/model"
	"examportal/internal/service"
	"examportal/internal/transport/rest/middleware"
)

// AttemptHandler handles the student test-taking endpoints
type AttemptHandler struct {
	attemptSvc *service.AttemptService
}

// NewAttemptHandler creates a new attempt handler
func NewAttemptHandler(attemptSvc *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptSvc: attemptSvc}
}

// StartRequest is the request body for starting an attempt
type StartRequest struct {
	TestID string `json:"testId"`
}

// Start handles POST /v1/attempts
func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.attemptSvc.Start(r.Context(), req.TestID,
		middleware.GetUserID(r.Context()), middleware.GetUserName(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTestInactive):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// SaveAnswerRequest is the request body for saving an answer
type SaveAnswerRequest struct {
	QuestionID string            `json:"questionId"`
	Answer     model.AnswerValue `json:"answer"`
}

// SaveAnswer handles PUT /v1/attempts/{attemptId}/answers
func (h *AttemptHandler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	var req SaveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.attemptSvc.SaveAnswer(attemptID, req.QuestionID, req.Answer); err != nil {
		writeAttemptError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Submit handles POST /v1/attempts/{attemptId}/submit
func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	sub, err := h.attemptSvc.Submit(r.Context(), attemptID)
	if err != nil {
		writeAttemptError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// Abandon handles DELETE /v1/attempts/{attemptId}
func (h *AttemptHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	if err := h.attemptSvc.Abandon(attemptID); err != nil {
		writeAttemptError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

// RecordViolationRequest is the HTTP fallback for clients without WebSocket
type RecordViolationRequest struct {
	Kind   model.ViolationKind `json:"kind"`
	Detail string              `json:"detail,omitempty"`
}

// RecordViolation handles POST /v1/attempts/{attemptId}/violations
func (h *AttemptHandler) RecordViolation(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	var req RecordViolationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.attemptSvc.RecordViolation(attemptID, req.Kind, req.Detail); err != nil {
		writeAttemptError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func writeAttemptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAttemptNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAttemptFinalized):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrQuestionNotInTest), errors.Is(err, service.ErrAnswerKindMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
