package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"examportal/internal/model"
	"examportal/internal/repository"
	"examportal/internal/service"
	"examportal/internal/transport/rest/middleware"
)

// ReportHandler handles leaderboard, proctor, attainment, and export
// endpoints for teachers, plus a student's own submission history.
type ReportHandler struct {
	leaderboardSvc *service.LeaderboardService
	proctorSvc     *service.ProctorService
	outcomeSvc     *service.OutcomeService
	exportSvc      *service.ExportService
	submissionRepo repository.SubmissionRepo
	outcomeRepo    repository.OutcomeRepo
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	leaderboardSvc *service.LeaderboardService,
	proctorSvc *service.ProctorService,
	outcomeSvc *service.OutcomeService,
	exportSvc *service.ExportService,
	submissionRepo repository.SubmissionRepo,
	outcomeRepo repository.OutcomeRepo,
) *ReportHandler {
	return &ReportHandler{
		leaderboardSvc: leaderboardSvc,
		proctorSvc:     proctorSvc,
		outcomeSvc:     outcomeSvc,
		exportSvc:      exportSvc,
		submissionRepo: submissionRepo,
		outcomeRepo:    outcomeRepo,
	}
}

// Leaderboard handles GET /v1/tests/{testId}/leaderboard
func (h *ReportHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	entries, err := h.leaderboardSvc.ForTest(r.Context(), testID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}

// Submissions handles GET /v1/tests/{testId}/submissions
func (h *ReportHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	subs, err := h.submissionRepo.ListByTest(r.Context(), testID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// MySubmissions handles GET /v1/submissions/mine (student view)
func (h *ReportHandler) MySubmissions(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetUserID(r.Context())

	subs, err := h.submissionRepo.ListByStudent(r.Context(), studentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// ProctorReport handles GET /v1/reports/proctor?testId=...
func (h *ReportHandler) ProctorReport(w http.ResponseWriter, r *http.Request) {
	testID := r.URL.Query().Get("testId")

	summary, risks, err := h.proctorSvc.Report(r.Context(), testID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":  summary,
		"students": risks,
	})
}

// Attainment handles GET /v1/reports/attainment?axis=course&testId=...
func (h *ReportHandler) Attainment(w http.ResponseWriter, r *http.Request) {
	axis := model.OutcomeAxis(r.URL.Query().Get("axis"))
	if axis != model.AxisCourse && axis != model.AxisProgram {
		writeError(w, http.StatusBadRequest, "axis must be course or program")
		return
	}
	testID := r.URL.Query().Get("testId")

	attainments, err := h.outcomeSvc.Attainment(r.Context(), testID, axis)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"attainments": attainments})
}

// OutcomeMapping handles GET /v1/outcomes/mapping
func (h *ReportHandler) OutcomeMapping(w http.ResponseWriter, r *http.Request) {
	mapping, err := h.outcomeRepo.GetMapping(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapping)
}

// UpdateOutcomeMapping handles PUT /v1/outcomes/mapping
func (h *ReportHandler) UpdateOutcomeMapping(w http.ResponseWriter, r *http.Request) {
	var mapping model.OutcomeMapping
	if err := json.NewDecoder(r.Body).Decode(&mapping); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.outcomeRepo.SetMapping(r.Context(), &mapping); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapping)
}

// Export handles GET /v1/exports/{kind}?testId=...&axis=... and serves the
// document as a downloadable attachment.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	kind := model.ExportKind(mux.Vars(r)["kind"])
	testID := r.URL.Query().Get("testId")

	var (
		doc *model.ExportDocument
		err error
	)
	switch kind {
	case model.ExportResults:
		doc, err = h.exportSvc.Results(r.Context(), testID)
	case model.ExportProctor:
		doc, err = h.exportSvc.Proctor(r.Context(), testID)
	case model.ExportAttainment:
		axis := model.OutcomeAxis(r.URL.Query().Get("axis"))
		if axis != model.AxisCourse && axis != model.AxisProgram {
			writeError(w, http.StatusBadRequest, "axis must be course or program")
			return
		}
		doc, err = h.exportSvc.Attainment(r.Context(), testID, axis)
	default:
		writeError(w, http.StatusNotFound, "unknown export kind")
		return
	}
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("%s-%s.json", kind, doc.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(doc)
}
