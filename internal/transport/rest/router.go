package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"examportal/internal/repository"
	"examportal/internal/service"
	"examportal/internal/transport/rest/handler"
	"examportal/internal/transport/rest/middleware"
	"examportal/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	TestService        *service.TestService
	AttemptService     *service.AttemptService
	LeaderboardService *service.LeaderboardService
	ProctorService     *service.ProctorService
	OutcomeService     *service.OutcomeService
	ExportService      *service.ExportService
	SubmissionRepo     repository.SubmissionRepo
	OutcomeRepo        repository.OutcomeRepo
	WSHub              *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	testHandler := handler.NewTestHandler(c.TestService)
	attemptHandler := handler.NewAttemptHandler(c.AttemptService)
	reportHandler := handler.NewReportHandler(
		c.LeaderboardService, c.ProctorService, c.OutcomeService,
		c.ExportService, c.SubmissionRepo, c.OutcomeRepo)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.AttemptService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/tests/{testId}/monitor", wsHandler.MonitorWS).Methods("GET")
	v1.HandleFunc("/ws/attempts/{attemptId}/events", wsHandler.AttemptWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Student routes. Registered before the teacher subrouter so
	// /tests/active is not captured by /tests/{testId}.
	studentRoutes := v1.NewRoute().Subrouter()
	studentRoutes.Use(authMW.RequireStudent)

	studentRoutes.HandleFunc("/tests/active", testHandler.ListActive).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/attempts", attemptHandler.Start).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/attempts/{attemptId}/answers", attemptHandler.SaveAnswer).Methods("PUT", "OPTIONS")
	studentRoutes.HandleFunc("/attempts/{attemptId}/submit", attemptHandler.Submit).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/attempts/{attemptId}/violations", attemptHandler.RecordViolation).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/attempts/{attemptId}", attemptHandler.Abandon).Methods("DELETE", "OPTIONS")
	studentRoutes.HandleFunc("/submissions/mine", reportHandler.MySubmissions).Methods("GET", "OPTIONS")

	// Teacher routes
	teacherRoutes := v1.NewRoute().Subrouter()
	teacherRoutes.Use(authMW.RequireTeacher)

	teacherRoutes.HandleFunc("/tests", testHandler.Create).Methods("POST", "OPTIONS")
	teacherRoutes.HandleFunc("/tests", testHandler.List).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/tests/{testId}", testHandler.Get).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/tests/{testId}/active", testHandler.SetActive).Methods("PUT", "OPTIONS")
	teacherRoutes.HandleFunc("/tests/{testId}/leaderboard", reportHandler.Leaderboard).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/tests/{testId}/submissions", reportHandler.Submissions).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/reports/proctor", reportHandler.ProctorReport).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/reports/attainment", reportHandler.Attainment).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/outcomes/mapping", reportHandler.OutcomeMapping).Methods("GET", "OPTIONS")
	teacherRoutes.HandleFunc("/outcomes/mapping", reportHandler.UpdateOutcomeMapping).Methods("PUT", "OPTIONS")
	teacherRoutes.HandleFunc("/exports/{kind}", reportHandler.Export).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
