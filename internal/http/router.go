package http

import (
	"net/http"
	"strings"
	"time"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/user"
	"hirepulse/internal/http/handlers"
	"hirepulse/internal/http/metrics"
	httpmw "hirepulse/internal/http/middleware"
	"hirepulse/internal/http/response"
	"hirepulse/internal/observability"
)

type RouterDependencies struct {
	AuthHandler      *handlers.AuthHandler
	JobHandler       *handlers.JobHandler
	CandidateHandler *handlers.CandidateHandler
	RecruiterHandler *handlers.RecruiterHandler
	AdminHandler     *handlers.AdminHandler
	AIHandler        *handlers.AIHandler
	AuthMiddleware   *httpmw.AuthMiddleware
	Limiter          httpmw.Limiter
	Metrics          *metrics.Collector
	MetricsHandler   *metrics.Handler
	Logger           *observability.Logger
	RequestTimeout   time.Duration
}

type Router struct {
	deps RouterDependencies
}

// Resume uploads come through as multipart bodies, so the limit is well above
// a typical JSON payload.
const maxBodyBytes = 10 << 20

const rateWindow = time.Minute

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

// rateTier picks the fixed-window budget for a path. Auth endpoints get the
// tightest budget because they are the credential-guessing surface.
func rateTier(path string) (prefix string, limit int) {
	switch {
	case strings.HasPrefix(path, "/auth"):
		return "auth", 5
	case strings.HasPrefix(path, "/admin"):
		return "admin", 10
	default:
		return "default", 20
	}
}

func (r *Router) allow(req *http.Request) bool {
	if r.deps.Limiter == nil {
		return true
	}
	prefix, limit := rateTier(req.URL.Path)
	key := "ratelimit:" + prefix + ":" + httpmw.ClientIP(req)
	return r.deps.Limiter.Allow(key, limit, rateWindow)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		if req.Method == http.MethodGet && path == "/health" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		if req.Method == http.MethodGet && path == "/metrics" {
			r.deps.MetricsHandler.ServeHTTP(w, req)
			return
		}

		if !r.allow(req) {
			response.Error(w, common.NewError(common.CodeRateLimited, "rate limit exceeded", nil))
			return
		}

		switch {
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/reset-password":
			r.deps.AuthHandler.RequestReset(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/reset-password/confirm":
			r.deps.AuthHandler.ConfirmReset(w, req)
			return
		}

		if strings.HasPrefix(path, "/auth") || strings.HasPrefix(path, "/jobs") ||
			strings.HasPrefix(path, "/candidates") || strings.HasPrefix(path, "/recruiter") ||
			strings.HasPrefix(path, "/admin") || strings.HasPrefix(path, "/ai") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleProtected))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/auth/me":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodPut && path == "/auth/password":
		r.deps.AuthHandler.ChangePassword(w, req)
		return

	case req.Method == http.MethodGet && path == "/jobs":
		r.deps.JobHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		r.requireRole(user.RoleRecruiter)(r.deps.JobHandler.Create).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/jobs/"):
		r.requireRole(user.RoleRecruiter)(r.deps.JobHandler.Update).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
		r.requireRole(user.RoleRecruiter)(r.deps.JobHandler.Delete).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/candidates/resume":
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.UploadResume).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/candidates/resume":
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.GetResume).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/candidates/resume/file":
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.DownloadResume).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/candidates/apply/"):
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.Apply).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/candidates/applications":
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.ListApplications).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/candidates/applications/"):
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.GetApplication).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/candidates/interviews":
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.ListInterviews).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/candidates/interviews/") && strings.HasSuffix(path, "/start"):
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.StartInterview).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/candidates/interviews/") && strings.HasSuffix(path, "/submit"):
		r.requireRole(user.RoleCandidate)(r.deps.CandidateHandler.SubmitInterview).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/recruiter/applications":
		r.requireRole(user.RoleRecruiter)(r.deps.RecruiterHandler.ListApplications).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/recruiter/applications/"):
		r.requireRole(user.RoleRecruiter)(r.deps.RecruiterHandler.GetApplication).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/recruiter/applications/") && strings.HasSuffix(path, "/review"):
		r.requireRole(user.RoleRecruiter)(r.deps.RecruiterHandler.Review).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/recruiter/applications/") && strings.HasSuffix(path, "/schedule-interview"):
		r.requireRole(user.RoleRecruiter)(r.deps.RecruiterHandler.ScheduleInterview).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/recruiter/interviews":
		r.requireRole(user.RoleRecruiter)(r.deps.RecruiterHandler.ListInterviews).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/recruiter/interviews/") && strings.HasSuffix(path, "/cancel"):
		r.requireRole(user.RoleRecruiter)(r.deps.RecruiterHandler.CancelInterview).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/recruiter/interviews/") && strings.HasSuffix(path, "/feedback"):
		r.requireRole(user.RoleRecruiter)(r.deps.RecruiterHandler.InterviewFeedback).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/ai/job-description":
		r.requireRole(user.RoleRecruiter)(r.deps.AIHandler.JobDescription).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/ai/analyze-resume":
		r.deps.AIHandler.AnalyzeResume(w, req)
		return

	case req.Method == http.MethodGet && path == "/admin/stats":
		r.requireRole(user.RoleAdmin)(r.deps.AdminHandler.Stats).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/users":
		r.requireRole(user.RoleAdmin)(r.deps.AdminHandler.ListUsers).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/users/") && strings.HasSuffix(path, "/activate"):
		r.requireRole(user.RoleAdmin)(r.deps.AdminHandler.SetUserActive(true)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/users/") && strings.HasSuffix(path, "/deactivate"):
		r.requireRole(user.RoleAdmin)(r.deps.AdminHandler.SetUserActive(false)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) requireRole(roles ...user.Role) func(http.HandlerFunc) http.Handler {
	return func(handler http.HandlerFunc) http.Handler {
		return httpmw.RequireRole(roles...)(handler)
	}
}
