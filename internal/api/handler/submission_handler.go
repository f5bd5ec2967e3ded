package handler

import (
	"net/http"

	"codejarvis/internal/api/middleware"
	"codejarvis/internal/app/service"
	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// SubmissionHandler is the CodeSpace JSON API: run and submit enqueue a job,
// the page polls the job until it settles.
type SubmissionHandler struct {
	jobService *service.ExecutionJobService
}

func NewSubmissionHandler(js *service.ExecutionJobService) *SubmissionHandler {
	return &SubmissionHandler{jobService: js}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireSessionJSON)
	r.Get("/problems", h.listProblems)
	r.Post("/run", h.enqueue(model.JobKindRun))
	r.Post("/submit", h.enqueue(model.JobKindSubmit))
	r.Get("/jobs/{jobID}", h.getJob)
}

type codeSpaceCatalog struct {
	Problems  []model.PracticeProblem `json:"problems"`
	Languages []model.Language        `json:"languages"`
}

func (h *SubmissionHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, codeSpaceCatalog{
		Problems:  h.jobService.Problems(),
		Languages: h.jobService.Languages(),
	})
}

func (h *SubmissionHandler) enqueue(kind model.JobKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := middleware.GetSessionFromContext(r.Context())

		var req service.ExecutionRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.RespondWithDomainError(w, err)
			return
		}

		job, err := h.jobService.Enqueue(r.Context(), session.ID, kind, req)
		if err != nil {
			common.RespondWithDomainError(w, err)
			return
		}
		common.RespondWithJSON(w, http.StatusAccepted, job.Public()) // Accepted (202) as it's async
	}
}

func (h *SubmissionHandler) getJob(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	job, err := h.jobService.Job(r.Context(), session.ID, chi.URLParam(r, "jobID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, job.Public())
}
