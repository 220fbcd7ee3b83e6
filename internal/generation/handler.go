package generation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires generation endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cover-letters/generate", h.generateCoverLetter)
	rg.POST("/resume-generation", h.generateResume)
}

type coverLetterRequest struct {
	ApplicationID  string `json:"applicationId"`
	JobDescription string `json:"jobDescription"`
	Tone           string `json:"tone"`
}

func (h *Handler) generateCoverLetter(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req coverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ApplicationID == "" && req.JobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
			[]respond.FieldError{{Field: "applicationId", Message: "applicationId or jobDescription is required"}})
		return
	}

	result, err := h.Svc.GenerateCoverLetter(c.Request.Context(), userID, CoverLetterRequest{
		ApplicationID:  req.ApplicationID,
		JobDescription: req.JobDescription,
		Tone:           req.Tone,
	})
	if err != nil {
		writeError(c, err, "failed to generate cover letter")
		return
	}
	respond.OK(c, result)
}

type resumeRequest struct {
	ApplicationID  string `json:"applicationId"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) generateResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.GenerateResume(c.Request.Context(), userID, ResumeRequest{
		ApplicationID:  req.ApplicationID,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		writeError(c, err, "failed to generate resume")
		return
	}
	respond.OK(c, result)
}

func writeError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, profiles.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
	case errors.Is(err, applications.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "generation_unavailable", "generation service is not configured", nil)
	case errors.Is(err, llm.ErrEmptyOutput), errors.Is(err, ErrBadModelOutput):
		respond.Error(c, http.StatusBadGateway, "bad_model_output", "generation produced unusable output", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", internalMsg, nil)
	}
}
