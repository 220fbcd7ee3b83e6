package render

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/shared/telemetry"
)

// Handler renders resume content to HTML and PDF.
type Handler struct {
	Resumes   *resumes.Service
	Artifacts *artifacts.Service
	Renderer  PDFRenderer
}

// NewHandler constructs a Handler.
func NewHandler(resumeSvc *resumes.Service, artifactSvc *artifacts.Service, renderer PDFRenderer) *Handler {
	return &Handler{Resumes: resumeSvc, Artifacts: artifactSvc, Renderer: renderer}
}

// RegisterRoutes attaches rendering routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume-generation/preview", h.preview)
	rg.POST("/resume-generation/pdf", h.pdf)
}

// renderRequest targets either a saved resume by ID or inline content.
type renderRequest struct {
	ResumeID string         `json:"resumeId"`
	Title    string         `json:"title"`
	Content  map[string]any `json:"content"`
}

func (h *Handler) preview(c *gin.Context) {
	html, _, ok := h.renderHTML(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) pdf(c *gin.Context) {
	html, title, ok := h.renderHTML(c)
	if !ok {
		return
	}

	pdf, err := h.Renderer.RenderPDF(c.Request.Context(), html)
	if err != nil {
		telemetry.Error("render.pdf_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render pdf", nil)
		return
	}

	doc, err := h.Artifacts.Archive(c.Request.Context(), middleware.UserIDFromContext(c), title, pdf)
	if err != nil {
		telemetry.Error("render.archive_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to archive pdf", nil)
		return
	}

	c.Set("resourceId", doc.ID)
	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", title+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// renderHTML resolves the request to resume content and renders it. On
// failure it writes the error response and reports ok=false.
func (h *Handler) renderHTML(c *gin.Context) (html, title string, ok bool) {
	userID := middleware.UserIDFromContext(c)

	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return "", "", false
	}

	title = req.Title
	content := req.Content

	if req.ResumeID != "" {
		resume, err := h.Resumes.Get(c.Request.Context(), userID, req.ResumeID)
		if err != nil {
			if errors.Is(err, resumes.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
				return "", "", false
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
			return "", "", false
		}
		title = resume.Title
		content = resume.Content
	} else {
		if len(content) == 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
				[]respond.FieldError{{Field: "content", Message: "resumeId or content is required"}})
			return "", "", false
		}
		if err := resumes.ValidateContent(content); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
				[]respond.FieldError{{Field: "content", Message: err.Error()}})
			return "", "", false
		}
	}
	if title == "" {
		title = "Resume"
	}

	rendered, err := HTML(title, content)
	if err != nil {
		telemetry.Error("render.html_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render resume", nil)
		return "", "", false
	}
	return rendered, title, true
}
