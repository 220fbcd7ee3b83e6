package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.POST("/resumes/import", h.importPDF)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.remove)
}

type createRequest struct {
	Title         string         `json:"title"`
	Content       map[string]any `json:"content"`
	IsDefault     bool           `json:"isDefault"`
	IsAIGenerated bool           `json:"isAiGenerated"`
	ApplicationID string         `json:"applicationId"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Title == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
			[]respond.FieldError{{Field: "title", Message: "title is required"}})
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		Title:         req.Title,
		Content:       req.Content,
		IsDefault:     req.IsDefault,
		IsAIGenerated: req.IsAIGenerated,
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}

	c.Set("resourceId", resume.ID)
	respond.Created(c, toResponse(resume))
}

func (h *Handler) importPDF(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	resume, err := h.Svc.Import(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		writeError(c, err, "failed to import resume")
		return
	}

	c.Set("resourceId", resume.ID)
	respond.Created(c, toResponse(resume))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	filter := ListFilter{
		Limit:  parseIntQuery(c, "limit", 100),
		Offset: parseIntQuery(c, "offset", 0),
	}

	all, err := h.Svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}

	resp := make([]ResumeResponse, 0, len(all))
	for _, resume := range all {
		resp = append(resp, toResponse(resume))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, toResponse(resume))
}

type updateRequest struct {
	Title         *string        `json:"title"`
	Content       map[string]any `json:"content"`
	IsDefault     *bool          `json:"isDefault"`
	ApplicationID *string        `json:"applicationId"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), UpdateInput{
		Title:         req.Title,
		Content:       req.Content,
		IsDefault:     req.IsDefault,
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		writeError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, toResponse(resume))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func writeError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidContent):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
			[]respond.FieldError{{Field: "content", Message: err.Error()}})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", internalMsg, nil)
	}
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}
