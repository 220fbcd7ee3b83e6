package coverletters

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cover-letters", h.list)
	rg.POST("/cover-letters", h.create)
	rg.GET("/cover-letters/:id", h.get)
	rg.PUT("/cover-letters/:id", h.update)
	rg.DELETE("/cover-letters/:id", h.remove)
}

type createRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	IsAIGenerated bool   `json:"isAiGenerated"`
	ApplicationID string `json:"applicationId"`
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

	letter, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		Title:         req.Title,
		Content:       req.Content,
		IsAIGenerated: req.IsAIGenerated,
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		writeError(c, err, "failed to create cover letter")
		return
	}

	c.Set("resourceId", letter.ID)
	respond.Created(c, toResponse(letter))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	filter := ListFilter{
		Limit:  parseIntQuery(c, "limit", 100),
		Offset: parseIntQuery(c, "offset", 0),
	}

	all, err := h.Svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cover letters", nil)
		return
	}

	resp := make([]CoverLetterResponse, 0, len(all))
	for _, letter := range all {
		resp = append(resp, toResponse(letter))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	letter, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch cover letter")
		return
	}
	respond.OK(c, toResponse(letter))
}

type updateRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	ApplicationID *string `json:"applicationId"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	letter, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), UpdateInput{
		Title:         req.Title,
		Content:       req.Content,
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		writeError(c, err, "failed to update cover letter")
		return
	}
	respond.OK(c, toResponse(letter))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err, "failed to delete cover letter")
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func writeError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
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
