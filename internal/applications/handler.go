package applications

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.POST("/applications", h.create)
	rg.GET("/applications/:id", h.get)
	rg.PUT("/applications/:id", h.update)
	rg.DELETE("/applications/:id", h.remove)
}

type createRequest struct {
	Company        string     `json:"company"`
	Position       string     `json:"position"`
	JobDescription string     `json:"jobDescription"`
	Status         string     `json:"status"`
	Location       string     `json:"location"`
	Notes          string     `json:"notes"`
	AppliedAt      *time.Time `json:"appliedAt"`
}

func (req createRequest) validate() []respond.FieldError {
	var details []respond.FieldError
	if req.Company == "" {
		details = append(details, respond.FieldError{Field: "company", Message: "company is required"})
	}
	if req.Position == "" {
		details = append(details, respond.FieldError{Field: "position", Message: "position is required"})
	}
	if req.Status != "" && !ValidStatus(Status(req.Status)) {
		details = append(details, respond.FieldError{Field: "status", Message: "unknown status"})
	}
	return details
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if details := req.validate(); len(details) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", details)
		return
	}

	app, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		Company:        req.Company,
		Position:       req.Position,
		JobDescription: req.JobDescription,
		Status:         Status(req.Status),
		Location:       req.Location,
		Notes:          req.Notes,
		AppliedAt:      req.AppliedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create application", nil)
		}
		return
	}

	c.Set("resourceId", app.ID)
	respond.Created(c, toResponse(app))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	filter := ListFilter{
		Limit:  parseIntQuery(c, "limit", 100),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if status := c.Query("status"); status != "" {
		if !ValidStatus(Status(status)) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
				[]respond.FieldError{{Field: "status", Message: "unknown status"}})
			return
		}
		filter.Status = Status(status)
	}

	apps, err := h.Svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}

	resp := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, toResponse(app))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	appID := c.Param("id")

	app, err := h.Svc.Get(c.Request.Context(), userID, appID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		}
		return
	}

	respond.OK(c, toResponse(app))
}

type updateRequest struct {
	Company        *string    `json:"company"`
	Position       *string    `json:"position"`
	JobDescription *string    `json:"jobDescription"`
	Status         *string    `json:"status"`
	Location       *string    `json:"location"`
	Notes          *string    `json:"notes"`
	AppliedAt      *time.Time `json:"appliedAt"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	appID := c.Param("id")

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Status != nil && !ValidStatus(Status(*req.Status)) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
			[]respond.FieldError{{Field: "status", Message: "unknown status"}})
		return
	}

	in := UpdateInput{
		Company:        req.Company,
		Position:       req.Position,
		JobDescription: req.JobDescription,
		Location:       req.Location,
		Notes:          req.Notes,
		AppliedAt:      req.AppliedAt,
	}
	if req.Status != nil {
		status := Status(*req.Status)
		in.Status = &status
	}

	app, err := h.Svc.Update(c.Request.Context(), userID, appID, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application", nil)
		}
		return
	}

	respond.OK(c, toResponse(app))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	appID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, appID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete application", nil)
		}
		return
	}

	respond.OK(c, gin.H{"deleted": true})
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
