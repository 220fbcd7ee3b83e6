package dashboard

import (
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

// RegisterRoutes attaches dashboard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.stats)
	rg.GET("/dashboard/activity", h.activity)
}

func (h *Handler) stats(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	stats, err := h.Svc.GetStats(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch stats", nil)
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) activity(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	typ := c.Query("type")
	if !ValidActivityType(typ) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
			[]respond.FieldError{{Field: "type", Message: "must be one of application, resume, cover_letter"}})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request",
				[]respond.FieldError{{Field: "limit", Message: "must be an integer"}})
			return
		}
		limit = parsed
	}

	items, err := h.Svc.GetActivity(c.Request.Context(), userID, ActivityQuery{Type: typ, Limit: limit})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch activity", nil)
		return
	}
	respond.OK(c, items)
}
