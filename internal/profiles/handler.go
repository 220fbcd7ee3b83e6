package profiles

import (
	"errors"
	"net/http"

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

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.save)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	profile, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}
	respond.OK(c, toResponse(profile))
}

type saveRequest struct {
	FullName       string           `json:"fullName"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Location       string           `json:"location"`
	Headline       string           `json:"headline"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Achievements   []Achievement    `json:"achievements"`
	References     []Reference      `json:"references"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	profile, err := h.Svc.Save(c.Request.Context(), userID, SaveInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Location:       req.Location,
		Headline:       req.Headline,
		Summary:        req.Summary,
		WorkExperience: req.WorkExperience,
		Education:      req.Education,
		Skills:         req.Skills,
		Achievements:   req.Achievements,
		References:     req.References,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}

	c.Set("resourceId", profile.ID)
	respond.OK(c, toResponse(profile))
}
