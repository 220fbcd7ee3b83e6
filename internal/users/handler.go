package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

// me echoes the authenticated identity. Guests get their guest ID back
// without a stored user row.
func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.OK(c, gin.H{"id": userID, "guest": true})
			return
		}
	}

	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Token is valid but the row is gone; echo the claims we have.
			respond.OK(c, gin.H{
				"id":       userID,
				"email":    middleware.UserEmailFromContext(c),
				"fullName": middleware.UserNameFromContext(c),
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	respond.OK(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"pictureUrl": user.PictureURL,
	})
}
