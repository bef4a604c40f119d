package handlers

import (
	"net/http"

	"freelance_backend/internal/services"
	"freelance_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/users/me")
	me.Use(h.RequireAuth()...)
	{
		me.GET("/profile", h.GetMyProfile)
		me.PUT("/profile", h.UpdateMyProfile)
	}
}

// GetMyProfile godoc
// @Summary Профиль текущего пользователя
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Router /api/v1/users/me/profile [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile godoc
// @Summary Заменить bio текущего пользователя
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Новый bio"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/users/me/profile [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateBio(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
