package handlers

import (
	"net/http"

	"freelance_backend/internal/services"
	"freelance_backend/internal/services/dto"
	"freelance_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MetadataHandler struct {
	*BaseHandler
	metadataService services.MetadataService
}

func NewMetadataHandler(base *BaseHandler, metadataService services.MetadataService) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler:     base,
		metadataService: metadataService,
	}
}

func (h *MetadataHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/metadata", h.GetMetadata)
}

// GetMetadata godoc
// @Summary Превью ссылки
// @Description Загружает страницу и извлекает title, description и image. Сбой загрузки возвращается как success=false.
// @Tags metadata
// @Produce json
// @Param url query string true "Адрес страницы"
// @Success 200 {object} dto.MetadataResponse
// @Failure 400 {object} dto.MetadataResponse
// @Router /api/v1/metadata [get]
func (h *MetadataHandler) GetMetadata(c *gin.Context) {
	resp, err := h.metadataService.Get(c.Request.Context(), c.Query("url"))
	if err != nil {
		// у этого эндпоинта собственный формат ошибки: {success:false, error}
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode < http.StatusInternalServerError {
			c.JSON(appErr.HTTPCode, dto.MetadataResponse{Success: false, Error: appErr.Message})
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
