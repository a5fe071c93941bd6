package activation

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cybersec-git-expert/catalog-governance/internal/handler"
	"github.com/cybersec-git-expert/catalog-governance/internal/middleware"
	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	activationService "github.com/cybersec-git-expert/catalog-governance/internal/service/activation"
	"github.com/cybersec-git-expert/catalog-governance/pkg/httputil"
)

type Handler struct {
	service *activationService.Service
}

func NewHandler(service *activationService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	activation := r.Group("/activation")
	{
		activation.GET("/:entityType/status", h.GetActivationStatus)
		activation.GET("/:entityType/overrides", h.ListOverrides)
		activation.PUT("/:entityType/:entityId", h.UpsertOverride)
	}
}

func entityTypeParam(c *gin.Context) (model.EntityType, bool) {
	entityType := model.EntityType(c.Param("entityType"))
	if !entityType.Known() {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown entity type"))
		return "", false
	}
	return entityType, true
}

// GetActivationStatus resolves the activation of a batch of entities for one
// country. Ids are passed comma separated: ?country=LK&ids=p1,p2,p3.
func (h *Handler) GetActivationStatus(c *gin.Context) {
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	countryCode := c.Query("country")
	if countryCode == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("country is required"))
		return
	}

	idsParam := c.Query("ids")
	if idsParam == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ids is required"))
		return
	}
	ids := strings.Split(idsParam, ",")

	statuses, err := h.service.IsActiveBatch(c.Request.Context(), entityType, ids, countryCode)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(statuses))
}

func (h *Handler) ListOverrides(c *gin.Context) {
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	countryCode := c.Query("country")
	if countryCode == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("country is required"))
		return
	}

	var pagination model.Pagination
	if err := c.ShouldBindQuery(&pagination); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid pagination"))
		return
	}

	principal := middleware.PrincipalFromContext(c)
	overrides, err := h.service.ListOverrides(c.Request.Context(), principal, entityType, countryCode, pagination)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(overrides))
}

type upsertOverrideRequest struct {
	CountryCode string `json:"country_code" binding:"required"`
	IsActive    *bool  `json:"is_active" binding:"required"`
	EntityName  string `json:"entity_name"`
}

func (h *Handler) UpsertOverride(c *gin.Context) {
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	var req upsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	principal := middleware.PrincipalFromContext(c)
	override, err := h.service.Upsert(c.Request.Context(), principal, activationService.UpsertRequest{
		EntityType:  entityType,
		EntityID:    c.Param("entityId"),
		CountryCode: req.CountryCode,
		IsActive:    *req.IsActive,
		EntityName:  req.EntityName,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(override))
}
