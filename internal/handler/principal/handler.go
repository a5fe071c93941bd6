package principal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cybersec-git-expert/catalog-governance/internal/handler"
	"github.com/cybersec-git-expert/catalog-governance/internal/middleware"
	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	principalService "github.com/cybersec-git-expert/catalog-governance/internal/service/principal"
	"github.com/cybersec-git-expert/catalog-governance/pkg/httputil"
)

type Handler struct {
	service *principalService.Service
}

func NewHandler(service *principalService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	principals := r.Group("/admin-principals")
	{
		principals.POST("", h.CreatePrincipal)
		principals.GET("", h.ListPrincipals)
		principals.GET("/:id", h.GetPrincipal)
	}
}

type createPrincipalRequest struct {
	Email        string   `json:"email" binding:"required,email"`
	Name         string   `json:"name" binding:"required"`
	Password     string   `json:"password" binding:"required,min=8"`
	Role         string   `json:"role" binding:"required,oneof=super_admin country_admin"`
	HomeCountry  string   `json:"home_country"`
	Capabilities []string `json:"capabilities"`
}

func (h *Handler) CreatePrincipal(c *gin.Context) {
	var req createPrincipalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor := middleware.PrincipalFromContext(c)
	created, err := h.service.Create(c.Request.Context(), actor, principalService.CreateRequest{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Role:         model.AdminRole(req.Role),
		HomeCountry:  req.HomeCountry,
		Capabilities: req.Capabilities,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetPrincipal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid principal ID"))
		return
	}

	actor := middleware.PrincipalFromContext(c)
	principal, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(principal))
}

func (h *Handler) ListPrincipals(c *gin.Context) {
	actor := middleware.PrincipalFromContext(c)
	principals, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(principals))
}
