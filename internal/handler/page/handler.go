package page

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cybersec-git-expert/catalog-governance/internal/handler"
	"github.com/cybersec-git-expert/catalog-governance/internal/middleware"
	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	pageService "github.com/cybersec-git-expert/catalog-governance/internal/service/page"
	"github.com/cybersec-git-expert/catalog-governance/pkg/httputil"
)

type Handler struct {
	service *pageService.Service
}

func NewHandler(service *pageService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	pages := r.Group("/pages")
	{
		pages.POST("", h.CreatePage)
		pages.GET("", h.ListPages)
		pages.GET("/:id", h.GetPage)
		pages.PUT("/:id", h.EditPage)
		pages.PUT("/:id/status", h.TransitionPage)
		pages.DELETE("/:id", h.DeletePage)
	}
}

type createPageRequest struct {
	Title        string `json:"title" binding:"required"`
	Body         string `json:"body"`
	Scope        string `json:"scope" binding:"required,oneof=centralized country_specific"`
	OwnerCountry string `json:"owner_country"`
}

func (h *Handler) CreatePage(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	principal := middleware.PrincipalFromContext(c)
	page, err := h.service.Create(c.Request.Context(), principal, pageService.CreateRequest{
		Title:        req.Title,
		Body:         req.Body,
		Scope:        model.PageScope(req.Scope),
		OwnerCountry: req.OwnerCountry,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(page))
}

func (h *Handler) ListPages(c *gin.Context) {
	principal := middleware.PrincipalFromContext(c)
	pages, err := h.service.List(c.Request.Context(), principal)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(pages))
}

func (h *Handler) GetPage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid page ID"))
		return
	}

	principal := middleware.PrincipalFromContext(c)
	page, err := h.service.Get(c.Request.Context(), principal, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(page))
}

type editPageRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

func (h *Handler) EditPage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid page ID"))
		return
	}

	var req editPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	principal := middleware.PrincipalFromContext(c)
	page, err := h.service.Edit(c.Request.Context(), principal, id, pageService.EditRequest{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(page))
}

type transitionRequest struct {
	Event string `json:"event" binding:"required,oneof=submit approve reject publish"`
}

func (h *Handler) TransitionPage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid page ID"))
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	principal := middleware.PrincipalFromContext(c)
	page, err := h.service.Transition(c.Request.Context(), principal, id, model.PageEvent(req.Event))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(page))
}

func (h *Handler) DeletePage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid page ID"))
		return
	}

	principal := middleware.PrincipalFromContext(c)
	if err := h.service.Delete(c.Request.Context(), principal, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
