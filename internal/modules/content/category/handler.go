package category

import (
	"github.com/gin-gonic/gin"
	"github.com/inkstone/core/internal/middleware"
	"github.com/inkstone/core/internal/modules/auth/guard"
	"github.com/inkstone/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts category routes. Reads are public; every mutation is
// admin-only behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	cats := rg.Group("/categories")
	cats.GET("", h.list)
	cats.GET("/:id", h.get)

	authed := cats.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) get(c *gin.Context) {
	cat, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) create(c *gin.Context) {
	if err := guard.RequireAdmin(middleware.CurrentUserRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Create(&dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) update(c *gin.Context) {
	if err := guard.RequireAdmin(middleware.CurrentUserRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) delete(c *gin.Context) {
	if err := guard.RequireAdmin(middleware.CurrentUserRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, "category deleted")
}
