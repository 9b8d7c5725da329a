package post

import (
	"github.com/gin-gonic/gin"
	"github.com/inkstone/core/internal/middleware"
	"github.com/inkstone/core/internal/modules/content/comment"
	"github.com/inkstone/core/internal/pkg/pagination"
	"github.com/inkstone/core/internal/pkg/response"
)

// Handler handles post HTTP requests, including the comment append route
// since comments have no lifecycle outside their post.
type Handler struct {
	svc      *Service
	comments *comment.Service
}

func NewHandler(svc *Service, comments *comment.Service) *Handler {
	return &Handler{svc: svc, comments: comments}
}

// RegisterRoutes mounts post routes. Reads are public with optional identity;
// mutations require authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalMW gin.HandlerFunc) {
	posts := rg.Group("/posts")

	posts.GET("", optionalMW, h.list)
	posts.GET("/:id", h.get)

	authed := posts.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	authed.POST("/:id/comments", h.addComment)
}

// list GET /posts
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	posts, pag, err := h.svc.List(q, lq, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, posts, pag)
}

// get GET /posts/:id
func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// create POST /posts  [auth]
func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, partial, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	if partial != nil {
		response.CreatedMsg(c, post, "post created but category count update failed")
		return
	}
	response.Created(c, post)
}

// update PUT /posts/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Update(c.Param("id"),
		middleware.CurrentUserID(c), middleware.CurrentUserRole(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// delete DELETE /posts/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	partial, err := h.svc.Delete(c.Param("id"),
		middleware.CurrentUserID(c), middleware.CurrentUserRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if partial != nil {
		response.OKMsg(c, nil, "post deleted but category count update failed")
		return
	}
	response.Deleted(c, "post deleted")
}

// addComment POST /posts/:id/comments  [auth]
func (h *Handler) addComment(c *gin.Context) {
	var dto comment.AppendCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comments, err := h.comments.Append(c.Param("id"), middleware.CurrentUserID(c), dto.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comments)
}
