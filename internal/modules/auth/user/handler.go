package user

import (
	"github.com/gin-gonic/gin"
	"github.com/inkstone/core/internal/middleware"
	"github.com/inkstone/core/internal/pkg/response"
	sessionpkg "github.com/inkstone/core/internal/pkg/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts authentication routes under /auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")

	auth.POST("/register", h.register)
	auth.POST("/login", h.login)

	a := auth.Group("", authMW)
	a.GET("/me", h.me)
	a.PUT("/profile", h.updateProfile)
	a.PUT("/password", h.changePassword)
	a.GET("/sessions", h.listSessions)
	a.DELETE("/sessions/:sessionId", h.revokeSession)
}

// register POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, u, err := h.svc.Register(&dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, authResponse{Token: token, User: PublicIdentity(u)})
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, u, err := h.svc.Authenticate(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, authResponse{Token: token, User: PublicIdentity(u)})
}

// me GET /auth/me  [auth]
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

// updateProfile PUT /auth/profile  [auth]
func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.svc.UpdateProfile(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

// changePassword PUT /auth/password  [auth]
func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.svc.ChangePassword(
		middleware.CurrentUserID(c),
		middleware.CurrentSessionID(c),
		dto.CurrentPassword,
		dto.NewPassword,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMsg(c, nil, "password updated")
}

// listSessions GET /auth/sessions  [auth]
func (h *Handler) listSessions(c *gin.Context) {
	sessions, err := sessionpkg.ListActive(h.svc.db, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sessions)
}

// revokeSession DELETE /auth/sessions/:sessionId  [auth]
func (h *Handler) revokeSession(c *gin.Context) {
	err := sessionpkg.Revoke(h.svc.db, middleware.CurrentUserID(c), c.Param("sessionId"))
	if err != nil {
		response.NotFound(c, "session not found")
		return
	}
	response.Deleted(c, "session revoked")
}
