package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robsonsvicero/financassimples/internal/contracts"
	"github.com/robsonsvicero/financassimples/internal/domain/auth"
	"github.com/robsonsvicero/financassimples/internal/domain/user"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
)

func (h *Handler) Authenticate(c *gin.Context) {
	var req contracts.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.AuthService.Login(c.Request.Context(), auth.Login{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, entity)
}

func (h *Handler) Registration(c *gin.Context) {
	var req contracts.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
	if err := h.AuthService.Register(c.Request.Context(), entity); err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(entity.Id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AuthResponse{Token: token, User: entity})
}

func (h *Handler) GoogleAuth(c *gin.Context) {
	var req contracts.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.AuthService.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, entity)
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

func (h *Handler) respondWithToken(c *gin.Context, entity *user.User) {
	token, err := h.JwtService.GenerateToken(entity.Id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.AuthResponse{Token: token, User: entity})
}
