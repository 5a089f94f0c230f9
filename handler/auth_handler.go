package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docchat-be/service"
	"github.com/tieubaoca/docchat-be/types"
)

type AuthHandler struct {
	userService service.UserService
}

func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) HandleSignup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "Email and password are required"})
		return
	}

	token, err := h.userService.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, types.MsgResponse{Msg: "Server error"})
		return
	}
	c.JSON(http.StatusCreated, types.TokenResponse{Token: token})
}

func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, types.MsgResponse{Msg: "Email and password are required"})
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, types.MsgResponse{Msg: "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, types.MsgResponse{Msg: "Server error"})
		return
	}
	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}
