package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/service"
	"github.com/anastheace/faultandtms/pkg/response"
)

// AuthHandler authentication and user endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register public sign-up
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, "User registered successfully", result)
}

// Login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the presented token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := tokenIdentity(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}
	response.OKWithMessage(c, "Logged out", nil)
}

// Me current user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// ListTechnicians
// GET /api/v1/auth/technicians
func (h *AuthHandler) ListTechnicians(c *gin.Context) {
	techs, err := h.authSvc.ListTechnicians(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, techs)
}

// CreateUser admin provisioning
// POST /api/v1/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, "User created successfully", user)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.BadRequest(c, 11001, "Invalid Credentials")
	case errors.Is(err, service.ErrUserExists):
		response.BadRequest(c, 11002, "User already exists")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11003, "User not found")
	case errors.Is(err, service.ErrPasswordTooLong):
		response.BadRequest(c, 10001, "Password must be at most 72 bytes")
	case errors.Is(err, service.ErrRoleNotAllowed):
		response.Error(c, http.StatusForbidden, 11004, "Role not allowed")
	default:
		response.InternalError(c)
	}
}
