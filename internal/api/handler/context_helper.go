package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anastheace/faultandtms/internal/api/middleware"
	"github.com/anastheace/faultandtms/internal/api/validator"
	"github.com/anastheace/faultandtms/internal/service"
	"github.com/anastheace/faultandtms/pkg/response"
)

// MustGetUserID extracts the caller id set by JWTAuth. On failure it writes
// a 401 and returns false; the caller should return immediately.
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		response.Unauthorized(c, 10002, "Not authenticated")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "Not authenticated")
		return 0, false
	}
	return id, true
}

// MustGetCaller extracts id and role.
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	role := c.GetString(middleware.CtxRole)
	if role == "" {
		response.Unauthorized(c, 10002, "Not authenticated")
		return service.Caller{}, false
	}
	return service.Caller{UserID: id, Role: role}, true
}

// tokenIdentity jti and expiry of the presented token, zero values when absent.
func tokenIdentity(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.CtxTokenJTI)
	exp, _ := c.Get(middleware.CtxTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}

// bindJSON binds the body into req and answers 400/413 itself on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "Please provide all required fields", validator.Describe(err))
}

// paramID parses a numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
