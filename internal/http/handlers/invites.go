package handlers

import (
	"net/http"
	"strings"

	"transfers/internal/domain"
	"transfers/internal/http/middleware"
	"transfers/internal/repositories"
	"transfers/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/invites?code=
func ValidateInvite(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "code is required"})
		return
	}

	svc := services.InviteService{
		InviteRepo: repositories.InviteRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
	result, err := svc.Validate(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": "could not validate invite"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type consumeInviteRequest struct {
	Code   string `json:"code" validate:"required"`
	UserID int64  `json:"userId" validate:"required,gt=0"`
}

// POST /api/invites/consume
func ConsumeInvite(c *gin.Context) {
	var req consumeInviteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "code and userId are required"})
		return
	}

	svc := services.InviteService{
		InviteRepo: repositories.InviteRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
	role, err := svc.Consume(req.Code, req.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		if domain.IsValidation(err) {
			status = http.StatusBadRequest
		} else if domain.IsConflict(err) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "role": role})
}
