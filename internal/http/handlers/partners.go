package handlers

import (
	"net/http"

	"transfers/internal/domain"
	"transfers/internal/http/middleware"
	"transfers/internal/repositories"
	"transfers/internal/services"

	"github.com/gin-gonic/gin"
)

func partnerService(c *gin.Context) services.PartnerService {
	reqID := middleware.GetRequestID(c)
	return services.PartnerService{
		UserRepo:  repositories.UserRepository{},
		InviteSvc: services.InviteService{InviteRepo: repositories.InviteRepository{}, RequestID: reqID},
		VerifySvc: verificationService(c),
		JWTSecret: env.JWTSecret,
		RequestID: reqID,
	}
}

type signupPayload struct {
	Code     string `json:"code" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password" validate:"required,min=8"`
}

// POST /api/partners/signup
func PartnerSignup(c *gin.Context) {
	var req signupPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid signup payload", err)
		return
	}

	result, err := partnerService(c).Signup(services.SignupRequest{
		Code:     req.Code,
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/partners/me
func PartnerMe(c *gin.Context) {
	userID := middleware.AuthUserID(c)
	if userID <= 0 {
		RespondError(c, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	user, err := repositories.UserRepository{}.GetByID(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		RespondError(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	result, err := partnerService(c).Login(req.Email, req.Password)
	if err != nil {
		if domain.IsValidation(err) {
			RespondError(c, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
