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

type verificationRequest struct {
	Action         string `json:"action"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
	OTP            string `json:"otp,omitempty"`
	VerificationID int64  `json:"verificationId,omitempty"`
}

func verificationService(c *gin.Context) services.VerificationService {
	return services.VerificationService{
		VerificationRepo: repositories.VerificationRepository{},
		UserRepo:         repositories.UserRepository{},
		Relay:            relay,
		MX:               mx,
		SiteBaseURL:      env.SiteBaseURL,
		RequestID:        middleware.GetRequestID(c),
	}
}

// POST /api/verification
func VerificationAction(c *gin.Context) {
	var req verificationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := verificationService(c)

	switch req.Action {
	case "validate":
		result, err := svc.ValidateEmail(req.Email)
		if err != nil {
			respondVerificationError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)

	case "send-otp":
		id, err := svc.SendOTP(req.Email, req.Name)
		if err != nil {
			respondVerificationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"verificationId": id})

	case "verify-otp":
		if err := svc.VerifyOTP(req.VerificationID, req.OTP); err != nil {
			respondVerificationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"verified": true})

	case "check-verification":
		result, err := svc.CheckVerification(req.Email)
		if err != nil {
			respondVerificationError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)

	default:
		RespondError(c, http.StatusBadRequest, "unknown action: "+req.Action, nil)
	}
}

// Unlike the payment webhook, this surface echoes real errors: the
// caller is our own signup page, not a retry-sensitive external system.
func respondVerificationError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err), domain.IsNotFound(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		RespondError(c, http.StatusInternalServerError, err.Error(), err)
	}
}

// GET /api/verification/verify?token=&redirect=
func VerifyMagicLink(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	redirect := strings.TrimSpace(c.Query("redirect"))

	svc := verificationService(c)
	if err := svc.VerifyMagicToken(token); err != nil {
		c.Redirect(http.StatusFound, env.SiteBaseURL+"/verify/failed")
		return
	}

	target := env.SiteBaseURL + "/verify/success"
	if redirect != "" && strings.HasPrefix(redirect, "/") {
		target = env.SiteBaseURL + redirect
	}
	c.Redirect(http.StatusFound, target)
}
