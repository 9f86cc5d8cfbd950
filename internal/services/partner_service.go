package services

import (
	"time"

	"transfers/internal/domain"
	"transfers/internal/domain/models"
	"transfers/internal/repositories"
	"transfers/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type PartnerService struct {
	UserRepo  repositories.UserRepository
	InviteSvc InviteService
	VerifySvc VerificationService
	JWTSecret string
	RequestID string
}

// SignupRequest is the partner-signup payload. The invite code must be
// consumable and the email verified before an account is created.
type SignupRequest struct {
	Code     string `json:"code"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// SignupResult carries the new account plus a session token.
type SignupResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s PartnerService) Signup(req SignupRequest) (SignupResult, error) {
	if req.Code == "" {
		return SignupResult{}, domain.ValidationError{Field: "code", Msg: "is required"}
	}
	if !utils.IsValidEmail(req.Email) {
		return SignupResult{}, domain.ValidationError{Field: "email", Msg: "is not a valid email address"}
	}
	if len(req.Password) < 8 {
		return SignupResult{}, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}

	check, err := s.VerifySvc.CheckVerification(req.Email)
	if err != nil {
		return SignupResult{}, err
	}
	if check.UserExists {
		return SignupResult{}, domain.ConflictError{Resource: "account", Msg: "email already registered"}
	}

	verified, err := s.VerifySvc.VerificationRepo.HasVerifiedEmail(req.Email)
	if err != nil {
		return SignupResult{}, err
	}
	if !verified {
		return SignupResult{}, domain.ValidationError{Field: "email", Msg: "email is not verified yet"}
	}

	validation, err := s.InviteSvc.Validate(req.Code)
	if err != nil {
		return SignupResult{}, err
	}
	if !validation.Valid {
		return SignupResult{}, domain.ConflictError{Resource: "invite", Msg: "invite is not valid"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return SignupResult{}, domain.InternalError{Msg: "could not hash password", Err: err}
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         validation.Role,
		Verified:     true,
		PasswordHash: string(hash),
	}
	id, err := s.UserRepo.Insert(user)
	if err != nil {
		return SignupResult{}, domain.InternalError{Msg: "could not create account", Err: err}
	}
	user.ID = id
	user.PasswordHash = ""

	if _, err := s.InviteSvc.Consume(req.Code, id); err != nil {
		// The account exists; a racing consume loses the invite but the
		// failure must be visible.
		return SignupResult{}, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return SignupResult{}, domain.InternalError{Msg: "could not issue session token", Err: err}
	}
	return SignupResult{Token: token, User: user}, nil
}

// Login authenticates a returning partner.
func (s PartnerService) Login(email, password string) (SignupResult, error) {
	user, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return SignupResult{}, domain.ValidationError{Msg: "email or password is incorrect"}
		}
		return SignupResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return SignupResult{}, domain.ValidationError{Msg: "email or password is incorrect"}
	}

	user.PasswordHash = ""
	token, err := s.issueToken(user)
	if err != nil {
		return SignupResult{}, domain.InternalError{Msg: "could not issue session token", Err: err}
	}
	return SignupResult{Token: token, User: user}, nil
}

func (s PartnerService) issueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(s.JWTSecret))
}
