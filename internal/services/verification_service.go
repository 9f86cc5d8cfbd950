package services

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"time"

	intdb "transfers/internal/db"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
	"transfers/internal/providers/mailrelay"
	"transfers/internal/providers/mxlookup"
	"transfers/internal/repositories"
	"transfers/internal/utils"
)

const verificationTTL = 15 * time.Minute

// commonDomains never go through the MX lookup; they are checked against
// the typo table instead.
var commonDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"icloud.com":     true,
	"live.com":       true,
	"aol.com":        true,
	"protonmail.com": true,
	"gmx.com":        true,
	"web.de":         true,
}

// typoDomains maps frequent misspellings of well-known providers to the
// intended domain.
var typoDomains = map[string]string{
	"gmial.com":    "gmail.com",
	"gmal.com":     "gmail.com",
	"gamil.com":    "gmail.com",
	"gnail.com":    "gmail.com",
	"gmaill.com":   "gmail.com",
	"gmail.co":     "gmail.com",
	"gmail.con":    "gmail.com",
	"yaho.com":     "yahoo.com",
	"yahooo.com":   "yahoo.com",
	"yahoo.co":     "yahoo.com",
	"hotmial.com":  "hotmail.com",
	"hotnail.com":  "hotmail.com",
	"hotmai.com":   "hotmail.com",
	"hotmail.co":   "hotmail.com",
	"outlok.com":   "outlook.com",
	"outloook.com": "outlook.com",
	"iclould.com":  "icloud.com",
	"icloud.co":    "icloud.com",
}

type VerificationService struct {
	VerificationRepo repositories.VerificationRepository
	UserRepo         repositories.UserRepository
	Relay            mailrelay.Client
	MX               mxlookup.Client

	SiteBaseURL string
	RequestID   string
}

// ValidateResult reports whether an address looks deliverable and, for
// typo domains, what the sender probably meant.
type ValidateResult struct {
	Valid     bool   `json:"valid"`
	Suggested string `json:"suggested,omitempty"`
}

// ValidateEmail checks format, the typo table, and (for unknown domains)
// live MX records. The MX lookup fails open: an advisory check must not
// block a signup.
func (s VerificationService) ValidateEmail(email string) (ValidateResult, error) {
	if !utils.IsValidEmail(email) {
		return ValidateResult{Valid: false}, nil
	}
	local, domainPart, ok := utils.SplitEmail(email)
	if !ok {
		return ValidateResult{Valid: false}, nil
	}

	if corrected, found := typoDomains[domainPart]; found {
		return ValidateResult{Valid: false, Suggested: local + "@" + corrected}, nil
	}
	if commonDomains[domainPart] {
		return ValidateResult{Valid: true}, nil
	}

	if s.MX == nil {
		return ValidateResult{Valid: true}, nil
	}
	hasMX, err := s.MX.HasMX(domainPart)
	if err != nil {
		utils.LogEvent(s.RequestID, "verification", "mx-lookup", "fail-open: "+err.Error())
		return ValidateResult{Valid: true}, nil
	}
	return ValidateResult{Valid: hasMX}, nil
}

// SendOTP creates a fresh verification row (deleting any outstanding
// unverified one) and mails the OTP plus magic link. Returns the row id
// the client must echo back on verify-otp.
func (s VerificationService) SendOTP(email, name string) (int64, error) {
	if !utils.IsValidEmail(email) {
		return 0, domain.ValidationError{Field: "email", Msg: "is not a valid email address"}
	}

	var userID int64
	if user, err := s.UserRepo.GetByEmail(email); err == nil {
		userID = user.ID
	} else if !domain.IsNotFound(err) {
		utils.LogEvent(s.RequestID, "verification", "user-lookup", "ignored: "+err.Error())
	}

	otp, err := generateOTP()
	if err != nil {
		return 0, domain.InternalError{Msg: "could not generate verification code", Err: err}
	}
	magic, err := generateMagicToken()
	if err != nil {
		return 0, domain.InternalError{Msg: "could not generate verification token", Err: err}
	}

	row := models.EmailVerification{
		UserID:     userID,
		Token:      otp,
		MagicToken: magic,
		Email:      email,
		ExpiresAt:  utils.NowUTC().Add(verificationTTL),
	}

	var id int64
	err = intdb.WithRetry(s.RequestID, "verification-insert", func() error {
		if err := s.VerificationRepo.DeleteUnverified(userID, email); err != nil {
			return err
		}
		var insertErr error
		id, insertErr = s.VerificationRepo.Insert(row)
		return insertErr
	})
	if err != nil {
		return 0, domain.InternalError{Msg: "could not store verification", Err: err}
	}

	if s.Relay != nil {
		err := s.Relay.SendVerification(mailrelay.VerificationEmail{
			To:        email,
			Name:      name,
			OTP:       otp,
			MagicLink: s.SiteBaseURL + "/api/verification/verify?token=" + magic,
		})
		if err != nil {
			return 0, domain.InternalError{Msg: "could not send verification email", Err: err}
		}
	}

	return id, nil
}

// VerifyOTP confirms the code entered by the user. Re-verifying an
// already-verified row succeeds idempotently.
func (s VerificationService) VerifyOTP(verificationID int64, otp string) error {
	row, err := s.VerificationRepo.GetByIDAndToken(verificationID, strings.TrimSpace(otp))
	if err != nil {
		return err
	}
	return s.markVerified(row)
}

// VerifyMagicToken confirms via the emailed link.
func (s VerificationService) VerifyMagicToken(token string) error {
	row, err := s.VerificationRepo.GetByMagicToken(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	return s.markVerified(row)
}

func (s VerificationService) markVerified(row models.EmailVerification) error {
	if row.Verified {
		return nil
	}
	if row.Expired(utils.NowUTC()) {
		return domain.ValidationError{Field: "token", Msg: "verification code has expired"}
	}
	if err := s.VerificationRepo.MarkVerified(row.ID); err != nil {
		return domain.InternalError{Msg: "could not mark verification", Err: err}
	}
	if row.UserID > 0 {
		if err := s.UserRepo.MarkVerified(row.UserID); err != nil {
			utils.LogEvent(s.RequestID, "verification", "user-propagate", "failed: "+err.Error())
		}
	}
	return nil
}

// CheckResult answers check-verification for an email address.
type CheckResult struct {
	UserExists          bool `json:"userExists"`
	Verified            bool `json:"verified"`
	PendingVerification bool `json:"pendingVerification"`
}

func (s VerificationService) CheckVerification(email string) (CheckResult, error) {
	if !utils.IsValidEmail(email) {
		return CheckResult{}, domain.ValidationError{Field: "email", Msg: "is not a valid email address"}
	}

	var out CheckResult
	if user, err := s.UserRepo.GetByEmail(email); err == nil {
		out.UserExists = true
		out.Verified = user.Verified
	} else if !domain.IsNotFound(err) {
		return CheckResult{}, err
	}

	if pending, err := s.VerificationRepo.GetPendingByEmail(email); err == nil {
		out.PendingVerification = !pending.Expired(utils.NowUTC())
	} else if !domain.IsNotFound(err) {
		return CheckResult{}, err
	}
	return out, nil
}

// generateOTP builds the 6-character code: 2 digits, 1 lowercase letter,
// 3 digits.
func generateOTP() (string, error) {
	var b strings.Builder
	digits := "0123456789"
	letters := "abcdefghijklmnopqrstuvwxyz"

	pick := func(alphabet string) error {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return err
		}
		b.WriteByte(alphabet[n.Int64()])
		return nil
	}

	for i := 0; i < 2; i++ {
		if err := pick(digits); err != nil {
			return "", err
		}
	}
	if err := pick(letters); err != nil {
		return "", err
	}
	for i := 0; i < 3; i++ {
		if err := pick(digits); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// generateMagicToken returns 32 hex characters.
func generateMagicToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
