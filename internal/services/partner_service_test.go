package services

import (
	"testing"
	"time"

	"transfers/internal/domain"
	"transfers/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func userRowColumns() []string {
	return []string{"id", "name", "email", "phone", "role", "status", "verified", "password_hash"}
}

func TestPartnerLoginIssuesToken(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ada@ride.example").
		WillReturnRows(sqlmock.NewRows(userRowColumns()).
			AddRow(12, "Ada Lovelace", "ada@ride.example", "", "partner", "active", true, string(hash)))

	svc := PartnerService{JWTSecret: "test-secret", RequestID: "test-req"}
	res, err := svc.Login("ada@ride.example", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.PasswordHash != "" {
		t.Fatal("password hash must not leak into the result")
	}

	parsed, err := jwt.Parse(res.Token, func(tok *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != "partner" {
		t.Fatalf("claims = %v", claims)
	}
}

func TestPartnerLoginWrongPassword(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows(userRowColumns()).
			AddRow(12, "Ada", "ada@ride.example", "", "partner", "active", true, string(hash)))

	svc := PartnerService{JWTSecret: "test-secret"}
	if _, err := svc.Login("ada@ride.example", "wrong-pass"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPartnerLoginUnknownEmail(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows(userRowColumns()))

	svc := PartnerService{JWTSecret: "test-secret"}
	if _, err := svc.Login("ghost@example.com", "whatever"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPartnerSignupValidation(t *testing.T) {
	svc := PartnerService{}
	cases := []struct {
		name string
		req  SignupRequest
	}{
		{"missing code", SignupRequest{Email: "a@b.co", Password: "longenough"}},
		{"bad email", SignupRequest{Code: "X", Email: "nope", Password: "longenough"}},
		{"short password", SignupRequest{Code: "X", Email: "a@b.co", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Signup(tc.req); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPartnerSignupExistingAccountConflicts(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ada@ride.example").
		WillReturnRows(sqlmock.NewRows(userRowColumns()).
			AddRow(12, "Ada", "ada@ride.example", "", "partner", "active", true, "x"))
	mock.ExpectQuery("SELECT (.+) FROM email_verifications WHERE email=(.+) AND verified=0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "magic_token", "email", "expires_at", "verified"}))

	svc := PartnerService{RequestID: "test-req"}
	_, err := svc.Signup(SignupRequest{Code: "WELCOME2026", Email: "ada@ride.example", Password: "longenough"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPartnerSignupUnverifiedEmailRejected(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows(userRowColumns()))
	mock.ExpectQuery("SELECT (.+) FROM email_verifications WHERE email=(.+) AND verified=0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "magic_token", "email", "expires_at", "verified"}))
	mock.ExpectQuery("SELECT COUNT(.+) FROM email_verifications").
		WithArgs("new@ride.example").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	svc := PartnerService{RequestID: "test-req"}
	_, err := svc.Signup(SignupRequest{Code: "WELCOME2026", Email: "new@ride.example", Password: "longenough"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPartnerSignupHappyPath(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	// No existing account, no pending row, but a retained verified row.
	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows(userRowColumns()))
	mock.ExpectQuery("SELECT (.+) FROM email_verifications WHERE email=(.+) AND verified=0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "magic_token", "email", "expires_at", "verified"}))
	mock.ExpectQuery("SELECT COUNT(.+) FROM email_verifications").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	expires := time.Now().UTC().Add(24 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM invite_links").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "status", "role", "expires_at", "used_at", "used_by"}).
			AddRow(3, "WELCOME2026", models.InviteStatusActive, "partner", expires, nil, nil))
	mock.ExpectQuery("SELECT (.+) FROM partner_applications").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "invite_link_id", "user_id", "company_name", "contact_name", "email", "phone", "country",
		}))

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(40, 1))

	mock.ExpectExec("UPDATE invite_links").
		WithArgs(models.InviteStatusUsed, int64(40), "WELCOME2026", models.InviteStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM invite_links").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "status", "role", "expires_at", "used_at", "used_by"}).
			AddRow(3, "WELCOME2026", models.InviteStatusUsed, "partner", expires, time.Now(), 40))
	mock.ExpectQuery("SELECT (.+) FROM partner_applications").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "invite_link_id", "user_id", "company_name", "contact_name", "email", "phone", "country",
		}))

	svc := PartnerService{JWTSecret: "test-secret", RequestID: "test-req"}
	res, err := svc.Signup(SignupRequest{
		Code:     "WELCOME2026",
		Email:    "new@ride.example",
		Name:     "New Partner",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.User.ID != 40 || res.User.Role != "partner" || !res.User.Verified {
		t.Fatalf("user = %+v", res.User)
	}
	if res.Token == "" {
		t.Fatal("expected a session token")
	}
}
