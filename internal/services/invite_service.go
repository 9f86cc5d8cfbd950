package services

import (
	"time"

	intdb "transfers/internal/db"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
	"transfers/internal/repositories"
	"transfers/internal/utils"
)

type InviteService struct {
	InviteRepo repositories.InviteRepository
	RequestID  string
}

// InviteValidation is the GET response: validity plus the prefill data
// the partner-signup form needs.
type InviteValidation struct {
	Valid       bool                       `json:"valid"`
	InviteID    int64                      `json:"inviteId,omitempty"`
	Role        string                     `json:"role,omitempty"`
	ExpiresAt   string                     `json:"expiresAt,omitempty"`
	PartnerData *models.PartnerApplication `json:"partnerData,omitempty"`
}

// Validate checks an invite code. An invite found past its expiry is
// flipped to expired as a side effect.
func (s InviteService) Validate(code string) (InviteValidation, error) {
	var inv models.InviteLink
	err := intdb.WithRetry(s.RequestID, "invite-lookup", func() error {
		var lookupErr error
		inv, lookupErr = s.InviteRepo.GetByCode(code)
		return lookupErr
	})
	if domain.IsNotFound(err) {
		return InviteValidation{Valid: false}, nil
	}
	if err != nil {
		return InviteValidation{}, err
	}

	if inv.Status != models.InviteStatusActive {
		return InviteValidation{Valid: false}, nil
	}
	if utils.NowUTC().After(inv.ExpiresAt) {
		if markErr := s.InviteRepo.MarkExpired(inv.ID); markErr != nil {
			utils.LogEvent(s.RequestID, "invite", "mark-expired", "failed: "+markErr.Error())
		}
		return InviteValidation{Valid: false}, nil
	}

	out := InviteValidation{
		Valid:     true,
		InviteID:  inv.ID,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if app, appErr := s.InviteRepo.GetApplicationByInviteID(inv.ID); appErr == nil {
		out.PartnerData = &app
	} else if !domain.IsNotFound(appErr) {
		utils.LogEvent(s.RequestID, "invite", "application-lookup", "ignored: "+appErr.Error())
	}
	return out, nil
}

// Consume marks the invite used by userID. Success is decided solely by
// the conditional update's affected-row count, so two concurrent consumes
// of the same code cannot both win.
func (s InviteService) Consume(code string, userID int64) (string, error) {
	if code == "" {
		return "", domain.ValidationError{Field: "code", Msg: "is required"}
	}
	if userID <= 0 {
		return "", domain.ValidationError{Field: "userId", Msg: "is required"}
	}

	var consumed bool
	err := intdb.WithRetry(s.RequestID, "invite-consume", func() error {
		var consumeErr error
		consumed, consumeErr = s.InviteRepo.Consume(code, userID)
		return consumeErr
	})
	if err != nil {
		return "", domain.InternalError{Msg: "could not consume invite", Err: err}
	}
	if !consumed {
		return "", domain.ConflictError{Resource: "invite", Msg: "already used or no longer active"}
	}

	inv, err := s.InviteRepo.GetByCode(code)
	if err != nil {
		// Consumed but unreadable; the role is informational only.
		utils.LogEvent(s.RequestID, "invite", "post-consume-read", "failed: "+err.Error())
		return "", nil
	}

	if app, appErr := s.InviteRepo.GetApplicationByInviteID(inv.ID); appErr == nil {
		if stampErr := s.InviteRepo.StampApplicationUser(app.ID, userID); stampErr != nil {
			utils.LogEvent(s.RequestID, "invite", "application-stamp", "failed: "+stampErr.Error())
		}
	}
	return inv.Role, nil
}
