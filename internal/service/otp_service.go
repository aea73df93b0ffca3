package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zipcart/auth-api/internal/domain"
	"github.com/zipcart/auth-api/internal/repository/ports"
	"github.com/zipcart/auth-api/internal/util"
)

// Check outcomes. The HTTP contract collapses all failures into one
// undifferentiated "invalid OTP"; the reason exists for logs and tests only.
const (
	OtpReasonOK       = "ok"
	OtpReasonMismatch = "mismatch"
	OtpReasonExpired  = "expired"
	OtpReasonMissing  = "missing"
)

type OtpCheckResult struct {
	OK     bool
	Reason string
}

const DefaultOtpTTL = 60 * time.Minute

// OtpService generates, validates, and revokes one-time codes. One live
// challenge per email: issuing again overwrites the previous code, and two
// concurrent issuances race last-write-wins at the store.
//
// Codes are 4 digits over a 60-minute window and issuance is not rate
// limited, so the engine tolerates on the order of thousands of guesses per
// challenge. Callers should front this with throttling if that matters.
type OtpService struct {
	otps ports.OtpRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewOtpService(otps ports.OtpRepository, ttl time.Duration) *OtpService {
	if ttl <= 0 {
		ttl = DefaultOtpTTL
	}
	return &OtpService{otps: otps, ttl: ttl, now: time.Now}
}

// WithRepo returns a copy bound to otps, used to scope the engine to a
// repository participating in a caller-owned transaction.
func (s *OtpService) WithRepo(otps ports.OtpRepository) *OtpService {
	return &OtpService{otps: otps, ttl: s.ttl, now: s.now}
}

// Issue upserts a fresh challenge for email, replacing any live one.
// Delivery is the caller's concern.
func (s *OtpService) Issue(ctx context.Context, email string) (*domain.OtpChallenge, error) {
	code, err := util.GenerateOtpCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp code: %w", err)
	}
	challenge, err := s.otps.Upsert(ctx, email, code, s.now().Add(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("persist otp challenge: %w", err)
	}
	return challenge, nil
}

// Check reports whether code is the live, unexpired challenge for email,
// with the failure reason. It does not consume the challenge.
func (s *OtpService) Check(ctx context.Context, email string, code int) (OtpCheckResult, error) {
	challenge, err := s.otps.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OtpCheckResult{Reason: OtpReasonMissing}, nil
		}
		return OtpCheckResult{}, fmt.Errorf("load otp challenge: %w", err)
	}
	if challenge.Code != code {
		return OtpCheckResult{Reason: OtpReasonMismatch}, nil
	}
	if !s.now().Before(challenge.ExpiresAt) {
		return OtpCheckResult{Reason: OtpReasonExpired}, nil
	}
	return OtpCheckResult{OK: true, Reason: OtpReasonOK}, nil
}

// Validate is the boolean contract over Check.
func (s *OtpService) Validate(ctx context.Context, email string, code int) (bool, error) {
	result, err := s.Check(ctx, email, code)
	if err != nil {
		return false, err
	}
	return result.OK, nil
}

// Revoke deletes the challenge for email if present.
func (s *OtpService) Revoke(ctx context.Context, email string) error {
	return s.otps.Delete(ctx, email)
}
