package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/idtoken"

	"github.com/zipcart/auth-api/internal/domain"
	"github.com/zipcart/auth-api/internal/repository/ports"
	"github.com/zipcart/auth-api/internal/util"
)

var (
	ErrEmailAlreadyUsed     = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("email or password is incorrect")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidOtp           = errors.New("invalid otp")
	ErrIncorrectOldPassword = errors.New("old password is incorrect")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrInvalidGoogleToken   = errors.New("invalid google token")
)

// OtpMailSender queues OTP delivery mail. Implementations are best-effort:
// failures are logged, never surfaced to the request that triggered them.
type OtpMailSender interface {
	SendOtp(ctx context.Context, email, name string, code int, purpose domain.OtpPurpose) error
}

// AuthResult is a user plus the bearer token issued for this request.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService owns account lifecycle transitions and bearer-token issuance.
// Every sequence that writes more than one record runs inside store.InTx.
type AuthService struct {
	store  ports.Store
	otp    *OtpService
	mailer OtpMailSender
	jwt    *util.JWTManager

	googleAud   string
	verifyIDTok func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error)

	// dispatch runs post-commit side effects; overridden in tests to run
	// synchronously.
	dispatch    func(fn func())
	mailTimeout time.Duration
}

func NewAuthService(store ports.Store, otp *OtpService, mailer OtpMailSender, jwt *util.JWTManager, googleAud string) *AuthService {
	return &AuthService{
		store:       store,
		otp:         otp,
		mailer:      mailer,
		jwt:         jwt,
		googleAud:   googleAud,
		verifyIDTok: idtoken.Validate,
		dispatch:    func(fn func()) { go fn() },
		mailTimeout: 30 * time.Second,
	}
}

// Register creates the account, its registration OTP, and a bearer token in
// one transaction. The OTP mail goes out after commit and cannot fail the
// registration.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, fmt.Errorf("derive password: %w", err)
	}

	var (
		user      *domain.User
		token     string
		challenge *domain.OtpChallenge
	)
	err = s.store.InTx(ctx, func(tx ports.Store) error {
		user, err = tx.Users().Create(ctx, name, email, hash, salt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrEmailAlreadyUsed
			}
			return fmt.Errorf("create user: %w", err)
		}
		challenge, err = s.otp.WithRepo(tx.Otps()).Issue(ctx, email)
		if err != nil {
			return err
		}
		token, err = issueToken(ctx, tx.Tokens(), s.jwt, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.queueOtpMail(user, challenge.Code, domain.OtpPurposeRegistration)
	return &AuthResult{User: user, Token: token}, nil
}

// Login collapses unknown-email and wrong-password into ErrInvalidCredentials
// so responses never reveal whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	var result AuthResult
	err := s.store.InTx(ctx, func(tx ports.Store) error {
		user, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidCredentials
			}
			return fmt.Errorf("find user: %w", err)
		}
		if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
			return ErrInvalidCredentials
		}
		token, err := issueToken(ctx, tx.Tokens(), s.jwt, user)
		if err != nil {
			return err
		}
		result = AuthResult{User: user, Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// LoginWithGoogle signs in (or signs up) via a Google ID token. Google has
// already verified the address, so the account is created email-verified.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*AuthResult, error) {
	payload, err := s.verifyIDTok(ctx, idTok, s.googleAud)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}
	email = normalizeEmail(email)

	var result AuthResult
	err = s.store.InTx(ctx, func(tx ports.Store) error {
		user, err := tx.Users().UpsertGoogleUser(ctx, name, email)
		if err != nil {
			return fmt.Errorf("upsert google user: %w", err)
		}
		token, err := issueToken(ctx, tx.Tokens(), s.jwt, user)
		if err != nil {
			return err
		}
		result = AuthResult{User: user, Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyOtp checks the live challenge for email. For the registration purpose
// it also marks the account verified and consumes the challenge; for the
// reset_password purpose the challenge is left in place until reset, expiry,
// or overwrite.
func (s *AuthService) VerifyOtp(ctx context.Context, email string, code int, purpose domain.OtpPurpose) error {
	if !purpose.Valid() {
		return ErrInvalidOtp
	}
	email = normalizeEmail(email)

	result, err := s.otp.Check(ctx, email, code)
	if err != nil {
		return err
	}
	if !result.OK {
		log.Printf("otp check failed for %s: %s", email, result.Reason)
		return ErrInvalidOtp
	}
	if purpose != domain.OtpPurposeRegistration {
		return nil
	}

	return s.store.InTx(ctx, func(tx ports.Store) error {
		user, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("find user: %w", err)
		}
		if err := tx.Users().MarkEmailVerified(ctx, user.ID, time.Now()); err != nil {
			return fmt.Errorf("mark verified: %w", err)
		}
		return s.otp.WithRepo(tx.Otps()).Revoke(ctx, email)
	})
}

// ForgotPassword issues a reset OTP and queues its delivery.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.requestOtp(ctx, email, domain.OtpPurposeResetPassword)
}

// ResendOtp reissues the verification OTP, replacing the previous code.
func (s *AuthService) ResendOtp(ctx context.Context, email string) error {
	return s.requestOtp(ctx, email, domain.OtpPurposeRegistration)
}

func (s *AuthService) requestOtp(ctx context.Context, email string, purpose domain.OtpPurpose) error {
	email = normalizeEmail(email)
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	challenge, err := s.otp.Issue(ctx, email)
	if err != nil {
		return err
	}
	s.queueOtpMail(user, challenge.Code, purpose)
	return nil
}

// ResetPassword overwrites the password after an OTP check, consuming the
// challenge. The old password is not required on this path.
func (s *AuthService) ResetPassword(ctx context.Context, email string, code int, newPassword string) error {
	email = normalizeEmail(email)
	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return fmt.Errorf("derive password: %w", err)
	}

	return s.store.InTx(ctx, func(tx ports.Store) error {
		user, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("find user: %w", err)
		}
		otps := s.otp.WithRepo(tx.Otps())
		result, err := otps.Check(ctx, email, code)
		if err != nil {
			return err
		}
		if !result.OK {
			log.Printf("otp check failed for %s: %s", email, result.Reason)
			return ErrInvalidOtp
		}
		if err := otps.Revoke(ctx, email); err != nil {
			return fmt.Errorf("revoke otp: %w", err)
		}
		return tx.Users().UpdatePassword(ctx, user.ID, hash, salt)
	})
}

// ChangePassword requires the current password, unlike the OTP-gated reset.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !util.VerifyPassword(oldPassword, user.PasswordSalt, user.PasswordHash) {
		return ErrIncorrectOldPassword
	}
	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return fmt.Errorf("derive password: %w", err)
	}
	return s.store.Users().UpdatePassword(ctx, user.ID, hash, salt)
}

// Logout revokes every outstanding token for the account.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.store.Tokens().DeactivateAllByUser(ctx, userID)
}

// Authenticate resolves a bearer token to its user. The signature check is
// cheap; the token row lookup enforces logout revocation.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	row, err := s.store.Tokens().FindActive(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	if row.UserID != claims.UserID {
		return nil, ErrUnauthenticated
	}
	user, err := s.store.Users().FindByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) queueOtpMail(user *domain.User, code int, purpose domain.OtpPurpose) {
	if s.mailer == nil {
		return
	}
	email, name := user.Email, user.Name
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.mailTimeout)
		defer cancel()
		if err := s.mailer.SendOtp(ctx, email, name, code, purpose); err != nil {
			log.Printf("send otp mail to %s: %v", email, err)
		}
	})
}

func issueToken(ctx context.Context, tokens ports.TokenRepository, jwt *util.JWTManager, user *domain.User) (string, error) {
	signed, expiresAt, err := jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if _, err := tokens.Create(ctx, user.ID, signed, expiresAt); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}
	return signed, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
