package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/idtoken"

	"github.com/zipcart/auth-api/internal/domain"
	"github.com/zipcart/auth-api/internal/repository/ports"
	"github.com/zipcart/auth-api/internal/util"
)

type fakeUserRepo struct {
	createInput struct {
		name  string
		email string
		hash  []byte
		salt  []byte
	}
	createResult *domain.User
	createErr    error

	upsertGoogleName   string
	upsertGoogleEmail  string
	upsertGoogleResult *domain.User
	upsertGoogleErr    error

	findByEmailInput  string
	findByEmailResult *domain.User
	findByEmailErr    error

	findByIDInput  uuid.UUID
	findByIDResult *domain.User
	findByIDErr    error

	markVerifiedCalls []uuid.UUID
	markVerifiedErr   error

	updatePasswordInput struct {
		id   uuid.UUID
		hash []byte
		salt []byte
	}
	updatePasswordCalls int
	updatePasswordErr   error
}

func (f *fakeUserRepo) Create(ctx context.Context, name, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	f.createInput.name = name
	f.createInput.email = email
	f.createInput.hash = append([]byte(nil), passwordHash...)
	f.createInput.salt = append([]byte(nil), passwordSalt...)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		clone := *f.createResult
		return &clone, nil
	}
	return &domain.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, PasswordSalt: passwordSalt, Role: domain.RoleCustomer}, nil
}

func (f *fakeUserRepo) UpsertGoogleUser(ctx context.Context, name, email string) (*domain.User, error) {
	f.upsertGoogleName = name
	f.upsertGoogleEmail = email
	if f.upsertGoogleErr != nil {
		return nil, f.upsertGoogleErr
	}
	if f.upsertGoogleResult != nil {
		clone := *f.upsertGoogleResult
		return &clone, nil
	}
	now := time.Now()
	return &domain.User{ID: uuid.New(), Name: name, Email: email, Role: domain.RoleCustomer, EmailVerifiedAt: &now}, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.findByEmailInput = email
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	if f.findByEmailResult == nil {
		return nil, sql.ErrNoRows
	}
	clone := *f.findByEmailResult
	return &clone, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.findByIDInput = id
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	if f.findByIDResult == nil {
		return nil, sql.ErrNoRows
	}
	clone := *f.findByIDResult
	return &clone, nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	f.markVerifiedCalls = append(f.markVerifiedCalls, id)
	return f.markVerifiedErr
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	f.updatePasswordCalls++
	f.updatePasswordInput.id = id
	f.updatePasswordInput.hash = append([]byte(nil), passwordHash...)
	f.updatePasswordInput.salt = append([]byte(nil), passwordSalt...)
	return f.updatePasswordErr
}

type fakeTokenRepo struct {
	createdTokens []struct {
		userID    uuid.UUID
		token     string
		expiresAt time.Time
	}
	createErr error

	findActiveInput  string
	findActiveResult *domain.AuthToken
	findActiveErr    error

	deactivatedUsers []uuid.UUID
	deactivateErr    error
}

func (f *fakeTokenRepo) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.AuthToken, error) {
	f.createdTokens = append(f.createdTokens, struct {
		userID    uuid.UUID
		token     string
		expiresAt time.Time
	}{userID: userID, token: token, expiresAt: expiresAt})
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.AuthToken{ID: int64(len(f.createdTokens)), UserID: userID, Token: token, IsActive: true, ExpiresAt: expiresAt}, nil
}

func (f *fakeTokenRepo) FindActive(ctx context.Context, token string) (*domain.AuthToken, error) {
	f.findActiveInput = token
	if f.findActiveErr != nil {
		return nil, f.findActiveErr
	}
	if f.findActiveResult != nil {
		clone := *f.findActiveResult
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTokenRepo) DeactivateAllByUser(ctx context.Context, userID uuid.UUID) error {
	f.deactivatedUsers = append(f.deactivatedUsers, userID)
	return f.deactivateErr
}

type fakeStore struct {
	users  *fakeUserRepo
	otps   *fakeOtpRepo
	tokens *fakeTokenRepo

	txCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: &fakeUserRepo{}, otps: newFakeOtpRepo(), tokens: &fakeTokenRepo{}}
}

func (s *fakeStore) Users() ports.UserRepository   { return s.users }
func (s *fakeStore) Otps() ports.OtpRepository     { return s.otps }
func (s *fakeStore) Tokens() ports.TokenRepository { return s.tokens }

func (s *fakeStore) InTx(ctx context.Context, fn func(ports.Store) error) error {
	s.txCalls++
	return fn(s)
}

type fakeMailer struct {
	sent []struct {
		email   string
		name    string
		code    int
		purpose domain.OtpPurpose
	}
	err error
}

func (f *fakeMailer) SendOtp(ctx context.Context, email, name string, code int, purpose domain.OtpPurpose) error {
	f.sent = append(f.sent, struct {
		email   string
		name    string
		code    int
		purpose domain.OtpPurpose
	}{email: email, name: name, code: code, purpose: purpose})
	return f.err
}

func newAuthServiceForTests(store *fakeStore, mailer OtpMailSender) *AuthService {
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	otpService := NewOtpService(store.otps, time.Hour)
	svc := NewAuthService(store, otpService, mailer, jwtManager, "google-audience")
	svc.dispatch = func(fn func()) { fn() }
	return svc
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	mailer := &fakeMailer{}
	svc := newAuthServiceForTests(store, mailer)

	result, err := svc.Register(ctx, "Test User", "Test@Example.com ", "password1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.users.createInput.email != "test@example.com" {
		t.Fatalf("email should be normalized, got %q", store.users.createInput.email)
	}
	if len(store.users.createInput.hash) == 0 || len(store.users.createInput.salt) == 0 {
		t.Fatal("expected password hash and salt to be set")
	}
	challenge, ok := store.otps.rows["test@example.com"]
	if !ok {
		t.Fatal("expected OTP challenge to be persisted")
	}
	if len(store.tokens.createdTokens) != 1 {
		t.Fatalf("expected one token, got %d", len(store.tokens.createdTokens))
	}
	if result.Token == "" || result.Token != store.tokens.createdTokens[0].token {
		t.Fatal("expected result token to match persisted token")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one OTP mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].code != challenge.Code {
		t.Fatalf("expected mailed code %d, got %d", challenge.Code, mailer.sent[0].code)
	}
	if mailer.sent[0].purpose != domain.OtpPurposeRegistration {
		t.Fatalf("unexpected mail purpose %q", mailer.sent[0].purpose)
	}
	if store.txCalls != 1 {
		t.Fatalf("expected registration to run in one transaction, got %d", store.txCalls)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	store.users.createErr = &pgconn.PgError{Code: "23505"}
	mailer := &fakeMailer{}
	svc := newAuthServiceForTests(store, mailer)

	_, err := svc.Register(context.Background(), "Test User", "duplicate@example.com", "password1")
	if !errors.Is(err, ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
	if len(store.otps.rows) != 0 {
		t.Fatal("expected no OTP challenge on duplicate email")
	}
	if len(store.tokens.createdTokens) != 0 {
		t.Fatal("expected no token on duplicate email")
	}
	if len(mailer.sent) != 0 {
		t.Fatal("expected no mail on duplicate email")
	}
}

func TestRegisterOtpFailureAbortsRegistration(t *testing.T) {
	store := newFakeStore()
	store.otps.upsertErr = errors.New("db down")
	mailer := &fakeMailer{}
	svc := newAuthServiceForTests(store, mailer)

	_, err := svc.Register(context.Background(), "Test User", "test@example.com", "password1")
	if err == nil {
		t.Fatal("expected error when OTP issuance fails")
	}
	if len(store.tokens.createdTokens) != 0 {
		t.Fatal("expected no token when OTP issuance fails")
	}
	if len(mailer.sent) != 0 {
		t.Fatal("expected no mail when registration aborts")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthServiceForTests(store, nil)

		_, err := svc.Login(context.Background(), "none@example.com", "password1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if len(store.tokens.createdTokens) != 0 {
			t.Fatal("expected no token for unknown email")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		hash, salt, _ := util.DerivePassword("right-password")
		store := newFakeStore()
		store.users.findByEmailResult = &domain.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: hash, PasswordSalt: salt}
		svc := newAuthServiceForTests(store, nil)

		_, err := svc.Login(context.Background(), "test@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if len(store.tokens.createdTokens) != 0 {
			t.Fatal("expected no token for wrong password")
		}
	})
}

func TestLoginSuccess(t *testing.T) {
	hash, salt, _ := util.DerivePassword("right-password")
	user := &domain.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com", PasswordHash: hash, PasswordSalt: salt, Role: domain.RoleCustomer}
	store := newFakeStore()
	store.users.findByEmailResult = user
	svc := newAuthServiceForTests(store, nil)

	result, err := svc.Login(context.Background(), "test@example.com", "right-password")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User == nil || result.User.ID != user.ID {
		t.Fatal("unexpected user in result")
	}
	if len(store.tokens.createdTokens) != 1 {
		t.Fatalf("expected one token, got %d", len(store.tokens.createdTokens))
	}
	if result.Token == "" {
		t.Fatal("expected token in result")
	}
}

func TestLoginWithGoogle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthServiceForTests(store, nil)
		svc.verifyIDTok = func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error) {
			if audience != "google-audience" {
				t.Fatalf("unexpected audience %q", audience)
			}
			return &idtoken.Payload{Claims: map[string]interface{}{"email": "G.User@Example.com", "name": "G User"}}, nil
		}

		result, err := svc.LoginWithGoogle(context.Background(), "id-token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.users.upsertGoogleEmail != "g.user@example.com" {
			t.Fatalf("expected normalized upsert email, got %q", store.users.upsertGoogleEmail)
		}
		if result.Token == "" {
			t.Fatal("expected token in result")
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthServiceForTests(store, nil)
		svc.verifyIDTok = func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error) {
			return nil, errors.New("bad token")
		}

		_, err := svc.LoginWithGoogle(context.Background(), "id-token")
		if !errors.Is(err, ErrInvalidGoogleToken) {
			t.Fatalf("expected ErrInvalidGoogleToken, got %v", err)
		}
	})
}

func TestVerifyOtpRegistration(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "test@example.com"}
	store := newFakeStore()
	store.users.findByEmailResult = user
	svc := newAuthServiceForTests(store, nil)

	challenge, err := svc.otp.Issue(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := svc.VerifyOtp(ctx, "test@example.com", challenge.Code, domain.OtpPurposeRegistration); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.users.markVerifiedCalls) != 1 || store.users.markVerifiedCalls[0] != user.ID {
		t.Fatal("expected account to be marked verified")
	}
	if _, ok := store.otps.rows["test@example.com"]; ok {
		t.Fatal("expected registration verification to consume the challenge")
	}
}

func TestVerifyOtpResetPasswordKeepsChallenge(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.users.findByEmailResult = &domain.User{ID: uuid.New(), Email: "test@example.com"}
	svc := newAuthServiceForTests(store, nil)

	challenge, err := svc.otp.Issue(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := svc.VerifyOtp(ctx, "test@example.com", challenge.Code, domain.OtpPurposeResetPassword); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.users.markVerifiedCalls) != 0 {
		t.Fatal("expected no verification mark for reset purpose")
	}
	if _, ok := store.otps.rows["test@example.com"]; !ok {
		t.Fatal("expected reset-purpose verification to keep the challenge")
	}
}

func TestVerifyOtpInvalidCode(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.users.findByEmailResult = &domain.User{ID: uuid.New(), Email: "test@example.com"}
	svc := newAuthServiceForTests(store, nil)

	challenge, err := svc.otp.Issue(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	wrong := challenge.Code + 1
	if wrong > 9999 {
		wrong = 1000
	}

	err = svc.VerifyOtp(ctx, "test@example.com", wrong, domain.OtpPurposeRegistration)
	if !errors.Is(err, ErrInvalidOtp) {
		t.Fatalf("expected ErrInvalidOtp, got %v", err)
	}
	if len(store.users.markVerifiedCalls) != 0 {
		t.Fatal("expected no verification mark for invalid code")
	}
	if _, ok := store.otps.rows["test@example.com"]; !ok {
		t.Fatal("expected challenge to survive a failed check")
	}
}

func TestForgotPassword(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		store := newFakeStore()
		mailer := &fakeMailer{}
		svc := newAuthServiceForTests(store, mailer)

		err := svc.ForgotPassword(context.Background(), "unknown@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if len(store.otps.rows) != 0 {
			t.Fatal("expected no OTP row for unknown email")
		}
		if len(mailer.sent) != 0 {
			t.Fatal("expected no mail for unknown email")
		}
	})

	t.Run("success", func(t *testing.T) {
		store := newFakeStore()
		store.users.findByEmailResult = &domain.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}
		mailer := &fakeMailer{}
		svc := newAuthServiceForTests(store, mailer)

		if err := svc.ForgotPassword(context.Background(), "test@example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		challenge, ok := store.otps.rows["test@example.com"]
		if !ok {
			t.Fatal("expected OTP challenge to be persisted")
		}
		if len(mailer.sent) != 1 || mailer.sent[0].code != challenge.Code {
			t.Fatal("expected OTP mail carrying the issued code")
		}
		if mailer.sent[0].purpose != domain.OtpPurposeResetPassword {
			t.Fatalf("unexpected mail purpose %q", mailer.sent[0].purpose)
		}
	})

	t.Run("mailer failure does not surface", func(t *testing.T) {
		store := newFakeStore()
		store.users.findByEmailResult = &domain.User{ID: uuid.New(), Email: "test@example.com"}
		mailer := &fakeMailer{err: errors.New("smtp down")}
		svc := newAuthServiceForTests(store, mailer)

		if err := svc.ForgotPassword(context.Background(), "test@example.com"); err != nil {
			t.Fatalf("expected mail failure to be swallowed, got %v", err)
		}
	})
}

func TestResendOtpUsesRegistrationPurpose(t *testing.T) {
	store := newFakeStore()
	store.users.findByEmailResult = &domain.User{ID: uuid.New(), Email: "test@example.com"}
	mailer := &fakeMailer{}
	svc := newAuthServiceForTests(store, mailer)

	if err := svc.ResendOtp(context.Background(), "test@example.com"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].purpose != domain.OtpPurposeRegistration {
		t.Fatal("expected registration-purpose OTP mail")
	}
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		hash, salt, _ := util.DerivePassword("old-password")
		user := &domain.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: hash, PasswordSalt: salt}
		store := newFakeStore()
		store.users.findByEmailResult = user
		svc := newAuthServiceForTests(store, nil)

		challenge, err := svc.otp.Issue(ctx, "test@example.com")
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}

		if err := svc.ResetPassword(ctx, "test@example.com", challenge.Code, "new-password1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.users.updatePasswordCalls != 1 {
			t.Fatalf("expected one password update, got %d", store.users.updatePasswordCalls)
		}
		input := store.users.updatePasswordInput
		if input.id != user.ID {
			t.Fatal("expected password update for the user")
		}
		if !util.VerifyPassword("new-password1", input.salt, input.hash) {
			t.Fatal("expected stored hash to verify against the new password")
		}
		if util.VerifyPassword("old-password", input.salt, input.hash) {
			t.Fatal("expected old password to stop verifying")
		}
		if _, ok := store.otps.rows["test@example.com"]; ok {
			t.Fatal("expected reset to consume the challenge")
		}
	})

	t.Run("invalid otp", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Email: "test@example.com"}
		store := newFakeStore()
		store.users.findByEmailResult = user
		svc := newAuthServiceForTests(store, nil)

		challenge, err := svc.otp.Issue(ctx, "test@example.com")
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}
		wrong := challenge.Code + 1
		if wrong > 9999 {
			wrong = 1000
		}

		err = svc.ResetPassword(ctx, "test@example.com", wrong, "new-password1")
		if !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("expected ErrInvalidOtp, got %v", err)
		}
		if store.users.updatePasswordCalls != 0 {
			t.Fatal("expected no password update for invalid OTP")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthServiceForTests(store, nil)

		err := svc.ResetPassword(ctx, "unknown@example.com", 1234, "new-password1")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		hash, salt, _ := util.DerivePassword("old-password")
		user := &domain.User{ID: uuid.New(), PasswordHash: hash, PasswordSalt: salt}
		store := newFakeStore()
		store.users.findByIDResult = user
		svc := newAuthServiceForTests(store, nil)

		if err := svc.ChangePassword(ctx, user.ID, "old-password", "new-password1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		input := store.users.updatePasswordInput
		if input.id != user.ID {
			t.Fatal("expected password update for the user")
		}
		if !util.VerifyPassword("new-password1", input.salt, input.hash) {
			t.Fatal("expected stored hash to verify against the new password")
		}
	})

	t.Run("incorrect old password", func(t *testing.T) {
		hash, salt, _ := util.DerivePassword("old-password")
		user := &domain.User{ID: uuid.New(), PasswordHash: hash, PasswordSalt: salt}
		store := newFakeStore()
		store.users.findByIDResult = user
		svc := newAuthServiceForTests(store, nil)

		err := svc.ChangePassword(ctx, user.ID, "wrong-password", "new-password1")
		if !errors.Is(err, ErrIncorrectOldPassword) {
			t.Fatalf("expected ErrIncorrectOldPassword, got %v", err)
		}
		if store.users.updatePasswordCalls != 0 {
			t.Fatal("expected hash to remain unchanged")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthServiceForTests(store, nil)

		err := svc.ChangePassword(ctx, uuid.New(), "old-password", "new-password1")
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	store := newFakeStore()
	svc := newAuthServiceForTests(store, nil)
	userID := uuid.New()

	if err := svc.Logout(context.Background(), userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.tokens.deactivatedUsers) != 1 || store.tokens.deactivatedUsers[0] != userID {
		t.Fatal("expected all tokens for the user to be revoked")
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	hash, salt, _ := util.DerivePassword("password1")
	user := &domain.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: hash, PasswordSalt: salt}

	t.Run("success", func(t *testing.T) {
		store := newFakeStore()
		store.users.findByEmailResult = user
		store.users.findByIDResult = user
		svc := newAuthServiceForTests(store, nil)

		result, err := svc.Login(ctx, "test@example.com", "password1")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		store.tokens.findActiveResult = &domain.AuthToken{ID: 1, UserID: user.ID, Token: result.Token, IsActive: true, ExpiresAt: time.Now().Add(time.Hour)}

		got, err := svc.Authenticate(ctx, result.Token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.ID != user.ID {
			t.Fatal("unexpected user from Authenticate")
		}
	})

	t.Run("revoked token", func(t *testing.T) {
		store := newFakeStore()
		store.users.findByEmailResult = user
		svc := newAuthServiceForTests(store, nil)

		result, err := svc.Login(ctx, "test@example.com", "password1")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		// findActiveResult left nil: the row is gone after revocation.
		_, err = svc.Authenticate(ctx, result.Token)
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		store := newFakeStore()
		svc := newAuthServiceForTests(store, nil)

		_, err := svc.Authenticate(ctx, "not-a-jwt")
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}
