package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/mailer"
	"github.com/luminaschool/lumina-server/internal/password"
	"github.com/luminaschool/lumina-server/internal/session"
)

// resetTokenBytes is the number of random bytes in a password reset token.
const resetTokenBytes = 32

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository or the
// session core directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*Account, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, token, loginType, clientIP string) error
	Me(ctx context.Context, accountID string) (*Account, error)
	Sessions(ctx context.Context, accountID string) ([]session.Summary, error)
	RevokeSession(ctx context.Context, accountID, sessionID string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	DeleteAccount(ctx context.Context, accountID string) error
}

// StaffCodeRedeemer consumes one use of a staff code during registration.
// Implemented by the staffcodes module; defined here so auth doesn't import
// it directly.
type StaffCodeRedeemer interface {
	Redeem(ctx context.Context, code string) error
}

// authService implements AuthService over the account repository, the
// session core, and the credential hasher.
type authService struct {
	repo     AccountRepository
	sessions *session.Service
	hasher   *password.Hasher
	mail     mailer.Sender
	codes    StaffCodeRedeemer
	baseURL  string
	resetTTL time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(
	repo AccountRepository,
	sessions *session.Service,
	hasher *password.Hasher,
	mail mailer.Sender,
	codes StaffCodeRedeemer,
	baseURL string,
	resetTTL time.Duration,
) AuthService {
	return &authService{
		repo:     repo,
		sessions: sessions,
		hasher:   hasher,
		mail:     mail,
		codes:    codes,
		baseURL:  baseURL,
		resetTTL: resetTTL,
	}
}

// Register creates a new account. Staff accounts are gated on a valid staff
// code; the code is consumed before the account is created so an exhausted
// code can never mint an extra staff account.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)

	if email == "" || name == "" || input.Password == "" {
		return nil, apperror.New(apperror.CodeMissingRequiredFields)
	}
	if !validEmail(email) {
		return nil, apperror.New(apperror.CodeInvalidEmailFormat)
	}
	if len(input.Password) < 8 {
		return nil, apperror.New(apperror.CodePasswordTooWeak)
	}

	accountType := input.Type
	switch accountType {
	case TypeNormal, TypeStaff, TypeStudent:
		// Valid.
	case "":
		accountType = TypeNormal
	default:
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "type"})
	}

	// Check if email is already taken before doing expensive hashing.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.New(apperror.CodeDuplicateEmail)
	}

	// Staff registration consumes one use of a staff code.
	if accountType == TypeStaff {
		if input.StaffCode == "" {
			return nil, apperror.New(apperror.CodeInvalidStaffCode)
		}
		if err := s.codes.Redeem(ctx, input.StaffCode); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	account := &Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Type:         accountType,
		Level:        1,
		Grade:        input.Grade,
		Class:        input.Class,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating account: %w", err))
	}

	slog.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("type", account.Type),
	)

	return account, nil
}

// Login authenticates an account by email and password. On success it
// issues a new session and returns the encrypted token plus the account.
func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" || input.LoginType == "" {
		return nil, apperror.New(apperror.CodeMissingRequiredFields)
	}
	loginType, ok := session.ParseLoginType(input.LoginType)
	if !ok {
		return nil, apperror.New(apperror.CodeInvalidLoginType)
	}

	account, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		// Don't reveal whether the email exists -- same code as a wrong
		// password.
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeAccountNotFound {
			return nil, apperror.New(apperror.CodeInvalidPassword)
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding account: %w", err))
	}

	// A hashing infrastructure failure is an internal fault, never reported
	// as a wrong password.
	match, err := s.hasher.Verify(input.Password, account.PasswordHash)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !match {
		return nil, apperror.New(apperror.CodeInvalidPassword)
	}

	browser, osName := parseUserAgent(input.UserAgent)
	token, err := s.sessions.Issue(ctx, session.IssueInput{
		UserID:    account.ID,
		Email:     account.Email,
		ClientIP:  input.ClientIP,
		LoginType: loginType,
		Browser:   browser,
		OS:        osName,
	})
	if err != nil {
		return nil, err
	}

	// Update the last login timestamp (fire-and-forget, non-critical).
	if err := s.repo.UpdateLastLogin(ctx, account.ID); err != nil {
		slog.Warn("failed to update last login",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
	}

	slog.Info("account logged in",
		slog.String("account_id", account.ID),
		slog.String("login_type", string(loginType)),
	)

	return &LoginResult{Token: token, Account: account}, nil
}

// Logout revokes the session named by the presented token.
func (s *authService) Logout(ctx context.Context, token, loginType, clientIP string) error {
	return s.sessions.Logout(ctx, token, loginType, clientIP)
}

// Me returns the authenticated account.
func (s *authService) Me(ctx context.Context, accountID string) (*Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

// Sessions lists the account's active session summaries.
func (s *authService) Sessions(ctx context.Context, accountID string) ([]session.Summary, error) {
	return s.sessions.List(ctx, accountID)
}

// RevokeSession revokes one of the account's sessions by its identifier,
// as shown in the Sessions listing.
func (s *authService) RevokeSession(ctx context.Context, accountID, sessionID string) error {
	return s.sessions.Revoke(ctx, accountID, sessionID)
}

// RequestPasswordReset generates a single-use reset token, stores its
// SHA-256 hash, and emails the reset link. Unknown emails succeed silently
// so the endpoint can't be used to enumerate accounts.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeAccountNotFound {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return apperror.NewInternal(fmt.Errorf("finding account: %w", err))
	}

	if !s.mail.IsConfigured() {
		slog.Warn("password reset requested but mail is not configured",
			slog.String("account_id", account.ID),
		)
		return nil
	}

	token := make([]byte, resetTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return apperror.NewInternal(fmt.Errorf("generating reset token: %w", err))
	}
	plain := hex.EncodeToString(token)

	expiresAt := time.Now().UTC().Add(s.resetTTL)
	if err := s.repo.CreateResetToken(ctx, account.ID, account.Email, hashResetToken(plain), expiresAt); err != nil {
		return apperror.NewInternal(err)
	}

	link := s.baseURL + "/reset-password?token=" + plain
	body := "A password reset was requested for your account.\r\n\r\n" +
		"Open the link below to choose a new password. The link expires in " +
		s.resetTTL.String() + ".\r\n\r\n" + link + "\r\n\r\n" +
		"If you did not request this, you can ignore this email."

	if err := s.mail.SendMail(ctx, []string{account.Email}, "Password reset", body); err != nil {
		return apperror.Wrap(apperror.CodeMailDeliveryFailed, err)
	}

	slog.Info("password reset email sent", slog.String("account_id", account.ID))
	return nil
}

// ResetPassword completes a reset: validates the token (unknown, expired,
// or already used all map to the same code), stores the new hash, marks the
// token used, and revokes every live session for the account.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}
	if len(newPassword) < 8 {
		return apperror.New(apperror.CodePasswordTooWeak)
	}

	tokenHash := hashResetToken(token)
	accountID, expiresAt, usedAt, err := s.repo.FindResetToken(ctx, tokenHash)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(err)
	}
	if usedAt != nil || time.Now().After(expiresAt) {
		return apperror.New(apperror.CodeInvalidResetToken)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if err := s.repo.UpdatePassword(ctx, accountID, hash); err != nil {
		return apperror.NewInternal(err)
	}
	if err := s.repo.MarkResetTokenUsed(ctx, tokenHash); err != nil {
		return apperror.NewInternal(err)
	}

	// Force re-authentication everywhere after a credential change.
	if err := s.sessions.RevokeAll(ctx, accountID); err != nil {
		return err
	}

	slog.Info("password reset completed", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount removes the account and revokes all of its sessions.
func (s *authService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.repo.Delete(ctx, accountID); err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(err)
	}
	if err := s.sessions.RevokeAll(ctx, accountID); err != nil {
		return err
	}

	slog.Info("account deleted", slog.String("account_id", accountID))
	return nil
}

// hashResetToken returns the hex SHA-256 of a plaintext reset token.
// Plaintext tokens are never stored.
func hashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// validEmail is a cheap shape check, not RFC validation: something@something
// with a dot in the domain.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.ContainsAny(email, " \t") || strings.Contains(domain, "@") {
		return false
	}
	return strings.Contains(domain, ".")
}
