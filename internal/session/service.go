package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/config"
)

// Service is the session core: issuance on successful authentication,
// request-time verification, and revocation. It holds no mutable state of
// its own -- the Store and the immutable config are the only collaborators,
// so concurrent requests never contend inside the process.
type Service struct {
	store *Store
	codec *TokenCodec
	cfg   config.SessionConfig

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewService creates the session service. The codec is constructed from the
// configured secret once at startup.
func NewService(store *Store, codec *TokenCodec, cfg config.SessionConfig) *Service {
	return &Service{
		store: store,
		codec: codec,
		cfg:   cfg,
		now:   time.Now,
	}
}

// IssueInput carries everything captured at login time that ends up on the
// session record or its summary entry.
type IssueInput struct {
	UserID    string
	Email     string
	ClientIP  string
	LoginType LoginType
	Browser   string
	OS        string
}

// TTL returns the configured lifetime for a login type. The two-tier split
// (short-lived WEB, month-order APP) is structural; the constants are policy.
func (s *Service) TTL(lt LoginType) time.Duration {
	if lt == LoginTypeApp {
		return s.cfg.AppTTL
	}
	return s.cfg.WebTTL
}

// Issue creates a new session for an authenticated user and returns the
// encrypted token the handler transmits to the client. The caller owns
// transport policy (cookie flags, headers).
//
// The record write and the summary-list update must both succeed for the
// login to be reported as successful; a failure in either surfaces as an
// internal error with nothing acknowledged to the caller.
func (s *Service) Issue(ctx context.Context, in IssueInput) (string, error) {
	rawID := uuid.NewString()
	now := s.now().UTC()
	ttl := s.TTL(in.LoginType)
	ip := TruncateIP(in.ClientIP, s.cfg.IPPrefixGroups)

	rec := &Record{
		UserID:    in.UserID,
		Email:     in.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IP:        ip,
		LoginType: in.LoginType,
	}

	if err := s.store.PutRecord(ctx, rawID, rec, ttl); err != nil {
		return "", apperror.NewInternal(err)
	}

	// Append to the user's summary list, pruning entries that have expired
	// by now. Read-modify-write without isolation: two concurrent logins can
	// lose one summary entry (the records themselves are unaffected). This
	// is an accepted consistency gap.
	list, err := s.store.GetSummaries(ctx, in.UserID)
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	list = pruneExpired(list, now)
	list = append(list, Summary{
		SessionID: rawID,
		IssuedAt:  now,
		ExpiresAt: rec.ExpiresAt,
		Browser:   in.Browser,
		OS:        in.OS,
		IP:        ip,
		LoginType: in.LoginType,
	})
	if err := s.store.PutSummaries(ctx, in.UserID, list); err != nil {
		return "", apperror.NewInternal(err)
	}

	token, err := s.codec.Encrypt(rawID)
	if err != nil {
		return "", apperror.NewInternal(err)
	}

	slog.Info("session issued",
		slog.String("user_id", in.UserID),
		slog.String("login_type", string(in.LoginType)),
		slog.String("ip_prefix", ip),
	)

	return token, nil
}

// Verify is the request-time gate. It validates the declared login type,
// decrypts the token, loads the record, and checks expiry and IP binding.
// On success it returns the owning user id. Idempotent and side-effect-free:
// it never mutates the store and may run several times per request.
func (s *Service) Verify(ctx context.Context, token, loginType, clientIP string) (string, error) {
	_, rec, err := s.resolve(ctx, token, loginType, clientIP)
	if err != nil {
		return "", err
	}
	return rec.UserID, nil
}

// resolve implements the shared verification pipeline and additionally
// returns the raw identifier for callers that mutate the session afterwards
// (logout).
func (s *Service) resolve(ctx context.Context, token, loginType, clientIP string) (string, *Record, error) {
	if token == "" || loginType == "" {
		return "", nil, apperror.New(apperror.CodeMissingRequiredFields)
	}
	if _, ok := ParseLoginType(loginType); !ok {
		return "", nil, apperror.New(apperror.CodeInvalidLoginType)
	}

	// Any decrypt failure is reported as session-not-found: clients must not
	// be able to distinguish a tampered token from a vanished session.
	rawID, err := s.codec.Decrypt(token)
	if err != nil {
		return "", nil, apperror.New(apperror.CodeSessionNotFound)
	}

	rec, err := s.store.GetRecord(ctx, rawID)
	if err != nil {
		return "", nil, apperror.NewInternal(err)
	}
	if rec == nil {
		return "", nil, apperror.New(apperror.CodeSessionNotFound)
	}

	// Defense in depth: the Redis TTL should have evicted this already, but
	// store-level expiry is advisory only.
	if rec.Expired(s.now().UTC()) {
		return "", nil, apperror.New(apperror.CodeSessionExpired)
	}

	// Sessions are bound to the network prefix they were issued from. A
	// session presented from elsewhere is rejected, not migrated -- this is
	// the anti-hijacking control, not an inconvenience bug.
	if rec.IP != TruncateIP(clientIP, s.cfg.IPPrefixGroups) {
		return "", nil, apperror.New(apperror.CodeSessionIPMismatch)
	}

	// Guard against partial or hand-damaged records.
	if rec.UserID == "" {
		return "", nil, apperror.New(apperror.CodeMalformedSessionData)
	}

	return rawID, rec, nil
}

// Logout verifies the presented token and revokes the session it names.
func (s *Service) Logout(ctx context.Context, token, loginType, clientIP string) error {
	rawID, rec, err := s.resolve(ctx, token, loginType, clientIP)
	if err != nil {
		return err
	}
	return s.Revoke(ctx, rec.UserID, rawID)
}

// Revoke deletes one session record and removes its entry from the user's
// summary list. The list key is deleted outright when the last entry goes.
// Revoking an already-gone session is not an error. A session owned by a
// different user is treated the same as an absent one: nothing is deleted
// and nothing is revealed about whether the id exists.
func (s *Service) Revoke(ctx context.Context, userID, sessionID string) error {
	rec, err := s.store.GetRecord(ctx, sessionID)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if rec != nil && rec.UserID != userID {
		return nil
	}

	if err := s.store.DeleteRecord(ctx, sessionID); err != nil {
		return apperror.NewInternal(err)
	}

	list, err := s.store.GetSummaries(ctx, userID)
	if err != nil {
		return apperror.NewInternal(err)
	}

	kept := list[:0]
	for _, entry := range list {
		if entry.SessionID != sessionID {
			kept = append(kept, entry)
		}
	}

	if len(kept) == 0 {
		if err := s.store.DeleteSummaries(ctx, userID); err != nil {
			return apperror.NewInternal(err)
		}
		return nil
	}
	if err := s.store.PutSummaries(ctx, userID, kept); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

// RevokeAll deletes every live session for a user plus the summary list.
// Used on account deletion and after a password reset.
func (s *Service) RevokeAll(ctx context.Context, userID string) error {
	list, err := s.store.GetSummaries(ctx, userID)
	if err != nil {
		return apperror.NewInternal(err)
	}
	for _, entry := range list {
		if err := s.store.DeleteRecord(ctx, entry.SessionID); err != nil {
			return apperror.NewInternal(err)
		}
	}
	if err := s.store.DeleteSummaries(ctx, userID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

// List returns the user's active session summaries with expired entries
// filtered out of the view. The stored list is not rewritten here -- List
// is read-only like Verify; pruning happens on the next Issue.
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	list, err := s.store.GetSummaries(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return pruneExpired(list, s.now().UTC()), nil
}

// pruneExpired drops entries whose ExpiresAt has passed.
func pruneExpired(list []Summary, now time.Time) []Summary {
	kept := list[:0]
	for _, entry := range list {
		if now.Before(entry.ExpiresAt) {
			kept = append(kept, entry)
		}
	}
	return kept
}
