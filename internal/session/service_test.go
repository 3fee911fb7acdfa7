package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/config"
)

const (
	testIP      = "::ffff:203.0.113.7"
	testOtherIP = "2001:db8:1:2:3:4:5:6"
)

// newTestService wires a Service over miniredis with fast, deterministic
// policy: short WEB TTL, longer APP TTL, 4-group IP truncation.
func newTestService(t *testing.T) *Service {
	t.Helper()
	store, _ := newTestStore(t)
	codec := newTestCodec(t)
	return NewService(store, codec, config.SessionConfig{
		SecretKey:      "test-secret",
		WebTTL:         6 * time.Hour,
		AppTTL:         720 * time.Hour,
		IPPrefixGroups: 4,
	})
}

func issueWeb(t *testing.T, svc *Service, userID string) string {
	t.Helper()
	token, err := svc.Issue(context.Background(), IssueInput{
		UserID:    userID,
		Email:     userID + "@x.com",
		ClientIP:  testIP,
		LoginType: LoginTypeWeb,
		Browser:   "Firefox",
		OS:        "Linux",
	})
	require.NoError(t, err)
	return token
}

func codeOf(t *testing.T, err error) apperror.Code {
	t.Helper()
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr), "expected apperror, got %v", err)
	return appErr.Code
}

func TestIssueThenVerify(t *testing.T) {
	svc := newTestService(t)
	token := issueWeb(t, svc, "user-1")

	userID, err := svc.Verify(context.Background(), token, "WEB", testIP)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// Verify is side-effect-free; calling it again yields the same answer.
	userID, err = svc.Verify(context.Background(), token, "WEB", testIP)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerify_MissingInputs(t *testing.T) {
	svc := newTestService(t)
	token := issueWeb(t, svc, "user-1")

	_, err := svc.Verify(context.Background(), "", "WEB", testIP)
	assert.Equal(t, apperror.CodeMissingRequiredFields, codeOf(t, err))

	_, err = svc.Verify(context.Background(), token, "", testIP)
	assert.Equal(t, apperror.CodeMissingRequiredFields, codeOf(t, err))

	_, err = svc.Verify(context.Background(), token, "DESKTOP", testIP)
	assert.Equal(t, apperror.CodeInvalidLoginType, codeOf(t, err))
}

// Altering the final character of a token must surface as session-not-found,
// never as a different user.
func TestVerify_TamperedToken(t *testing.T) {
	svc := newTestService(t)
	token := issueWeb(t, svc, "user-1")

	flipped := byte('A')
	if token[len(token)-1] == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err := svc.Verify(context.Background(), tampered, "WEB", testIP)
	assert.Equal(t, apperror.CodeSessionNotFound, codeOf(t, err))
}

func TestVerify_IPMismatch(t *testing.T) {
	svc := newTestService(t)

	for _, lt := range []LoginType{LoginTypeWeb, LoginTypeApp} {
		token, err := svc.Issue(context.Background(), IssueInput{
			UserID: "user-1", Email: "a@x.com", ClientIP: testIP, LoginType: lt,
		})
		require.NoError(t, err)

		_, err = svc.Verify(context.Background(), token, string(lt), testOtherIP)
		assert.Equal(t, apperror.CodeSessionIPMismatch, codeOf(t, err),
			"login type %s must still enforce IP binding", lt)
	}
}

// Rotation within the kept prefix is tolerated: only the first N groups are
// bound.
func TestVerify_SamePrefixDifferentSuffix(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.Issue(context.Background(), IssueInput{
		UserID: "user-1", Email: "a@x.com", ClientIP: "2001:db8:1:2:aaaa:bbbb:cccc:dddd", LoginType: LoginTypeWeb,
	})
	require.NoError(t, err)

	userID, err := svc.Verify(context.Background(), token, "WEB", "2001:db8:1:2:9999:8888:7777:6666")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerify_ExpiredRecord(t *testing.T) {
	svc := newTestService(t)
	token := issueWeb(t, svc, "user-1")

	// Move the service clock past the WEB TTL. The record still exists in
	// the store (miniredis time stands still) -- the logical check must
	// reject it anyway.
	svc.now = func() time.Time { return time.Now().Add(7 * time.Hour) }

	_, err := svc.Verify(context.Background(), token, "WEB", testIP)
	assert.Equal(t, apperror.CodeSessionExpired, codeOf(t, err))
}

func TestVerify_MalformedRecord(t *testing.T) {
	store, mr := newTestStore(t)
	codec := newTestCodec(t)
	svc := NewService(store, codec, config.SessionConfig{
		WebTTL: 6 * time.Hour, AppTTL: 720 * time.Hour, IPPrefixGroups: 4,
	})

	// A record missing userId decodes fine but must be rejected.
	require.NoError(t, mr.Set(recordKeyPrefix+"raw-1",
		`{"email":"a@x.com","issuedAt":"2026-01-01T00:00:00Z","expiresAt":"2999-01-01T00:00:00Z","ip":"`+
			TruncateIP(testIP, 4)+`","loginType":"WEB"}`))

	token, err := codec.Encrypt("raw-1")
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token, "WEB", testIP)
	assert.Equal(t, apperror.CodeMalformedSessionData, codeOf(t, err))
}

// APP sessions must strictly outlive WEB sessions, all other inputs equal.
func TestIssue_AppOutlivesWeb(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Issue(ctx, IssueInput{UserID: "u", Email: "a@x.com", ClientIP: testIP, LoginType: LoginTypeWeb})
	require.NoError(t, err)
	_, err = svc.Issue(ctx, IssueInput{UserID: "u", Email: "a@x.com", ClientIP: testIP, LoginType: LoginTypeApp})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 2)

	var web, app Summary
	for _, s := range list {
		if s.LoginType == LoginTypeWeb {
			web = s
		} else {
			app = s
		}
	}
	assert.True(t, app.ExpiresAt.After(web.ExpiresAt),
		"APP session lifetime must be strictly greater than WEB")
	assert.Greater(t, svc.TTL(LoginTypeApp), svc.TTL(LoginTypeWeb))
}

func TestRevoke_ThenVerifyFails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	token := issueWeb(t, svc, "user-1")

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Revoke(ctx, "user-1", list[0].SessionID))

	_, err = svc.Verify(ctx, token, "WEB", testIP)
	assert.Equal(t, apperror.CodeSessionNotFound, codeOf(t, err))

	// The summary list is gone too (deleted when it empties).
	list, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	// Idempotent: revoking again is not an error.
	require.NoError(t, svc.Revoke(ctx, "user-1", "already-gone"))
}

// A session id presented under the wrong user must not revoke anything:
// the record stays live and its owner's summary list is untouched.
func TestRevoke_OtherUsersSessionUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token := issueWeb(t, svc, "victim")
	list, err := svc.List(ctx, "victim")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Revoke(ctx, "attacker", list[0].SessionID))

	userID, err := svc.Verify(ctx, token, "WEB", testIP)
	require.NoError(t, err)
	assert.Equal(t, "victim", userID)

	list, err = svc.List(ctx, "victim")
	require.NoError(t, err)
	assert.Len(t, list, 1, "owner's summary list must keep the entry")
}

func TestIssue_SummaryListAppendsAndPrunes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	issueWeb(t, svc, "user-1")
	issueWeb(t, svc, "user-1")

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 2, "two sequential logins keep exactly two entries")
	for _, entry := range list {
		assert.False(t, entry.ExpiresAt.Before(time.Now()),
			"no entry may be expired at write time")
		assert.Equal(t, "Firefox", entry.Browser)
		assert.Equal(t, TruncateIP(testIP, 4), entry.IP)
	}

	// Age the first two sessions past expiry; the next issue must prune them.
	svc.now = func() time.Time { return time.Now().Add(7 * time.Hour) }
	issueWeb(t, svc, "user-1")

	list, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1, "expired entries are pruned on append")
}

func TestLogout_RevokesPresentedSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	keep := issueWeb(t, svc, "user-1")
	drop := issueWeb(t, svc, "user-1")

	require.NoError(t, svc.Logout(ctx, drop, "WEB", testIP))

	_, err := svc.Verify(ctx, drop, "WEB", testIP)
	assert.Equal(t, apperror.CodeSessionNotFound, codeOf(t, err))

	userID, err := svc.Verify(ctx, keep, "WEB", testIP)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRevokeAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := issueWeb(t, svc, "user-1")
	second := issueWeb(t, svc, "user-1")

	require.NoError(t, svc.RevokeAll(ctx, "user-1"))

	for _, token := range []string{first, second} {
		_, err := svc.Verify(ctx, token, "WEB", testIP)
		assert.Equal(t, apperror.CodeSessionNotFound, codeOf(t, err))
	}

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTruncateIP(t *testing.T) {
	cases := []struct {
		in     string
		groups int
		want   string
	}{
		{"2001:db8:1:2:3:4:5:6", 4, "2001:db8:1:2"},
		{"2001:db8:1:2", 4, "2001:db8:1:2"},
		{"::ffff:203.0.113.7", 4, "::ffff:203.0.113.7"},
		{"203.0.113.7", 4, "203.0.113.7"},
		{"2001:db8:1:2:3:4:5:6", 2, "2001:db8"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TruncateIP(tc.in, tc.groups), "TruncateIP(%q, %d)", tc.in, tc.groups)
	}
}
