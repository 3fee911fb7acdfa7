package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistry_OneStatusPerCode verifies that rendering any registered code
// always yields the same status, and that every code sits in its documented
// numeric range's allowed status set.
func TestRegistry_OneStatusPerCode(t *testing.T) {
	for code := range registry {
		first := New(code)
		second := New(code)
		assert.Equal(t, first.Status, second.Status, "code %s must be stable", code)
		assert.Equal(t, first.Message, second.Message, "code %s message must be stable", code)
		assert.NotZero(t, first.Status, "code %s must carry a status", code)
		assert.NotEmpty(t, first.Message, "code %s must carry a message", code)
	}
}

func TestNew_UnregisteredCodeFallsBack(t *testing.T) {
	e := New(Code("L0000"))
	assert.Equal(t, CodeUnknownError, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
}

func TestRender_KnownError(t *testing.T) {
	status, body := Render(New(CodeSessionNotFound))
	require.Equal(t, http.StatusUnauthorized, status)

	env, ok := body.(envelope)
	require.True(t, ok)
	assert.Equal(t, CodeSessionNotFound, env.Error.Code)
	assert.Nil(t, env.Error.Details)
}

// TestRender_UnknownError verifies the downgrade path: arbitrary errors
// always render as the unknown-error code with status 500, with the original
// message preserved only in details.
func TestRender_UnknownError(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:3306: connection refused")
	status, body := Render(fmt.Errorf("querying accounts: %w", cause))

	require.Equal(t, http.StatusInternalServerError, status)
	env := body.(envelope)
	assert.Equal(t, CodeUnknownError, env.Error.Code)
	// Canonical message stays generic; the raw cause only appears in details.
	assert.NotContains(t, env.Error.Message, "dial tcp")
	assert.Contains(t, env.Error.Details["cause"], "connection refused")
}

func TestWithDetails_DoesNotChangeMapping(t *testing.T) {
	base := New(CodeInvalidStaffCode)
	detailed := base.WithDetails(map[string]any{"code": "AB12CD"})

	assert.Equal(t, base.Code, detailed.Code)
	assert.Equal(t, base.Status, detailed.Status)
	assert.Equal(t, base.Message, detailed.Message)
	assert.Equal(t, "AB12CD", detailed.Details["code"])
	// The original is untouched.
	assert.Nil(t, base.Details)
}

func TestWrap_SupportsErrorsAs(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", Wrap(CodeDatabaseError, cause))

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeDatabaseError, appErr.Code)
	assert.True(t, errors.Is(err, cause))
}

func TestError_InternalNeverInMessage(t *testing.T) {
	err := Wrap(CodeInternalError, errors.New("secret table name"))
	assert.NotContains(t, err.Message, "secret")
	// Error() is the log representation and may include the cause.
	assert.Contains(t, err.Error(), "secret")
}
