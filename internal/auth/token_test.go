package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/salon-service/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	tm := NewTokenManager("secret", 5*time.Minute, time.Hour)
	user := &domain.User{ID: "u-1", Role: domain.RoleStaff}

	pair, err := tm.Issue(user)
	require.NoError(t, err)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := tm.Parse(pair.Access, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u-1", access.UserID())
	assert.Equal(t, domain.RoleStaff, access.Role)

	refresh, err := tm.Parse(pair.Refresh, domain.TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestParseRejectsWrongType(t *testing.T) {
	tm := NewTokenManager("secret", 0, 0)
	pair, err := tm.Issue(&domain.User{ID: "u-1", Role: domain.RoleCustomer})
	require.NoError(t, err)

	_, err = tm.Parse(pair.Refresh, domain.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = tm.Parse(pair.Access, domain.TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)
	pair, err := tm.Issue(&domain.User{ID: "u-1", Role: domain.RoleCustomer})
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.Parse(pair.Access, domain.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("other-secret", time.Minute, time.Hour)
	_, err = other.Parse(pair.Refresh, domain.TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("not-a-token", domain.TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
