package session

import (
	"errors"
	"testing"
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestManagerRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)
	want := domain.Session{UserID: "u-1", CompanyID: "c-1", Email: "a@b.it"}

	token, expiresAt, err := m.Issue(want)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManagerRejectsBadTokens(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)
	token, _, err := m.Issue(domain.Session{UserID: "u-1", CompanyID: "c-1"})
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = m.Parse("not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	expired := NewManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(domain.Session{UserID: "u-1", CompanyID: "c-1"})
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("segreta")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "segreta"))
	assert.Error(t, h.Compare(hash, "sbagliata"))
}
