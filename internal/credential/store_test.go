package credential

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	require.NoError(t, s.Save("T1", &exp))

	c, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "T1", c.Token)
	assert.Equal(t, "file", c.Source)
	require.NotNil(t, c.ExpiresAt)
	assert.True(t, exp.Equal(*c.ExpiresAt))
}

func TestStore_Load_Absent(t *testing.T) {
	s := NewStore(t.TempDir())

	c, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, c, "missing file means not logged in, not an error")
}

func TestStore_Clear_Idempotent(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.Save("T1", nil))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing an empty slot is fine")

	c, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStore_EnvOverride(t *testing.T) {
	s := NewStore(t.TempDir())
	t.Setenv(EnvToken, "Bearer ENV-TOKEN")

	c, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "ENV-TOKEN", c.Token, "bearer prefix is stripped")
	assert.Equal(t, "env", c.Source)
}

func TestStore_Save_StripsBearerPrefix(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.Save("Bearer abc123", nil))
	c, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "abc123", c.Token)
}

func TestStore_Save_EmptyToken(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.Error(t, s.Save("   ", nil))
}

func TestStore_Save_ExpiryFromJWT(t *testing.T) {
	exp := time.Now().Add(90 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	s := NewStore(t.TempDir())
	require.NoError(t, s.Save(signed, nil))

	c, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, c.ExpiresAt, "expiry recovered from the exp claim")
	assert.True(t, exp.Equal(*c.ExpiresAt))
}

func TestCredential_Expired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, (&Credential{Token: "t", ExpiresAt: &past}).Expired(now))
	assert.False(t, (&Credential{Token: "t", ExpiresAt: &future}).Expired(now))
	assert.False(t, (&Credential{Token: "t"}).Expired(now), "no expiry, never locally expired")
}
