package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

func testIssuer(now time.Time) TokenIssuer {
	return TokenIssuer{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Now:           func() time.Time { return now },
	}
}

func TestIssueClaims(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	ti := testIssuer(now)
	iid := uuid.New()
	u := userModel.UserModel{ID: uuid.New(), InstansiID: &iid, Name: "Bu Sari", Role: "teacher"}

	pair, err := ti.Issue(u)
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)
	assert.True(t, now.Add(7*24*time.Hour).Equal(pair.RefreshExpiresAt))

	tok, err := jwt.Parse(pair.AccessToken, func(*jwt.Token) (any, error) { return []byte("access-secret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["id"])
	assert.Equal(t, iid.String(), claims["instansi_id"])
	assert.Equal(t, "teacher", claims["role"])
	assert.Equal(t, "access", claims["typ"])
	assert.EqualValues(t, now.Unix(), claims["iat"])
	assert.EqualValues(t, now.Add(15*time.Minute).Unix(), claims["exp"])

	assert.True(t, now.Add(15*time.Minute).Equal(ti.AccessExpiry(pair.AccessToken)))
}

func TestOwnerHasNoInstansiClaim(t *testing.T) {
	claims := testIssuer(time.Now()).BuildAccessClaims(userModel.UserModel{ID: uuid.New(), Role: "owner"}, time.Now())
	_, ok := claims["instansi_id"]
	assert.False(t, ok)
}

func TestParseRefresh(t *testing.T) {
	ti := testIssuer(time.Now().UTC())
	u := userModel.UserModel{ID: uuid.New(), Role: "student"}
	pair, err := ti.Issue(u)
	require.NoError(t, err)

	id, err := ti.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	// access token bukan refresh token
	_, err = ti.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = ti.ParseRefresh("")
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	expired := testIssuer(time.Now().Add(-8 * 24 * time.Hour))
	old, err := expired.Issue(u)
	require.NoError(t, err)
	_, err = ti.ParseRefresh(old.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	assert.NotEqual(t, ti.RefreshHash(pair.RefreshToken), ti.RefreshHash(old.RefreshToken))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash(hash, "rahasia123"))
	assert.Error(t, CheckPasswordHash(hash, "salah123"))

	tests := []struct {
		in string
		ok bool
	}{
		{"rahasia123", true},
		{"pendek1", false},
		{"tanpaangka", false},
		{"12345678", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.ok, ValidatePassword(tt.in) == nil)
		})
	}
}
