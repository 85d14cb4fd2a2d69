package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/databases/dbtest"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func TestGoogleFallbackEmail(t *testing.T) {
	tests := []struct {
		name  string
		ident GoogleIdentity
		email string
		err   error
	}{
		{"verified", GoogleIdentity{Sub: "g1", Email: " Siswa@Sekolah.ID ", EmailVerified: true}, "siswa@sekolah.id", nil},
		{"unverified", GoogleIdentity{Sub: "g2", Email: "siswa@sekolah.id"}, "", ErrGoogleInvalid},
		{"no email", GoogleIdentity{Sub: "g3", EmailVerified: true}, "", ErrGoogleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := googleFallbackEmail(tt.ident)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, email)
		})
	}
}

func stubGoogle(ident GoogleIdentity) GoogleVerifyFunc {
	return func(string) (GoogleIdentity, error) { return ident, nil }
}

func seedUser(t *testing.T, s *AuthService, email string) *userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{Name: "Siswa", Email: email, Password: "x", Role: "student", IsActive: true}
	require.NoError(t, s.DB.Create(&u).Error)
	return &u
}

func TestLoginGoogleRequiresVerifiedEmail(t *testing.T) {
	db := dbtest.Open(t)
	s := &AuthService{DB: db, Tokens: testIssuer(time.Now().UTC())}
	ctx := context.Background()
	u := seedUser(t, s, "siswa@sekolah.id")

	s.VerifyGoogle = stubGoogle(GoogleIdentity{Sub: "google-sub-1", Email: "siswa@sekolah.id"})
	_, _, err := s.LoginGoogle(ctx, "token", ClientMeta{})
	assert.ErrorIs(t, err, ErrGoogleInvalid)

	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Nil(t, got.GoogleID, "email belum terverifikasi tidak boleh menautkan akun")

	s.VerifyGoogle = stubGoogle(GoogleIdentity{Sub: "google-sub-1", Email: "siswa@sekolah.id", EmailVerified: true})
	logged, pair, err := s.LoginGoogle(ctx, "token", ClientMeta{})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotEmpty(t, pair.AccessToken)

	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	require.NotNil(t, got.GoogleID)
	assert.Equal(t, "google-sub-1", *got.GoogleID)

	s.VerifyGoogle = stubGoogle(GoogleIdentity{Sub: "google-sub-2", Email: "lain@sekolah.id", EmailVerified: true})
	_, _, err = s.LoginGoogle(ctx, "token", ClientMeta{})
	assert.ErrorIs(t, err, ErrGoogleUnknown)
}

func TestRefreshRotatesOnce(t *testing.T) {
	db := dbtest.Open(t)
	s := &AuthService{DB: db, Tokens: testIssuer(time.Now().UTC())}
	ctx := context.Background()
	u := seedUser(t, s, "guru@sekolah.id")

	pair, err := s.issue(ctx, u, ClientMeta{})
	require.NoError(t, err)

	next, err := s.Refresh(ctx, pair.RefreshToken, ClientMeta{})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = s.Refresh(ctx, pair.RefreshToken, ClientMeta{})
	assert.Error(t, err)

	var active int64
	require.NoError(t, db.Model(&authModel.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", u.ID).Count(&active).Error)
	assert.EqualValues(t, 1, active)
}
