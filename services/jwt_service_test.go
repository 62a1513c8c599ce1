package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(now time.Time) *JWTService {
	return &JWTService{
		secretKey: []byte("test-secret"),
		expiry:    time.Hour,
		now:       func() time.Time { return now },
	}
}

func TestSessionJWTRoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Now())
	id := uuid.New()

	token, err := svc.GenerateSessionJWT(id, "rina@example.com", "Rina")
	require.NoError(t, err)

	claims, err := svc.VerifySessionJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "rina@example.com", claims.Email)
	assert.Equal(t, "Rina", claims.Name)
	assert.Equal(t, sessionIssuer, claims.Issuer)
}

func TestSessionJWTRejectsBadTokens(t *testing.T) {
	issuedAt := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(issuedAt)
	token, err := svc.GenerateSessionJWT(uuid.New(), "rina@example.com", "Rina")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTestJWTService(issuedAt.Add(2 * time.Hour))
		_, err := later.VerifySessionJWT(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("other secret", func(t *testing.T) {
		other := newTestJWTService(issuedAt)
		other.secretKey = []byte("someone-else")
		_, err := other.VerifySessionJWT(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("other issuer", func(t *testing.T) {
		claims := SessionClaims{
			UserID: uuid.NewString(),
			Email:  "rina@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "elsewhere",
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secretKey)
		require.NoError(t, err)
		_, err = svc.VerifySessionJWT(forged)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("missing user id", func(t *testing.T) {
		claims := SessionClaims{
			Email: "rina@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    sessionIssuer,
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secretKey)
		require.NoError(t, err)
		_, err = svc.VerifySessionJWT(forged)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifySessionJWT("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestGenerateSessionJWTNeedsIdentity(t *testing.T) {
	svc := newTestJWTService(time.Now())
	_, err := svc.GenerateSessionJWT(uuid.Nil, "rina@example.com", "Rina")
	assert.Error(t, err)
	_, err = svc.GenerateSessionJWT(uuid.New(), "", "Rina")
	assert.Error(t, err)
}

func TestInitJWTServiceExpiry(t *testing.T) {
	prev := jwtService
	t.Cleanup(func() { jwtService = prev })

	assert.Error(t, InitJWTService("", time.Hour))

	t.Setenv("JWT_EXPIRY", "90m")
	require.NoError(t, InitJWTService("secret", 0))
	assert.Equal(t, 90*time.Minute, GetJWTService().Expiry())

	t.Setenv("JWT_EXPIRY", "soon")
	require.NoError(t, InitJWTService("secret", 0))
	assert.Equal(t, defaultSessionExpiry, GetJWTService().Expiry())

	require.NoError(t, InitJWTService("secret", 5*time.Minute))
	assert.Equal(t, 5*time.Minute, GetJWTService().Expiry())
}
