package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "notes-task-server"
	testSignKey = "sign-key"
)

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

// ── GenerateJWTToken ──

func TestGenerateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 123, time.Hour, testSignKey)

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(123), token.UserID)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, "123", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"negative duration", "iss", -time.Second, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

// ── ValidateAndParseJWTToken ──

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	// Arrange
	generated, err := GenerateJWTToken(testIssuer, 456, 5*time.Minute, testSignKey)
	require.NoError(t, err)

	// Act
	parsed, err := ValidateAndParseJWTToken(generated.SignedString, testSignKey, testIssuer)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(456), parsed.UserID)
	assert.Equal(t, generated.SignedString, parsed.String())
}

func TestValidateAndParseJWTToken_Rejected(t *testing.T) {
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	wrongIssuer := valid
	wrongIssuer.Issuer = "somebody-else"

	emptySubject := valid
	emptySubject.Subject = ""

	textSubject := valid
	textSubject.Subject = "alice"

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not.a.token"},
		{"wrong key", signClaims(t, jwt.SigningMethodHS256, []byte("other-key"), valid)},
		{"expired", signClaims(t, jwt.SigningMethodHS256, []byte(testSignKey), expired)},
		{"no expiry", signClaims(t, jwt.SigningMethodHS256, []byte(testSignKey), noExpiry)},
		{"wrong issuer", signClaims(t, jwt.SigningMethodHS256, []byte(testSignKey), wrongIssuer)},
		{"other hmac method", signClaims(t, jwt.SigningMethodHS512, []byte(testSignKey), valid)},
		{"empty subject", signClaims(t, jwt.SigningMethodHS256, []byte(testSignKey), emptySubject)},
		{"subject is not a number", signClaims(t, jwt.SigningMethodHS256, []byte(testSignKey), textSubject)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, testSignKey, testIssuer)
			assert.Error(t, err)
		})
	}
}

// ── ParseBearerToken ──

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lower case scheme", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "no token", header: "Bearer ", wantErr: true},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "token only", header: "abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedBearer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
