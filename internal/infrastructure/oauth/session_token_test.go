package oauth

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tests := []struct {
		name    string
		claims  jwt.MapClaims
		wantID  int64
		wantErr bool
	}{
		{name: "numeric id", claims: jwt.MapClaims{"id": 42, "exp": exp.Unix()}, wantID: 42},
		{name: "string id", claims: jwt.MapClaims{"id": "17", "exp": exp.Unix()}, wantID: 17},
		{name: "no id", claims: jwt.MapClaims{"exp": exp.Unix()}, wantID: 0},
		{name: "missing exp", claims: jwt.MapClaims{"id": 42}, wantErr: true},
		{name: "non numeric id", claims: jwt.MapClaims{"id": "abc", "exp": exp.Unix()}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := DecodeClaims(signed(t, tt.claims))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedToken))
				assert.Equal(t, apperror.KindDecode, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, claims.UserID)
			assert.True(t, exp.Equal(claims.ExpiresAt))
		})
	}
}

func TestDecodeClaims_Garbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := DecodeClaims(raw)
		assert.ErrorIs(t, err, ErrMalformedToken, raw)
	}
}

func TestDecodeClaims_IgnoresSignature(t *testing.T) {
	raw := signed(t, jwt.MapClaims{"id": 5, "exp": time.Now().Add(time.Minute).Unix()})
	tampered := raw[:len(raw)-4] + "AAAA"

	claims, err := DecodeClaims(tampered)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
}

func TestBearerToken(t *testing.T) {
	valid := signed(t, jwt.MapClaims{"id": 1, "exp": time.Now().Add(time.Hour).Unix()})
	expired := signed(t, jwt.MapClaims{"id": 1, "exp": time.Now().Add(-time.Hour).Unix()})

	assert.True(t, BearerToken(valid).Valid())
	assert.False(t, BearerToken(expired).Valid())
	assert.True(t, BearerToken("opaque").Valid())

	req, _ := http.NewRequest(http.MethodGet, "http://wayra.test/api/cart/1", nil)
	BearerToken(valid).SetAuthHeader(req)
	assert.Equal(t, "Bearer "+valid, req.Header.Get("Authorization"))

	tok, err := TokenSource(valid).Token()
	require.NoError(t, err)
	assert.Equal(t, valid, tok.AccessToken)
}
