package oauth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
)

// ErrMalformedToken is returned when a session token cannot be read
var ErrMalformedToken = errors.New("malformed session token")

// DecodeClaims reads the id and exp claims of a session token without checking
// its signature. The backend stays the authority on whether the token is good.
func DecodeClaims(raw string) (entity.SessionClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return entity.SessionClaims{}, apperror.Decode("session.decode", fmt.Errorf("%w: %v", ErrMalformedToken, err))
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return entity.SessionClaims{}, apperror.Decode("session.decode", fmt.Errorf("%w: missing exp claim", ErrMalformedToken))
	}

	userID, err := userIDClaim(claims["id"])
	if err != nil {
		return entity.SessionClaims{}, apperror.Decode("session.decode", fmt.Errorf("%w: %v", ErrMalformedToken, err))
	}

	return entity.SessionClaims{
		UserID:    userID,
		ExpiresAt: exp.Time,
	}, nil
}

func userIDClaim(value interface{}) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("id claim %q is not numeric", v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("unsupported id claim type %T", value)
	}
}

// BearerToken wraps a session token for use with oauth2 transports. The expiry
// comes from the token's own claims so expired sessions are caught locally;
// an unreadable token gets no expiry and is left for the backend to judge.
func BearerToken(raw string) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
	}
	if claims, err := DecodeClaims(raw); err == nil {
		token.Expiry = claims.ExpiresAt
	}
	return token
}

// TokenSource returns a static oauth2 token source for a session token
func TokenSource(raw string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(BearerToken(raw))
}
