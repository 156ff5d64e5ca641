package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultStateTTL is how long a user has to finish consenting with the provider.
const DefaultStateTTL = 10 * time.Minute

const stateIssuer = "poorify"

// A StateSigner issues and verifies OAuth state values.
type StateSigner struct {
	key    []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewStateSigner constructs a *StateSigner signing with key.
// A non-positive ttl uses DefaultStateTTL.
func NewStateSigner(key string, ttl time.Duration) (*StateSigner, error) {
	if key == "" {
		return nil, fmt.Errorf(`%w: key cannot be ""`, ErrNotValid)
	}

	if ttl <= 0 {
		ttl = DefaultStateTTL
	}

	return &StateSigner{
		key:    []byte(key),
		ttl:    ttl,
		now:    time.Now,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}, nil
}

// Issue returns a signed state token and the nonce embedded in it.
func (s *StateSigner) Issue() (token, nonce string, err error) {
	nonce = uuid.NewString()
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        nonce,
		Issuer:    stateIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", "", fmt.Errorf("%w: signing state: %s", ErrUnexpected, err)
	}

	return token, nonce, nil
}

// Verify checks token was issued by s, has not expired, and embeds nonce.
// Any mismatch returns ErrNotValid.
func (s *StateSigner) Verify(token, nonce string) error {
	if token == "" || nonce == "" {
		return fmt.Errorf("%w: missing state", ErrNotValid)
	}

	claims := new(jwt.RegisteredClaims)
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	if claims.Issuer != stateIssuer || claims.ID != nonce {
		return fmt.Errorf("%w: state does not match session", ErrNotValid)
	}

	return nil
}
