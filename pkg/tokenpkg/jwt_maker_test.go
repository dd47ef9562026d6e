package tokenpkg

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/randompkg"
)

func TestNewJWTMaker(t *testing.T) {
	t.Parallel()

	// OK
	secretKey := strings.Repeat("x", 32)

	_, err := NewJWTMaker(secretKey)
	if err != nil {
		t.Errorf("NewJWTMaker(%v) returned error: %v", secretKey, err)
	}

	// shortKeyError
	shortKey := strings.Repeat("x", 30)

	got, err := NewJWTMaker(shortKey)
	if err == nil || err.Error() != fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize).Error() {
		t.Errorf("NewJWTMaker(%v) returned unexpected error: %v", shortKey, err)
	}

	if got != nil {
		t.Errorf("JWTMaker = %+v, want nil", got)
	}
}

func TestJWTMaker(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewJWTMaker(secretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker(%v) returned error: %v", secretKey, err)
	}

	username := randompkg.Owner()
	roles := []string{"CARD-OWNER"}
	duration := time.Minute

	token, payload, err := maker.CreateToken(username, roles, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, %v, %v) returned error: %v", username, roles, duration, err)
	}

	verified, err := maker.VerifyToken(token)
	if err != nil {
		t.Errorf("maker.VerifyToken(%v) returned error: %v", token, err)
	}

	want := &Payload{
		Username:  username,
		Roles:     roles,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	ignore := cmpopts.IgnoreFields(Payload{}, "ID")
	delta := cmpopts.EquateApproxTime(time.Minute)

	if diff := cmp.Diff(payload, want, ignore, delta); diff != "" {
		t.Errorf("maker.CreateToken(%v, %v, %v) returned unexpected diff: %v", username, roles, duration, diff)
	}

	if diff := cmp.Diff(verified, payload, delta); diff != "" {
		t.Errorf("maker.VerifyToken(%v) returned unexpected diff: %v", token, diff)
	}
}

func TestExpiredJWTToken(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewJWTMaker(secretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker(%v) returned error: %v", secretKey, err)
	}

	username := randompkg.Owner()
	duration := -time.Minute

	token, _, err := maker.CreateToken(username, nil, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, nil, %v) returned error: %v", username, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != ErrExpiredToken {
		t.Errorf("maker.VerifyToken(%v) returned unexpected error: %v", token, err)
	}
}

func TestInvalidJWTTokenAlgNone(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()
	duration := time.Minute

	payload, err := NewPayload(username, nil, duration)
	if err != nil {
		t.Errorf("NewPayload(%v, nil, %v) returned error: %v", username, duration, err)
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodNone, payload)

	token, err := jwtToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Errorf("jwtToken.SignedString(%v) returned error: %v", jwt.UnsafeAllowNoneSignatureType, err)
	}

	secretKey := randompkg.String(32)

	maker, err := NewJWTMaker(secretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker(%v) returned error: %v", secretKey, err)
	}

	_, err = maker.VerifyToken(token)
	if err != ErrInvalidToken {
		t.Errorf("maker.VerifyToken(%v) returned error: %v", token, err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	key := randompkg.String(32)

	testCases := []struct {
		name      string
		tokenType string
		wantErr   bool
	}{
		{name: "Default", tokenType: ""},
		{name: "Paseto", tokenType: TypePaseto},
		{name: "JWT", tokenType: TypeJWT},
		{name: "Unsupported", tokenType: "saml", wantErr: true},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			maker, err := New(tc.tokenType, key)
			if tc.wantErr {
				if err == nil {
					t.Errorf("New(%q, key) returned nil error", tc.tokenType)
				}

				return
			}

			if err != nil {
				t.Fatalf("New(%q, key) returned error: %v", tc.tokenType, err)
			}

			token, _, err := maker.CreateToken("lemuk", nil, time.Minute)
			if err != nil {
				t.Fatalf("maker.CreateToken returned error: %v", err)
			}

			if _, err := maker.VerifyToken(token); err != nil {
				t.Errorf("maker.VerifyToken(%v) returned error: %v", token, err)
			}
		})
	}
}
