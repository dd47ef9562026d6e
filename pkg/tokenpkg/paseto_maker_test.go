package tokenpkg

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/randompkg"
)

func TestPasetoMaker(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	username := randompkg.Owner()
	roles := []string{"CARD-OWNER", "ADMIN"}
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

func TestNewPasetoMakerKeySize(t *testing.T) {
	t.Parallel()

	got, err := NewPasetoMaker(randompkg.String(31))
	if err == nil {
		t.Errorf("NewPasetoMaker with a 31 characters key returned nil error")
	}

	if got != nil {
		t.Errorf("PasetoMaker = %+v, want nil", got)
	}
}

func TestExpiredPasetoToken(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
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

func TestForeignKeyPasetoToken(t *testing.T) {
	t.Parallel()

	issuer, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker returned error: %v", err)
	}

	verifier, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker returned error: %v", err)
	}

	token, _, err := issuer.CreateToken(randompkg.Owner(), nil, time.Minute)
	if err != nil {
		t.Fatalf("issuer.CreateToken returned error: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("verifier.VerifyToken(%v) returned error %v, want %v", token, err, ErrInvalidToken)
	}
}
