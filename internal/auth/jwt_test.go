package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", claims.Email)
	}
}

func TestJWTManager_Validate_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Hour)

	token, err := m.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	_, err = m.Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_Validate_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(wrong secret) error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_Validate_Malformed(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(malformed) error = %v, want ErrInvalidToken", err)
	}
}

func TestResolver_Resolve(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	r := NewResolver(m)
	ctx := context.Background()

	validToken, err := m.Generate(7, "seven@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	expiredToken, err := NewJWTManager("test-secret", -time.Hour).Generate(7, "seven@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int64
	}{
		{name: "no header resolves to demo user", header: "", want: DemoUserID},
		{name: "demo token sentinel", header: "Bearer demo-token", want: DemoUserID},
		{name: "valid token resolves to claim", header: "Bearer " + validToken, want: 7},
		// Invalid credentials fall back silently; this is current behavior,
		// not an endorsement.
		{name: "expired token falls back to demo user", header: "Bearer " + expiredToken, want: DemoUserID},
		{name: "garbage token falls back to demo user", header: "Bearer garbage", want: DemoUserID},
		{name: "missing bearer prefix still parsed", header: validToken, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(ctx, tt.header); got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.header, got, tt.want)
			}
		})
	}
}

func TestUserIDContext(t *testing.T) {
	ctx := context.Background()
	if got := UserID(ctx); got != DemoUserID {
		t.Errorf("UserID(empty ctx) = %d, want demo id %d", got, DemoUserID)
	}

	ctx = WithUserID(ctx, 99)
	if got := UserID(ctx); got != 99 {
		t.Errorf("UserID = %d, want 99", got)
	}
}
