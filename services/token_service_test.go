package services

import (
	"errors"
	"testing"
	"time"

	"urbancard/models"

	"github.com/golang-jwt/jwt/v5"
)

func testUser() *models.User {
	return &models.User{
		ID:    7,
		Name:  "Maria Silva",
		Email: "maria@example.com",
		Role:  models.RoleUser,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret", 2)

	tokenString, err := ts.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	claims, err := ts.Validate(tokenString)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if claims.Email != "maria@example.com" {
		t.Errorf("claims.Email = %s, want maria@example.com", claims.Email)
	}
	if claims.Subject != "maria@example.com" {
		t.Errorf("claims.Subject = %s, want maria@example.com", claims.Subject)
	}
	if claims.UserID != 7 {
		t.Errorf("claims.UserID = %d, want 7", claims.UserID)
	}
	if claims.Name != "Maria Silva" {
		t.Errorf("claims.Name = %s, want Maria Silva", claims.Name)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("claims.Role = %s, want USER", claims.Role)
	}
}

func TestTokenExpired(t *testing.T) {
	ts := NewTokenService("test-secret", 2)

	// Выпускаем токен "в прошлом", чтобы срок действия уже истек
	ts.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	tokenString, err := ts.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// Проверяем настоящим временем
	ts.now = time.Now
	if _, err := ts.Validate(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(expired) = %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", 2)
	verifier := NewTokenService("secret-two", 2)

	tokenString, err := issuer.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if _, err := verifier.Validate(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(wrong secret) = %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongIssuer(t *testing.T) {
	ts := NewTokenService("test-secret", 2)

	// Токен с верной подписью, но чужим издателем
	claims := &TokenClaims{
		UserID: 7,
		Email:  "maria@example.com",
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "some-other-service",
			Subject:   "maria@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString returned error: %v", err)
	}

	if _, err := ts.Validate(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(wrong issuer) = %v, want ErrInvalidToken", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	ts := NewTokenService("test-secret", 2)

	if _, err := ts.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(malformed) = %v, want ErrInvalidToken", err)
	}
}

func TestTokensDifferPerIdentity(t *testing.T) {
	ts := NewTokenService("test-secret", 2)

	first, err := ts.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	other := &models.User{ID: 8, Name: "Joao Souza", Email: "joao@example.com", Role: models.RoleAdmin}
	second, err := ts.Generate(other)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if first == second {
		t.Errorf("tokens for different identities must differ")
	}
}
