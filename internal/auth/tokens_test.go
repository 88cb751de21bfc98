package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

func newTokens() *Tokens {
	return NewTokens(config.AuthConfig{
		JWTSecret:       "test-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
}

func TestIssuePair_ClaimsDecode(t *testing.T) {
	tokens := newTokens()
	user := &models.User{ID: uuid.New(), Role: models.RoleClient}

	pair, err := tokens.IssuePair(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.TokenType != "bearer" {
		t.Fatalf("token type = %q", pair.TokenType)
	}

	access, err := tokens.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if access.Subject != user.ID.String() || access.Role != models.RoleClient {
		t.Fatalf("access claims = %+v", access)
	}
	if got := access.ExpiresAt.Sub(access.IssuedAt.Time); got != 30*time.Minute {
		t.Fatalf("access lifetime = %v", got)
	}

	refresh, err := tokens.ParseRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refresh.Role != "" {
		t.Fatalf("refresh token must carry subject only, got role %q", refresh.Role)
	}
	if refresh.ID == "" {
		t.Fatalf("refresh token without jti")
	}
}

func TestParse_RejectsWrongType(t *testing.T) {
	tokens := newTokens()
	pair, _ := tokens.IssuePair(&models.User{ID: uuid.New(), Role: models.RoleClient})

	if _, err := tokens.ParseAccess(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh accepted as access: %v", err)
	}
	if _, err := tokens.ParseRefresh(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access accepted as refresh: %v", err)
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	tokens := newTokens()
	issued := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issued }
	pair, _ := tokens.IssuePair(&models.User{ID: uuid.New(), Role: models.RoleClient})

	tokens.now = time.Now
	if _, err := tokens.ParseAccess(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestParse_RejectsMissingSubjectAndForeignKey(t *testing.T) {
	tokens := newTokens()

	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	if _, err := tokens.ParseAccess(noSub); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token without subject accepted")
	}

	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("other-secret"))
	if _, err := tokens.ParseAccess(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another key accepted")
	}

	if _, err := tokens.ParseAccess("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("malformed token accepted")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secreto123" {
		t.Fatalf("password stored in clear")
	}
	if !CheckPassword(hash, "secreto123") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "otro") {
		t.Fatalf("wrong password accepted")
	}
}
