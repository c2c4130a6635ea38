package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "USER", 15)
	if err != nil {
		t.Fatal(err)
	}
	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse failed: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "42" {
		t.Fatalf("sub = %v, want \"42\"", claims["sub"])
	}
	if claims["role"] != "USER" {
		t.Fatalf("role = %v, want USER", claims["role"])
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	rt, err := NewRefreshToken(30)
	if err != nil {
		t.Fatal(err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
		t.Fatal("hash not deterministic")
	}
	other, _ := NewRefreshToken(30)
	if rt.Raw == other.Raw {
		t.Fatal("two tokens collided")
	}
}
