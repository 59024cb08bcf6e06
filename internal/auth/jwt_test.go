package auth

import (
	"testing"

	"outreach-backend/internal/config"
)

func testManager(secret string) *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpiryHours = 1
	return NewJWTManager(cfg)
}

func TestJWTRoundtrip(t *testing.T) {
	m := testManager("test-secret")

	token, err := m.Generate(7, "9876543210", "Regional Manager", "R1 Tirupati")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 7 || claims.Phone != "9876543210" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Role != "Regional Manager" || claims.Team != "R1 Tirupati" {
		t.Errorf("role/team = %q/%q", claims.Role, claims.Team)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := testManager("secret-a").Generate(7, "9876543210", "Admin", "NW3")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := testManager("secret-b").Verify(token); err == nil {
		t.Error("token signed with another secret verified")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	m := testManager("test-secret")
	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := m.Verify(tok); err == nil {
			t.Errorf("Verify(%q) accepted garbage", tok)
		}
	}
}
