package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	"github.com/google/uuid"
)

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "smart-society",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()
	siteID := uuid.New()
	flat := "B-304"

	payload := SessionTokenPayload{
		UserID:     userID,
		Email:      "resident@society.com",
		Name:       "Resident User",
		Role:       enums.RoleResident,
		SiteID:     &siteID,
		FlatNumber: &flat,
	}

	token, err := MintSessionToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "resident@society.com" {
		t.Fatalf("unexpected email %s", claims.Email)
	}
	if claims.Role != enums.RoleResident {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.SiteID == nil || *claims.SiteID != siteID {
		t.Fatalf("site id not preserved")
	}
	if claims.FlatNumber == nil || *claims.FlatNumber != flat {
		t.Fatalf("flat number mismatch")
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseSessionTokenRepeatable(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "smart-society",
		ExpirationMinutes: 30,
	}
	payload := SessionTokenPayload{
		UserID: uuid.New(),
		Email:  "admin@society.com",
		Role:   enums.RoleAdmin,
	}

	token, err := MintSessionToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	first, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if first.UserID != second.UserID || first.Role != second.Role || first.ID != second.ID {
		t.Fatal("expected identical claims on repeated parse")
	}
}

func TestParseSessionTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "smart-society",
		ExpirationMinutes: 10,
	}
	payload := SessionTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleSecurity,
	}

	token, err := MintSessionToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	if _, err := ParseSessionToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "smart-society",
		ExpirationMinutes: 15,
	}
	now := time.Now().Add(-time.Hour)
	payload := SessionTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleReceptionist,
	}

	token, err := MintSessionToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	_, err = ParseSessionToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseSessionTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("allow-expired parse: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("expected user_id %s, got %s", payload.UserID, claims.UserID)
	}
}

func TestMintSessionTokenInvalidRole(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "smart-society",
		ExpirationMinutes: 5,
	}
	payload := SessionTokenPayload{
		UserID: uuid.New(),
		Role:   "",
	}

	if _, err := MintSessionToken(cfg, time.Now(), payload); err == nil {
		t.Fatal("expected invalid role error")
	}
}
