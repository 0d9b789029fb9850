package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/communitykitchen/foodshare-backend/pkg/auth"
	"github.com/communitykitchen/foodshare-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60, CookieName: "token"}
}

func TestIssueTokenSetsCookie(t *testing.T) {
	cfg := testJWTConfig()
	handler := IssueToken(cfg, testLogger())

	body := strings.NewReader(`{"email":"Donor@Example.com","name":"Pat Donor"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", body)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == cfg.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected access cookie on response")
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("unexpected cookie attributes %+v", cookie)
	}

	claims, err := auth.ParseAccessToken(cfg, cookie.Value)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Email != "donor@example.com" {
		t.Fatalf("expected normalized email claim, got %q", claims.Email)
	}

	var envelope struct {
		Data struct {
			Token     string `json:"token"`
			ExpiresIn int    `json:"expires_in"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Token != cookie.Value {
		t.Fatal("body token must match the cookie value")
	}
	if envelope.Data.ExpiresIn != 3600 {
		t.Fatalf("expected 3600s lifetime, got %d", envelope.Data.ExpiresIn)
	}
}

func TestIssueTokenRejectsInvalidEmail(t *testing.T) {
	handler := IssueToken(testJWTConfig(), testLogger())

	body := strings.NewReader(`{"email":"not-an-email"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", body)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	cfg := testJWTConfig()
	handler := Logout(cfg, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == cfg.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected expiring cookie on response")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cookie)
	}
}
