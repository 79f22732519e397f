package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func serveAdmin(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/demo-requests", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	called := false
	AdminJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := AdminClaimsFromContext(r.Context())
		if !ok || claims.Subject != "ops@onboardai.test" {
			t.Fatalf("expected admin claims in context, got %+v", claims)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)
	return rec, called
}

func TestAdminJWTMissingSecret(t *testing.T) {
	rec, called := serveAdmin(t, "", "Bearer whatever")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminJWTMissingHeader(t *testing.T) {
	rec, called := serveAdmin(t, "secret", "")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminJWTWrongSecret(t *testing.T) {
	token, err := IssueAdminToken("wrong", "ops@onboardai.test", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec, called := serveAdmin(t, "secret", "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminJWTRejectsForeignIssuerAndMissingExpiry(t *testing.T) {
	for name, claims := range map[string]jwt.RegisteredClaims{
		"issuer": {Issuer: "someone-else", Subject: "ops@onboardai.test", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
		"expiry": {Issuer: AdminIssuer, Subject: "ops@onboardai.test"},
	} {
		t.Run(name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			rec, called := serveAdmin(t, "secret", "Bearer "+signed)
			if called || rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAdminJWTValidToken(t *testing.T) {
	token, err := IssueAdminToken("secret", "ops@onboardai.test", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec, called := serveAdmin(t, "secret", "Bearer "+token)
	if !called {
		t.Fatalf("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestIssueAdminTokenRequiresSecret(t *testing.T) {
	if _, err := IssueAdminToken("", "ops", time.Minute); err == nil {
		t.Fatal("expected error without secret")
	}
}
