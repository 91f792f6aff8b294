package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/karanns19/task-manager/internal/apperr"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()
	manager := testManager(time.Hour)

	accessToken, err := manager.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	refreshToken, err := manager.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	expiredToken, err := testManager(-time.Minute).IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: apperr.CodeMissingToken},
		{name: "no token segment", header: "Bearer", wantStatus: http.StatusUnauthorized, wantCode: apperr.CodeInvalidTokenFormat},
		{name: "blank token segment", header: "Bearer   ", wantStatus: http.StatusUnauthorized, wantCode: apperr.CodeInvalidTokenFormat},
		{name: "wrong scheme", header: "Basic abc123", wantStatus: http.StatusUnauthorized, wantCode: apperr.CodeInvalidTokenFormat},
		{name: "garbage token", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized, wantCode: apperr.CodeInvalidToken},
		{name: "expired token", header: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized, wantCode: apperr.CodeTokenExpired},
		{name: "refresh token rejected", header: "Bearer " + refreshToken, wantStatus: http.StatusUnauthorized, wantCode: apperr.CodeInvalidToken},
		{name: "valid access token", header: "Bearer " + accessToken, wantStatus: http.StatusOK},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var gotClaims *Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			rec := httptest.NewRecorder()
			manager.Middleware()(next).ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, test.wantStatus, rec.Body.String())
			}
			if test.wantCode != "" {
				var envelope struct {
					Success bool   `json:"success"`
					Code    string `json:"code"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if envelope.Success {
					t.Error("success = true on a rejected request")
				}
				if envelope.Code != test.wantCode {
					t.Errorf("code = %q, want %q", envelope.Code, test.wantCode)
				}
				return
			}
			if gotClaims == nil || gotClaims.UserID != "user-1" {
				t.Errorf("claims not attached to context: %+v", gotClaims)
			}
		})
	}
}
