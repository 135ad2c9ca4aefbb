package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/harborlegal/practice-backend/internal/pkg/ctxutil"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

func signStaffToken(t *testing.T, secret []byte, userID, firmID uuid.UUID) string {
	t.Helper()
	claims := StaffClaims{
		LawFirmID: firmID.String(),
		Role:      "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authTestRouter(t *testing.T, secret string, captured **ctxutil.RequestData) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	r := gin.New()
	r.Use(NewAuthMiddleware(log, secret).RequireAuth())
	r.GET("/protected", func(c *gin.Context) {
		*captured = ctxutil.GetRequestData(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAuthAcceptsConfiguredSecret(t *testing.T) {
	userID := uuid.New()
	firmID := uuid.New()

	var rd *ctxutil.RequestData
	r := authTestRouter(t, "unit-test-secret", &rd)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signStaffToken(t, []byte("unit-test-secret"), userID, firmID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if rd == nil {
		t.Fatalf("request data not populated")
	}
	if rd.UserID != userID {
		t.Fatalf("user id mismatch: %s != %s", rd.UserID, userID)
	}
	if rd.LawFirmID == nil || *rd.LawFirmID != firmID {
		t.Fatalf("law firm id mismatch: %v", rd.LawFirmID)
	}
}

func TestRequireAuthRejectsForeignKey(t *testing.T) {
	var rd *ctxutil.RequestData
	r := authTestRouter(t, "unit-test-secret", &rd)

	// Tokens signed with any other key, including the empty one, must
	// never authenticate.
	for _, key := range [][]byte{[]byte(""), []byte("other-secret")} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signStaffToken(t, key, uuid.New(), uuid.New()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("token signed with %q: expected 401, got %d", key, w.Code)
		}
		if rd != nil {
			t.Fatalf("request data must stay empty on rejection")
		}
	}
}

func TestRequireAuthRejectsEmptyConfiguredSecret(t *testing.T) {
	var rd *ctxutil.RequestData
	r := authTestRouter(t, "", &rd)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signStaffToken(t, []byte(""), uuid.New(), uuid.New()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("empty secret must reject every token, got %d", w.Code)
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	var rd *ctxutil.RequestData
	r := authTestRouter(t, "unit-test-secret", &rd)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Authorization header, got %d", w.Code)
	}
}
