package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/pkg/apiclient"
)

// mockBackend is an echo server standing in for the radiology backend.
func mockBackend(t *testing.T, configure func(e *echo.Echo)) (*httptest.Server, *Store) {
	t.Helper()
	e := echo.New()
	configure(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, NewStore(apiclient.New(srv.URL, 5*time.Second))
}

func TestRestore_PopulatesSession(t *testing.T) {
	_, store := mockBackend(t, func(e *echo.Echo) {
		e.GET("/auth/me", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{
				"success": true,
				"user":    map[string]string{"_id": "d-1", "username": "doc1", "role": "doctor"},
			})
		})
	})

	sess := store.Restore(context.Background())
	if sess == nil {
		t.Fatal("expected a restored session")
	}
	if sess.Identity != "doc1" || sess.Role != models.RoleDoctor || sess.UserID != "d-1" {
		t.Fatalf("wrong session: %+v", sess)
	}
}

func TestRestore_401LeavesSessionEmpty(t *testing.T) {
	_, store := mockBackend(t, func(e *echo.Echo) {
		e.GET("/auth/me", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false})
		})
	})

	if sess := store.Restore(context.Background()); sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
	if store.Current() != nil {
		t.Fatal("session should stay empty after failed restore")
	}
}

func TestRestore_NetworkFailureIsSilent(t *testing.T) {
	store := NewStore(apiclient.New("http://127.0.0.1:1", time.Second))
	if sess := store.Restore(context.Background()); sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestLogin_Success(t *testing.T) {
	_, store := mockBackend(t, func(e *echo.Echo) {
		e.POST("/auth/login", func(c echo.Context) error {
			var body map[string]string
			if err := c.Bind(&body); err != nil {
				return err
			}
			if body["username"] != "doc1" || body["password"] != "x" || body["role"] != "doctor" {
				return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "bad credentials"})
			}
			return c.JSON(http.StatusOK, map[string]any{
				"success": true,
				"user":    map[string]string{"username": "doc1", "role": "doctor"},
			})
		})
	})

	sess, err := store.Login(context.Background(), "doc1", "x", models.RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Identity != "doc1" || sess.Role != models.RoleDoctor {
		t.Fatalf("wrong session: %+v", sess)
	}
	// UserID falls back to the identity when the payload has no _id.
	if sess.UserID != "doc1" {
		t.Fatalf("expected identity fallback, got %q", sess.UserID)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	_, store := mockBackend(t, func(e *echo.Echo) {
		e.POST("/auth/login", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid username or password"})
		})
	})

	_, err := store.Login(context.Background(), "doc1", "wrong", models.RoleDoctor)
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Invalid username or password" {
		t.Fatalf("got %q", apiErr.Message)
	}
	if store.Current() != nil {
		t.Fatal("failed login must not populate the session")
	}
}

func TestLogin_ValidatesBeforeNetwork(t *testing.T) {
	var hits int64
	_, store := mockBackend(t, func(e *echo.Echo) {
		e.POST("/auth/login", func(c echo.Context) error {
			atomic.AddInt64(&hits, 1)
			return c.JSON(http.StatusOK, map[string]any{"success": true})
		})
	})

	cases := []struct {
		user, pass string
		role       models.Role
	}{
		{"", "x", models.RoleDoctor},
		{"doc1", "", models.RoleDoctor},
		{"doc1", "x", models.Role("superuser")},
	}
	for _, tc := range cases {
		_, err := store.Login(context.Background(), tc.user, tc.pass, tc.role)
		var vErr *apiclient.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError for %+v, got %v", tc, err)
		}
	}
	if atomic.LoadInt64(&hits) != 0 {
		t.Fatalf("validation failures must not reach the server, got %d requests", hits)
	}
}

func TestLogin_TokenOnlyPayload(t *testing.T) {
	// Older backend versions return only the signed token; the unverified
	// claims fill the session.
	token := signedTestToken(t, "rad1", "radiologist")
	_, store := mockBackend(t, func(e *echo.Echo) {
		e.POST("/auth/login", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{"success": true, "token": token})
		})
	})

	sess, err := store.Login(context.Background(), "rad1", "x", models.RoleRadiologist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Identity != "rad1" || sess.Role != models.RoleRadiologist {
		t.Fatalf("claims not applied: %+v", sess)
	}
}

func signedTestToken(t *testing.T, username, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	_, store := mockBackend(t, func(e *echo.Echo) {
		e.GET("/auth/me", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{
				"success": true,
				"user":    map[string]string{"username": "admin", "role": "admin"},
			})
		})
		e.POST("/auth/logout", func(c echo.Context) error {
			return c.JSON(http.StatusInternalServerError, map[string]any{"success": false})
		})
	})

	if store.Restore(context.Background()) == nil {
		t.Fatal("restore should succeed")
	}
	store.Logout(context.Background())
	if store.Current() != nil {
		t.Fatal("logout must clear the session unconditionally")
	}
	if store.Role() != "" {
		t.Fatalf("role should be empty after logout, got %q", store.Role())
	}
}
