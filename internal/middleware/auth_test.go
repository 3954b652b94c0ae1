package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BaderVance/BucketListify/internal/ctxkeys"
	"github.com/BaderVance/BucketListify/internal/model"
)

const testSecret = "test-secret"

type recordingProfileRepo struct {
	upserted []*model.Profile
}

func (r *recordingProfileRepo) Upsert(profile *model.Profile) error {
	r.upserted = append(r.upserted, profile)
	return nil
}

func (r *recordingProfileRepo) ByUserID(string) (*model.Profile, error) {
	return nil, nil
}

func (r *recordingProfileRepo) ByUserIDs([]string) (map[string]*model.Profile, error) {
	return nil, nil
}

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func resolveUser(t *testing.T, authorization string, profiles *recordingProfileRepo) *model.User {
	t.Helper()

	var got *model.User
	handler := Auth(testSecret, profiles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.User(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/goals/my", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestAuthResolvesIdentity(t *testing.T) {
	t.Parallel()

	profiles := &recordingProfileRepo{}
	token := mintToken(t, testSecret, jwt.MapClaims{
		"sub":    "user-1",
		"name":   "Ada",
		"avatar": "https://cdn/a.png",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	user := resolveUser(t, "Bearer "+token, profiles)

	if user == nil {
		t.Fatal("expected an identity in the request context")
	}
	if user.ID != "user-1" || user.Name != "Ada" || user.AvatarURL != "https://cdn/a.png" {
		t.Errorf("user = %+v", user)
	}

	if len(profiles.upserted) != 1 {
		t.Fatalf("profile upserted %d times, want 1", len(profiles.upserted))
	}
	if profiles.upserted[0].UserID != "user-1" || profiles.upserted[0].Name != "Ada" {
		t.Errorf("cached profile = %+v", profiles.upserted[0])
	}
}

func TestAuthContinuesAnonymously(t *testing.T) {
	t.Parallel()

	expired := mintToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := mintToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})
	noSubject := mintToken(t, testSecret, jwt.MapClaims{"name": "Ada"})

	tests := []struct {
		name          string
		authorization string
	}{
		{name: "no header", authorization: ""},
		{name: "not a bearer scheme", authorization: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", authorization: "Bearer not.a.jwt"},
		{name: "expired token", authorization: "Bearer " + expired},
		{name: "wrong signing key", authorization: "Bearer " + wrongKey},
		{name: "missing subject", authorization: "Bearer " + noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &recordingProfileRepo{}

			user := resolveUser(t, tt.authorization, profiles)

			if user != nil {
				t.Fatalf("resolved identity %+v, want none", user)
			}
			if len(profiles.upserted) != 0 {
				t.Error("profile cached for an unverified request")
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/goals/my", nil))

	if called {
		t.Error("handler ran without an identity")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); body != `{"message":"Authentication required"}` {
		t.Errorf("body = %s", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/goals/my", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "user-1"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("handler did not run for an authenticated request")
	}
}
