package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BaderVance/BucketListify/internal/ctxkeys"
	"github.com/BaderVance/BucketListify/internal/model"
	"github.com/BaderVance/BucketListify/internal/repository"
)

// Auth resolves the bearer token into a user identity and adds it to the
// request context. Tokens are issued by the external identity service; this
// middleware only verifies them. The owner's public summary (name, avatar)
// rides along in the claims and is cached for public listings.
func Auth(jwtSecret string, profiles repository.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				// No credential, continue without identity
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifyToken(token, jwtSecret)
			if err != nil {
				// Invalid token, continue without identity
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["sub"].(string)
			if !ok || userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			name, _ := claims["name"].(string)
			avatar, _ := claims["avatar"].(string)

			user := &model.User{
				ID:        userID,
				Name:      name,
				AvatarURL: avatar,
			}

			err = profiles.Upsert(&model.Profile{
				UserID:    user.ID,
				Name:      user.Name,
				AvatarURL: user.AvatarURL,
				UpdatedAt: time.Now(),
			})
			if err != nil {
				slog.Warn("failed to cache profile", "error", err, "user_id", user.ID)
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without a resolved identity
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Authentication required"}`))
			return
		}

		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

func verifyToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
