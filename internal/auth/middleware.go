package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/assoclub/club-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const MemberIDKey contextKey = "member_id"

// AuthMiddleware protects plain chi routes (the multipart photo
// upload) with the same API key / session cookie checks the huma
// operations use.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Check for API Key Header
		apiKey := r.Header.Get("X-API-KEY")
		if apiKey != "" {
			var keyModel models.APIKey
			if err := h.db.Where("key = ?", apiKey).First(&keyModel).Error; err == nil {
				if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
					http.Error(w, "Unauthorized: API Key expired", http.StatusUnauthorized)
					return
				}

				h.db.Model(&keyModel).Update("last_used_at", time.Now())

				ctx := context.WithValue(r.Context(), MemberIDKey, keyModel.MembreID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		// 2. Fallback to JWT Cookie
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			if err == http.ErrNoCookie {
				http.Error(w, "Unauthorized: No token found", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		memberID, err := h.VerifyToken(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		var member models.Member
		if err := h.db.First(&member, memberID).Error; err != nil {
			http.Error(w, "Unauthorized: Unknown member", http.StatusUnauthorized)
			return
		}

		// Sliding session: refresh token if it's more than halfway
		// through its duration
		h.renewIfNeeded(w, cookie.Value, &member)

		ctx := context.WithValue(r.Context(), MemberIDKey, member.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *AuthHandler) renewIfNeeded(w http.ResponseWriter, tokenString string, member *models.Member) {
	exp, err := tokenExpiry(tokenString)
	if err != nil {
		return
	}
	if time.Until(exp) >= TokenDuration/2 {
		return
	}

	newToken, err := h.GenerateToken(member.ID, member.Role)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    newToken,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})
}

func tokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiry")
	}
	return exp.Time, nil
}
