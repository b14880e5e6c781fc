package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/assoclub/club-api/internal/config"
	"github.com/assoclub/club-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TokenDuration = 24 * time.Hour
	CookieName    = "auth_token"
)

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// AuthInput is embedded by every protected operation's input struct so
// the session cookie and the programmatic API key both reach Authorize.
type AuthInput struct {
	Cookie  string `header:"Cookie" doc:"Session cookie"`
	XAPIKey string `header:"X-API-KEY" doc:"API key, programmatic alternative to the session cookie"`
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" required:"true" doc:"Member email"`
		Password string `json:"password" required:"true" doc:"Member password"`
	}
}

type LoginResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Notice models.Notice `json:"notice"`
		Role   string        `json:"role"`
	}
}

// HandleLogin checks the credentials and establishes the session
// cookie. Unknown email and wrong password produce the same failure so
// accounts cannot be enumerated.
func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	var member models.Member
	if err := h.db.Where("email = ?", input.Body.Email).First(&member).Error; err != nil {
		return nil, huma.Error401Unauthorized("Identifiants incorrects")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Identifiants incorrects")
	}

	token, err := h.GenerateToken(member.ID, member.Role)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{
		SetCookie: http.Cookie{
			Name:     CookieName,
			Value:    token,
			Expires:  time.Now().Add(TokenDuration),
			HttpOnly: true,
			Path:     "/",
		},
	}
	res.Body.Notice = models.Notice{Text: "Connexion réussie ! Bienvenue", Category: models.NoticeSuccess}
	res.Body.Role = member.Role
	return res, nil
}

type LogoutResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Notice models.Notice `json:"notice"`
	}
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(ctx context.Context, input *struct{}) (*LogoutResponse, error) {
	res := &LogoutResponse{
		SetCookie: http.Cookie{
			Name:     CookieName,
			Value:    "",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Path:     "/",
		},
	}
	res.Body.Notice = models.Notice{Text: "Déconnecté avec succès", Category: models.NoticeInfo}
	return res, nil
}

type MeResponse struct {
	Body struct {
		ID              uint   `json:"id"`
		Nom             string `json:"nom"`
		Prenom          string `json:"prenom"`
		Email           string `json:"email"`
		Role            string `json:"role"`
		DateInscription string `json:"date_inscription"`
		Photo           string `json:"photo"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{ AuthInput }) (*MeResponse, error) {
	member, err := h.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	res := &MeResponse{}
	res.Body.ID = member.ID
	res.Body.Nom = member.Nom
	res.Body.Prenom = member.Prenom
	res.Body.Email = member.Email
	res.Body.Role = member.Role
	res.Body.DateInscription = member.DateInscription
	res.Body.Photo = member.Photo
	return res, nil
}

func (h *AuthHandler) GenerateToken(memberID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"member_id": memberID,
		"role":      role,
		"exp":       time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize validates the credentials carried by the request and loads
// the member they belong to: a known X-API-KEY wins, otherwise the
// session cookie. Every failure maps to the same 401.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) (*models.Member, error) {
	if input.XAPIKey != "" {
		var keyModel models.APIKey
		if err := h.db.Where("key = ?", input.XAPIKey).First(&keyModel).Error; err == nil {
			if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
				return nil, huma.Error401Unauthorized("Veuillez vous connecter")
			}

			h.db.Model(&keyModel).Update("last_used_at", time.Now())

			var member models.Member
			if err := h.db.First(&member, keyModel.MembreID).Error; err != nil {
				return nil, huma.Error401Unauthorized("Veuillez vous connecter")
			}
			return &member, nil
		}
	}

	memberID, err := h.VerifyCookieHeader(input.Cookie)
	if err != nil {
		return nil, huma.Error401Unauthorized("Veuillez vous connecter")
	}

	var member models.Member
	if err := h.db.First(&member, memberID).Error; err != nil {
		return nil, huma.Error401Unauthorized("Veuillez vous connecter")
	}

	return &member, nil
}

// RequireAdmin gates operations scoped to the club entity.
func RequireAdmin(member *models.Member) error {
	if member.Role != models.RoleAdmin {
		return huma.Error403Forbidden("Accès réservé aux administrateurs.")
	}
	return nil
}

// VerifyCookieHeader extracts the auth token from a raw Cookie header
// and returns the member ID it carries.
func (h *AuthHandler) VerifyCookieHeader(cookieHeader string) (uint, error) {
	req := http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return 0, err
	}
	return h.VerifyToken(cookie.Value)
}

func (h *AuthHandler) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	memberIDFloat, ok := claims["member_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	return uint(memberIDFloat), nil
}
