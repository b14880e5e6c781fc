package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/assoclub/club-api/internal/auth"
	"github.com/assoclub/club-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type APIKeyHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewAPIKeyHandler(db *gorm.DB, authHandler *auth.AuthHandler) *APIKeyHandler {
	return &APIKeyHandler{db: db, authHandler: authHandler}
}

type CreateAPIKeyInput struct {
	auth.AuthInput
	Body struct {
		Name      string     `json:"name"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
}

type APIKeyResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Key        string     `json:"key"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

type CreateAPIKeyOutput struct {
	Body struct {
		Notice models.Notice  `json:"notice"`
		Cle    APIKeyResponse `json:"cle"`
	}
}

// HandleCreate mints a key for the calling member. The full key value
// is only ever returned here; listings mask it.
func (h *APIKeyHandler) HandleCreate(ctx context.Context, input *CreateAPIKeyInput) (*CreateAPIKeyOutput, error) {
	member, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}
	key := hex.EncodeToString(keyBytes)

	apiKey := models.APIKey{
		MembreID:  member.ID,
		Key:       key,
		Name:      input.Body.Name,
		ExpiresAt: input.Body.ExpiresAt,
	}

	if err := h.db.Create(&apiKey).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create API key")
	}

	res := &CreateAPIKeyOutput{}
	res.Body.Notice = models.Notice{Text: "Clé API créée", Category: models.NoticeSuccess}
	res.Body.Cle = APIKeyResponse{
		ID:         apiKey.ID,
		Name:       apiKey.Name,
		Key:        apiKey.Key,
		CreatedAt:  apiKey.CreatedAt,
		ExpiresAt:  apiKey.ExpiresAt,
		LastUsedAt: apiKey.LastUsedAt,
	}
	return res, nil
}

type ListAPIKeysInput struct {
	auth.AuthInput
}

type ListAPIKeysOutput struct {
	Body []APIKeyResponse
}

func (h *APIKeyHandler) HandleList(ctx context.Context, input *ListAPIKeysInput) (*ListAPIKeysOutput, error) {
	member, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var apiKeys []models.APIKey
	if err := h.db.Where("membre_id = ?", member.ID).Find(&apiKeys).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list API keys")
	}

	var response []APIKeyResponse
	for _, k := range apiKeys {
		maskedKey := k.Key
		if len(k.Key) > 4 {
			maskedKey = "..." + k.Key[len(k.Key)-4:]
		}
		response = append(response, APIKeyResponse{
			ID:         k.ID,
			Name:       k.Name,
			Key:        maskedKey,
			CreatedAt:  k.CreatedAt,
			ExpiresAt:  k.ExpiresAt,
			LastUsedAt: k.LastUsedAt,
		})
	}

	return &ListAPIKeysOutput{Body: response}, nil
}

type DeleteAPIKeyInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type DeleteAPIKeyOutput struct {
	Body struct {
		Notice models.Notice `json:"notice"`
	}
}

// HandleDelete revokes one of the caller's own keys; other members'
// keys are indistinguishable from missing ones.
func (h *APIKeyHandler) HandleDelete(ctx context.Context, input *DeleteAPIKeyInput) (*DeleteAPIKeyOutput, error) {
	member, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	result := h.db.Where("id = ? AND membre_id = ?", input.ID, member.ID).Delete(&models.APIKey{})
	if result.Error != nil {
		return nil, huma.Error500InternalServerError("Failed to delete API key")
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("Clé introuvable")
	}

	res := &DeleteAPIKeyOutput{}
	res.Body.Notice = models.Notice{Text: "Clé API supprimée", Category: models.NoticeSuccess}
	return res, nil
}
