package handlers

import (
	"context"

	"github.com/assoclub/club-api/internal/auth"
	"github.com/assoclub/club-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type ClubHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewClubHandler(db *gorm.DB, authHandler *auth.AuthHandler) *ClubHandler {
	return &ClubHandler{db: db, authHandler: authHandler}
}

type ClubResponse struct {
	ID          uint   `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description"`
}

type GetClubRequest struct {
	auth.AuthInput
}

type GetClubResponse struct {
	Body ClubResponse
}

// HandleGetClub returns the singleton club row seeded at initialization.
func (h *ClubHandler) HandleGetClub(ctx context.Context, input *GetClubRequest) (*GetClubResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var club models.Club
	if err := h.db.First(&club).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load club")
	}

	return &GetClubResponse{Body: ClubResponse{
		ID:          club.ID,
		Nom:         club.Nom,
		Description: club.Description,
	}}, nil
}

type UpdateClubRequest struct {
	auth.AuthInput
	Body struct {
		Nom         string `json:"nom" required:"true" minLength:"1"`
		Description string `json:"description"`
	}
}

type UpdateClubResponse struct {
	Body struct {
		Notice models.Notice `json:"notice"`
		Club   ClubResponse  `json:"club"`
	}
}

// HandleUpdateClub overwrites the singleton in place. Admin only.
func (h *ClubHandler) HandleUpdateClub(ctx context.Context, input *UpdateClubRequest) (*UpdateClubResponse, error) {
	member, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireAdmin(member); err != nil {
		return nil, err
	}

	var club models.Club
	if err := h.db.First(&club).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load club")
	}

	club.Nom = input.Body.Nom
	club.Description = input.Body.Description
	if err := h.db.Save(&club).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update club")
	}

	res := &UpdateClubResponse{}
	res.Body.Notice = models.Notice{Text: "Club mis à jour !", Category: models.NoticeSuccess}
	res.Body.Club = ClubResponse{ID: club.ID, Nom: club.Nom, Description: club.Description}
	return res, nil
}
