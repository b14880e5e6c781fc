package handlers

import (
	"context"
	"time"

	"github.com/assoclub/club-api/internal/auth"
	"github.com/assoclub/club-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MemberHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewMemberHandler(db *gorm.DB, authHandler *auth.AuthHandler) *MemberHandler {
	return &MemberHandler{db: db, authHandler: authHandler}
}

type MemberResponse struct {
	ID              uint   `json:"id"`
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	DateInscription string `json:"date_inscription"`
	Active          bool   `json:"active"`
	Photo           string `json:"photo"`
}

func toMemberResponse(m *models.Member) MemberResponse {
	return MemberResponse{
		ID:              m.ID,
		Nom:             m.Nom,
		Prenom:          m.Prenom,
		Email:           m.Email,
		Role:            m.Role,
		DateInscription: m.DateInscription,
		Active:          m.Active,
		Photo:           m.Photo,
	}
}

// emailTaken checks the uniqueness invariant across all members,
// soft-deleted ones included: their email stays reserved.
func (h *MemberHandler) emailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	q := h.db.Model(&models.Member{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (h *MemberHandler) insertMember(nom, prenom, email, password string) (*models.Member, error) {
	taken, err := h.emailTaken(email, 0)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if taken {
		return nil, huma.Error409Conflict("Cet email est déjà utilisé.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	member := models.Member{
		Nom:             nom,
		Prenom:          prenom,
		Email:           email,
		Password:        string(hash),
		Role:            models.RoleMember,
		DateInscription: time.Now().Format(models.DateFormat),
		Active:          true,
		Photo:           models.DefaultPhoto,
	}
	if err := h.db.Create(&member).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create member")
	}
	return &member, nil
}

type RegisterRequest struct {
	Body struct {
		Nom      string `json:"nom" required:"true" minLength:"1" doc:"Last name"`
		Prenom   string `json:"prenom" required:"true" minLength:"1" doc:"First name"`
		Email    string `json:"email" required:"true" format:"email"`
		Password string `json:"password" required:"true" minLength:"1"`
	}
}

type RegisterResponse struct {
	Body struct {
		Notice models.Notice  `json:"notice"`
		Membre MemberResponse `json:"membre"`
	}
}

// HandleRegister is the public self-registration path.
func (h *MemberHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	member, err := h.insertMember(input.Body.Nom, input.Body.Prenom, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, err
	}

	res := &RegisterResponse{}
	res.Body.Notice = models.Notice{Text: "Compte créé avec succès !", Category: models.NoticeSuccess}
	res.Body.Membre = toMemberResponse(member)
	return res, nil
}

type AddMemberRequest struct {
	auth.AuthInput
	Body struct {
		Nom      string `json:"nom" required:"true" minLength:"1"`
		Prenom   string `json:"prenom" required:"true" minLength:"1"`
		Email    string `json:"email" required:"true" format:"email"`
		Password string `json:"password" required:"true" minLength:"1"`
	}
}

type AddMemberResponse struct {
	Body struct {
		Notice models.Notice  `json:"notice"`
		Membre MemberResponse `json:"membre"`
	}
}

// HandleAddMember is the operator path. Photos are attached afterwards
// through the dedicated upload endpoint so a rejected file never
// aborts the insertion.
func (h *MemberHandler) HandleAddMember(ctx context.Context, input *AddMemberRequest) (*AddMemberResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	member, err := h.insertMember(input.Body.Nom, input.Body.Prenom, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, err
	}

	res := &AddMemberResponse{}
	res.Body.Notice = models.Notice{Text: "Membre ajouté !", Category: models.NoticeSuccess}
	res.Body.Membre = toMemberResponse(member)
	return res, nil
}

type EditMemberRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Nom    string `json:"nom" required:"true" minLength:"1"`
		Prenom string `json:"prenom" required:"true" minLength:"1"`
		Email  string `json:"email" required:"true" format:"email"`
	}
}

type EditMemberResponse struct {
	Body struct {
		Notice models.Notice  `json:"notice"`
		Membre MemberResponse `json:"membre"`
	}
}

// HandleEditMember updates identity fields only; the password has its
// own flow.
func (h *MemberHandler) HandleEditMember(ctx context.Context, input *EditMemberRequest) (*EditMemberResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var member models.Member
	if err := h.db.First(&member, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Membre introuvable")
	}

	taken, err := h.emailTaken(input.Body.Email, member.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if taken {
		return nil, huma.Error409Conflict("Cet email est déjà utilisé.")
	}

	member.Nom = input.Body.Nom
	member.Prenom = input.Body.Prenom
	member.Email = input.Body.Email
	if err := h.db.Save(&member).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update member")
	}

	res := &EditMemberResponse{}
	res.Body.Notice = models.Notice{Text: "Membre modifié", Category: models.NoticeSuccess}
	res.Body.Membre = toMemberResponse(&member)
	return res, nil
}

type ChangePasswordRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		OldPassword string `json:"old_password" required:"true"`
		NewPassword string `json:"new_password" required:"true" minLength:"1"`
	}
}

type ChangePasswordResponse struct {
	Body struct {
		Notice models.Notice `json:"notice"`
	}
}

// HandleChangePassword overwrites the credential after an exact check
// of the old one. Members may only change their own password; admins
// may change anyone's.
func (h *MemberHandler) HandleChangePassword(ctx context.Context, input *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	caller, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	if caller.ID != input.ID && caller.Role != models.RoleAdmin {
		return nil, huma.Error403Forbidden("Accès refusé")
	}

	var member models.Member
	if err := h.db.First(&member, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Membre introuvable")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(input.Body.OldPassword)); err != nil {
		return nil, huma.Error422UnprocessableEntity("Ancien mot de passe incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}
	if err := h.db.Model(&member).Update("password", string(hash)).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update password")
	}

	res := &ChangePasswordResponse{}
	res.Body.Notice = models.Notice{Text: "Mot de passe modifié", Category: models.NoticeSuccess}
	return res, nil
}

type DeleteMemberRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type DeleteMemberResponse struct {
	Body struct {
		Notice models.Notice `json:"notice"`
	}
}

// HandleDeleteMember flips active=false. Members are never physically
// removed so their participations stay resolvable; deleting an already
// inactive member is a no-op success.
func (h *MemberHandler) HandleDeleteMember(ctx context.Context, input *DeleteMemberRequest) (*DeleteMemberResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var member models.Member
	if err := h.db.First(&member, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Membre introuvable")
	}

	if err := h.db.Model(&member).Update("active", false).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete member")
	}

	res := &DeleteMemberResponse{}
	res.Body.Notice = models.Notice{Text: "Membre supprimé", Category: models.NoticeSuccess}
	return res, nil
}

type ListMembersRequest struct {
	auth.AuthInput
}

type ListMembersResponse struct {
	Body struct {
		Membres []MemberResponse `json:"membres"`
	}
}

func (h *MemberHandler) HandleListMembers(ctx context.Context, input *ListMembersRequest) (*ListMembersResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var members []models.Member
	if err := h.db.Where("active = ?", true).Order("id").Find(&members).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list members")
	}

	res := &ListMembersResponse{}
	res.Body.Membres = make([]MemberResponse, 0, len(members))
	for i := range members {
		res.Body.Membres = append(res.Body.Membres, toMemberResponse(&members[i]))
	}
	return res, nil
}
