package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/assoclub/club-api/internal/auth"
	"github.com/assoclub/club-api/internal/config"
	"github.com/assoclub/club-api/internal/models"
	"github.com/assoclub/club-api/internal/notifier"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	cfg         *config.Config
}

func NewEventHandler(db *gorm.DB, notifier notifier.Notifier, authHandler *auth.AuthHandler, cfg *config.Config) *EventHandler {
	return &EventHandler{db: db, notifier: notifier, authHandler: authHandler, cfg: cfg}
}

type EventResponse struct {
	ID          uint   `json:"id"`
	Titre       string `json:"titre"`
	Date        string `json:"date"`
	Lieu        string `json:"lieu"`
	Description string `json:"description"`
}

func toEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Titre:       e.Titre,
		Date:        e.Date,
		Lieu:        e.Lieu,
		Description: e.Description,
	}
}

func validEventDate(date string) bool {
	_, err := time.Parse(models.DateFormat, date)
	return err == nil
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Titre       string `json:"titre" required:"true" minLength:"1"`
		Date        string `json:"date" required:"true" doc:"Calendar date, YYYY-MM-DD"`
		Lieu        string `json:"lieu" required:"true" minLength:"1"`
		Description string `json:"description"`
	}
}

type CreateEventResponse struct {
	Body struct {
		Notice    models.Notice `json:"notice"`
		Evenement EventResponse `json:"evenement"`
	}
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*CreateEventResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	if !validEventDate(input.Body.Date) {
		return nil, huma.Error422UnprocessableEntity("Date invalide, format attendu YYYY-MM-DD")
	}

	event := models.Event{
		Titre:       input.Body.Titre,
		Date:        input.Body.Date,
		Lieu:        input.Body.Lieu,
		Description: input.Body.Description,
	}
	if err := h.db.Create(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyEventCreated(event); err != nil {
			slog.Error("Failed to send event notification", "error", err)
		}
	}

	res := &CreateEventResponse{}
	res.Body.Notice = models.Notice{Text: "Événement créé", Category: models.NoticeSuccess}
	res.Body.Evenement = toEventResponse(&event)
	return res, nil
}

type ListEventsRequest struct {
	auth.AuthInput
}

type ListEventsResponse struct {
	Body struct {
		Evenements []EventResponse `json:"evenements"`
	}
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var events []models.Event
	if err := h.db.Order("id").Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list events")
	}

	res := &ListEventsResponse{}
	res.Body.Evenements = make([]EventResponse, 0, len(events))
	for i := range events {
		res.Body.Evenements = append(res.Body.Evenements, toEventResponse(&events[i]))
	}
	return res, nil
}

type ParticipantResponse struct {
	Prenom string `json:"prenom"`
	Nom    string `json:"nom"`
}

type GetEventRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type GetEventResponse struct {
	Body struct {
		Evenement    EventResponse         `json:"evenement"`
		Participants []ParticipantResponse `json:"participants"`
	}
}

// HandleGetEvent returns the event and its attendance. Soft-deleted
// members still appear in the participant list: deactivating a member
// never rewrites history.
func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*GetEventResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Événement introuvable")
	}

	participants := []ParticipantResponse{}
	err := h.db.Table("participations").
		Select("membres.prenom, membres.nom").
		Joins("JOIN membres ON participations.id_membre = membres.id").
		Where("participations.id_evenement = ?", input.ID).
		Order("participations.id").
		Scan(&participants).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list participants")
	}

	res := &GetEventResponse{}
	res.Body.Evenement = toEventResponse(&event)
	res.Body.Participants = participants
	return res, nil
}

type UpdateEventRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Titre       string `json:"titre" required:"true" minLength:"1"`
		Date        string `json:"date" required:"true"`
		Lieu        string `json:"lieu" required:"true" minLength:"1"`
		Description string `json:"description"`
	}
}

type UpdateEventResponse struct {
	Body struct {
		Notice    models.Notice `json:"notice"`
		Evenement EventResponse `json:"evenement"`
	}
}

func (h *EventHandler) HandleUpdateEvent(ctx context.Context, input *UpdateEventRequest) (*UpdateEventResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	if !validEventDate(input.Body.Date) {
		return nil, huma.Error422UnprocessableEntity("Date invalide, format attendu YYYY-MM-DD")
	}

	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Événement introuvable")
	}

	event.Titre = input.Body.Titre
	event.Date = input.Body.Date
	event.Lieu = input.Body.Lieu
	event.Description = input.Body.Description
	if err := h.db.Save(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update event")
	}

	res := &UpdateEventResponse{}
	res.Body.Notice = models.Notice{Text: "Événement modifié", Category: models.NoticeSuccess}
	res.Body.Evenement = toEventResponse(&event)
	return res, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type DeleteEventResponse struct {
	Body struct {
		Notice models.Notice `json:"notice"`
	}
}

// HandleDeleteEvent removes the event's participations and the event
// itself in one transaction, so a failure can never leave orphaned
// participation rows behind.
func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *DeleteEventRequest) (*DeleteEventResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, input.ID).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id_evenement = ?", input.ID).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Event{}, input.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Événement introuvable")
		}
		return nil, huma.Error500InternalServerError("Failed to delete event")
	}

	res := &DeleteEventResponse{}
	res.Body.Notice = models.Notice{Text: "Événement supprimé", Category: models.NoticeSuccess}
	return res, nil
}

type RegisterParticipationRequest struct {
	auth.AuthInput
	ID   uint `path:"id" doc:"Event ID"`
	Body struct {
		MembreID uint `json:"id_membre" required:"true"`
	}
}

type RegisterParticipationResponse struct {
	Body struct {
		Notice models.Notice `json:"notice"`
		ID     uint          `json:"id"`
	}
}

// HandleRegisterParticipation registers a member to an event. Repeat
// registrations are allowed unless ENFORCE_UNIQUE_PARTICIPATION is set.
func (h *EventHandler) HandleRegisterParticipation(ctx context.Context, input *RegisterParticipationRequest) (*RegisterParticipationResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Événement introuvable")
	}

	var member models.Member
	if err := h.db.First(&member, input.Body.MembreID).Error; err != nil {
		return nil, huma.Error404NotFound("Membre introuvable")
	}

	if h.cfg != nil && h.cfg.EnforceUniqueParticipation {
		var count int64
		err := h.db.Model(&models.Participation{}).
			Where("id_membre = ? AND id_evenement = ?", member.ID, event.ID).
			Count(&count).Error
		if err != nil {
			return nil, huma.Error500InternalServerError("Database error")
		}
		if count > 0 {
			return nil, huma.Error409Conflict("Ce membre est déjà inscrit à cet événement.")
		}
	}

	participation := models.Participation{
		MembreID:    member.ID,
		EvenementID: event.ID,
	}
	if err := h.db.Create(&participation).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to register participation")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyParticipation(member, event); err != nil {
			slog.Error("Failed to send participation notification", "error", err)
		}
	}

	res := &RegisterParticipationResponse{}
	res.Body.Notice = models.Notice{Text: "Inscription ajoutée", Category: models.NoticeSuccess}
	res.Body.ID = participation.ID
	return res, nil
}
