package handlers

import (
	"context"

	"github.com/assoclub/club-api/internal/auth"
	"github.com/assoclub/club-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type ReportHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewReportHandler(db *gorm.DB, authHandler *auth.AuthHandler) *ReportHandler {
	return &ReportHandler{db: db, authHandler: authHandler}
}

type DashboardRequest struct {
	auth.AuthInput
}

type RecentMember struct {
	Prenom          string `json:"prenom"`
	Nom             string `json:"nom"`
	Email           string `json:"email"`
	DateInscription string `json:"date_inscription"`
}

type RecentEvent struct {
	Titre string `json:"titre"`
	Date  string `json:"date"`
	Lieu  string `json:"lieu"`
}

type DashboardResponse struct {
	Body struct {
		CountMembres        int64          `json:"count_membres"`
		CountEvents         int64          `json:"count_events"`
		CountParticipations int64          `json:"count_participations"`
		LastMembres         []RecentMember `json:"last_membres"`
		LastEvents          []RecentEvent  `json:"last_events"`
	}
}

// HandleDashboard returns the summary counts and latest entries shown
// on the dashboard.
func (h *ReportHandler) HandleDashboard(ctx context.Context, input *DashboardRequest) (*DashboardResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	res := &DashboardResponse{}

	if err := h.db.Model(&models.Member{}).Where("active = ?", true).Count(&res.Body.CountMembres).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if err := h.db.Model(&models.Event{}).Count(&res.Body.CountEvents).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if err := h.db.Model(&models.Participation{}).Count(&res.Body.CountParticipations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	res.Body.LastMembres = []RecentMember{}
	err := h.db.Model(&models.Member{}).
		Select("prenom, nom, email, date_inscription").
		Where("active = ?", true).
		Order("id DESC").
		Limit(5).
		Scan(&res.Body.LastMembres).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	res.Body.LastEvents = []RecentEvent{}
	err = h.db.Model(&models.Event{}).
		Select("titre, date, lieu").
		Order("id DESC").
		Limit(5).
		Scan(&res.Body.LastEvents).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	return res, nil
}

type DashboardStatsRequest struct {
	auth.AuthInput
}

// EventAttendance is keyed by event ID; titles are not unique, so a
// title-keyed map would silently merge same-named events.
type EventAttendance struct {
	ID    uint   `json:"id"`
	Titre string `json:"titre"`
	Count int64  `json:"count"`
}

type DashboardStatsResponse struct {
	Body struct {
		MembresMois    map[string]int64  `json:"membres_mois"`
		Participations []EventAttendance `json:"participations"`
	}
}

// HandleDashboardStats aggregates signups per "YYYY-MM" month across
// all members (soft-deleted included) and attendance per event, with
// zero-participation events reported as 0 through the left join.
func (h *ReportHandler) HandleDashboardStats(ctx context.Context, input *DashboardStatsRequest) (*DashboardStatsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var monthRows []struct {
		Mois  string
		Total int64
	}
	err := h.db.Model(&models.Member{}).
		Select("substr(date_inscription, 1, 7) AS mois, COUNT(*) AS total").
		Group("mois").
		Scan(&monthRows).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	attendance := []EventAttendance{}
	err = h.db.Table("evenements").
		Select("evenements.id AS id, evenements.titre AS titre, COUNT(participations.id) AS count").
		Joins("LEFT JOIN participations ON participations.id_evenement = evenements.id").
		Group("evenements.id").
		Order("evenements.id").
		Scan(&attendance).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	res := &DashboardStatsResponse{}
	res.Body.MembresMois = make(map[string]int64, len(monthRows))
	for _, row := range monthRows {
		res.Body.MembresMois[row.Mois] = row.Total
	}
	res.Body.Participations = attendance
	return res, nil
}

type CalendarRequest struct {
	auth.AuthInput
}

type CalendarEntry struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
}

type CalendarResponse struct {
	Body []CalendarEntry
}

// HandleCalendar feeds the calendar view: one entry per event, no
// filtering.
func (h *ReportHandler) HandleCalendar(ctx context.Context, input *CalendarRequest) (*CalendarResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var events []models.Event
	if err := h.db.Order("id").Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	res := &CalendarResponse{Body: make([]CalendarEntry, 0, len(events))}
	for _, e := range events {
		res.Body = append(res.Body, CalendarEntry{ID: e.ID, Title: e.Titre, Start: e.Date})
	}
	return res, nil
}
