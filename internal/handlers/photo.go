package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/assoclub/club-api/internal/models"
	"github.com/assoclub/club-api/internal/photos"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// PhotoHandler serves the multipart photo upload. It is a plain chi
// handler because the upload is its own request: a rejected file can
// never abort a member create or edit.
type PhotoHandler struct {
	db    *gorm.DB
	store *photos.Store
}

func NewPhotoHandler(db *gorm.DB, store *photos.Store) *PhotoHandler {
	return &PhotoHandler{db: db, store: store}
}

type photoUploadResponse struct {
	Notice models.Notice `json:"notice"`
	Photo  string        `json:"photo,omitempty"`
}

func (h *PhotoHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, photoUploadResponse{
			Notice: models.Notice{Text: "Identifiant invalide", Category: models.NoticeError},
		})
		return
	}

	var member models.Member
	if err := h.db.First(&member, id).Error; err != nil {
		writeJSON(w, http.StatusNotFound, photoUploadResponse{
			Notice: models.Notice{Text: "Membre introuvable", Category: models.NoticeError},
		})
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, photoUploadResponse{
			Notice: models.Notice{Text: "Aucun fichier reçu", Category: models.NoticeError},
		})
		return
	}
	defer file.Close()

	name, err := h.store.Save(file, header)
	if err != nil {
		if errors.Is(err, photos.ErrBadExtension) || errors.Is(err, photos.ErrTooLarge) {
			writeJSON(w, http.StatusUnprocessableEntity, photoUploadResponse{
				Notice: models.Notice{Text: "Fichier refusé : extension ou taille invalide", Category: models.NoticeError},
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, photoUploadResponse{
			Notice: models.Notice{Text: "Échec de l'enregistrement du fichier", Category: models.NoticeError},
		})
		return
	}

	if err := h.db.Model(&member).Update("photo", name).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, photoUploadResponse{
			Notice: models.Notice{Text: "Échec de la mise à jour du membre", Category: models.NoticeError},
		})
		return
	}

	writeJSON(w, http.StatusOK, photoUploadResponse{
		Notice: models.Notice{Text: "Photo mise à jour", Category: models.NoticeSuccess},
		Photo:  name,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
