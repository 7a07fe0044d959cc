package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/crm-analytics-api/pkg/utils"
)

// ListEvents lista os compromissos do calendário, com filtro opcional de
// período via from/to (formato 2006-01-02). Eventos sem data entram sempre.
func ListEvents(repo repository.EventRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := utils.ParseDate(r.URL.Query().Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro from inválido", nil)
			return
		}

		to, err := utils.ParseDate(r.URL.Query().Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro to inválido", nil)
			return
		}

		events, err := repo.List()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar eventos", nil)
			return
		}

		filtered := make([]domain.EventRecord, 0, len(events))
		for _, event := range events {
			when := event.When()
			if when != nil {
				if !from.IsZero() && when.Before(*from) {
					continue
				}
				if !to.IsZero() && when.After(*to) {
					continue
				}
			}
			filtered = append(filtered, event)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(filtered); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// CreateEvent cria um novo compromisso
func CreateEvent(repo repository.EventRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateEvent")

		var event domain.EventRecord
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if event.Title == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Título do evento é obrigatório", nil)
			return
		}

		if event.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
				return
			}
			event.ID = id
		}

		if err := repo.Create(&event); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar evento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(event); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteEvent remove um compromisso por ID
func DeleteEvent(repo repository.EventRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do evento não fornecido", nil)
			return
		}

		if err := repo.Delete(id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Evento não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover evento", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
