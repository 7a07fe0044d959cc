package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/crm-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/crm-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/crm-analytics-api/pkg/log"
)

// DefaultWindowDays é a janela padrão quando o parâmetro não é informado
const DefaultWindowDays = 30

// parseWindowDays lê o parâmetro window_days da query string
func parseWindowDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("window_days")
	if raw == "" {
		return DefaultWindowDays, nil
	}

	windowDays, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("window_days inválido: %q", raw)
	}

	return windowDays, nil
}

// GetDashboard computa o relatório completo do painel para a janela solicitada
func GetDashboard(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		windowDays, err := parseWindowDays(r)
		if err != nil {
			logger.WithField("window_days", r.URL.Query().Get("window_days")).
				Warn("analytics: parâmetro window_days inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		logger.WithField("window_days", windowDays).Info("analytics: computando relatório do painel")

		report, err := service.BuildDashboard(windowDays)
		if err != nil {
			if errors.Is(err, analyzing.ErrUnsupportedWindow) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, err.Error(), map[string]any{
					"allowed_windows": analyzing.AllowedWindows,
				})
				return
			}

			logger.WithFields(log.Fields{
				"window_days": windowDays,
				"error":       err.Error(),
			}).Error("analytics: falha ao computar o relatório do painel")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao computar o relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao codificar a resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// PreviewReport computa um relatório a partir de registros enviados no corpo
// da requisição, sem tocar no banco. Útil para simulações e importações.
func PreviewReport(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		windowDays, err := parseWindowDays(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var raw analyzing.RawSnapshot
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			logger.WithField("error", err.Error()).Warn("analytics: corpo de preview inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		report, err := service.BuildPreview(raw, windowDays)
		if err != nil {
			if errors.Is(err, analyzing.ErrUnsupportedWindow) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, err.Error(), map[string]any{
					"allowed_windows": analyzing.AllowedWindows,
				})
				return
			}

			logger.WithField("error", err.Error()).Error("analytics: falha ao computar o preview")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao computar o relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao codificar a resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// ExportReport exporta o relatório da janela solicitada em JSON ou CSV
func ExportReport(service reporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		windowDays, err := parseWindowDays(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		format := r.URL.Query().Get("format")

		logger.WithFields(log.Fields{
			"window_days": windowDays,
			"format":      format,
		}).Info("analytics: exportando relatório")

		payload, contentType, err := service.Export(windowDays, format)
		if err != nil {
			switch {
			case errors.Is(err, analyzing.ErrUnsupportedWindow):
				apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, err.Error(), map[string]any{
					"allowed_windows": analyzing.AllowedWindows,
				})

			case errors.Is(err, reporting.ErrUnsupportedFormat):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), map[string]any{
					"allowed_formats": []string{reporting.FormatJSON, reporting.FormatCSV},
				})

			default:
				logger.WithField("error", err.Error()).Error("analytics: falha ao exportar o relatório")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao exportar o relatório", nil)
			}
			return
		}

		if format == reporting.FormatCSV {
			filename := fmt.Sprintf("relatorio-%dd.csv", windowDays)
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		}

		w.Header().Set("Content-Type", contentType)
		if _, err := w.Write(payload); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao enviar o relatório exportado")
		}
	})
}

// GetReportSnapshots retorna os snapshots pré-computados. Com window_days na
// query devolve apenas o snapshot mais recente daquela janela.
func GetReportSnapshots(service reporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var payload any

		if raw := r.URL.Query().Get("window_days"); raw != "" {
			windowDays, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, fmt.Sprintf("window_days inválido: %q", raw), nil)
				return
			}

			snapshot, err := service.GetSnapshot(windowDays)
			if err != nil {
				if errors.Is(err, analyzing.ErrUnsupportedWindow) {
					apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, err.Error(), map[string]any{
						"allowed_windows": analyzing.AllowedWindows,
					})
					return
				}

				logger.WithField("error", err.Error()).Error("analytics: falha ao buscar snapshot")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshot", nil)
				return
			}

			if snapshot == nil {
				apiErrors.WriteError(w, apiErrors.ErrSnapshotMissing, "Snapshot ainda não computado para esta janela", map[string]any{
					"window_days": windowDays,
				})
				return
			}

			payload = snapshot
		} else {
			snapshots, err := service.ListSnapshots()
			if err != nil {
				logger.WithField("error", err.Error()).Error("analytics: falha ao listar snapshots")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshots", nil)
				return
			}

			payload = snapshots
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao codificar a resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
