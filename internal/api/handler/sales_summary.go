package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
)

// GetMonthlySalesSummary retorna a série dos últimos 12 meses do vendedor
// indicado em user_id, atribuída pelo dono atual de cada conta.
func GetMonthlySalesSummary(service summarizing.Summarizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		subjectParam := r.URL.Query().Get("user_id")
		if subjectParam == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar o vendedor no parâmetro user_id", nil)
			return
		}

		subjectUserID, err := strconv.Atoi(subjectParam)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Identificador de vendedor inválido", nil)
			return
		}

		series, err := service.GetMonthlyTotals(userClaims.UserID, subjectUserID)
		if err != nil {
			writeSummaryError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"subject_user_id": subjectUserID,
			"points":          len(series.Points),
		}).Info("sales-summary: série mensal calculada")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(series); err != nil {
			logger.WithError(err).Error("sales-summary: erro ao codificar resposta")
		}
	})
}

// GetSalesReps retorna os vendedores elegíveis para o seletor da UI.
func GetSalesReps(service summarizing.Summarizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		options, err := service.GetActiveUsers(userClaims.UserID)
		if err != nil {
			writeSummaryError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"total_reps": len(options),
		}).Info("sales-reps: vendedores listados")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(options); err != nil {
			logger.WithError(err).Error("sales-reps: erro ao codificar resposta")
		}
	})
}

// writeSummaryError traduz os erros do gateway para mensagens seguras, sem
// vazar identificadores internos ou texto de query.
func writeSummaryError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, summarizing.ErrMissingSubject):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, summarizing.ErrPermissionDenied):
		apiErrors.WriteError(w, apiErrors.ErrPermissionDenied, err.Error(), nil)
	default:
		logger.WithError(err).Error("sales-summary: falha interna")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, summarizing.ErrSummaryUnavailable.Error(), nil)
	}
}
