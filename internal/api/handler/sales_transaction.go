package handler

import (
	"net/http"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/recording"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
)

type CreateSalesTransactionsRequest struct {
	Transactions []*domain.SalesTransactionInput `json:"transactions"`
}

// CreateSalesTransactions recebe um lote de vendas e devolve o desfecho
// registro a registro. Rejeições do guard voltam como mensagens anexadas ao
// registro; um registro rejeitado não impede a criação dos demais.
func CreateSalesTransactions(service recording.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req CreateSalesTransactionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if len(req.Transactions) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O lote de vendas não pode ser vazio", nil)
			return
		}

		result, err := service.CreateBatch(r.Context(), userClaims.UserID, req.Transactions)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"actor_id":   userClaims.UserID,
				"batch_size": len(req.Transactions),
			}).Error("sales-transactions: erro ao processar lote")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar vendas", nil)
			return
		}

		logger.WithFields(log.Fields{
			"actor_id": userClaims.UserID,
			"total":    result.Total,
			"accepted": result.Accepted,
			"rejected": result.Rejected,
		}).Info("sales-transactions: lote processado")

		w.Header().Set("Content-Type", "application/json")
		if result.Rejected > 0 {
			w.WriteHeader(http.StatusMultiStatus)
		} else {
			w.WriteHeader(http.StatusCreated)
		}

		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("sales-transactions: erro ao codificar resposta")
		}
	})
}
