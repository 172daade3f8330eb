package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/accounting"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
)

type CreateAccountRequest struct {
	Name    string `json:"name"`
	OwnerID int    `json:"owner_id"`
}

type TransferOwnerRequest struct {
	OwnerID int `json:"owner_id"`
}

// CreateAccount cria uma conta já atribuída a um dono.
func CreateAccount(service accounting.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		account, err := service.CreateAccount(req.Name, req.OwnerID)
		if err != nil {
			writeAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(account); err != nil {
			logrus.Error(err)
		}
	}
}

// GetAccount retorna uma conta por ID.
func GetAccount(service accounting.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		account, err := service.GetAccount(accountID)
		if err != nil {
			writeAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(account); err != nil {
			logrus.Error(err)
		}
	}
}

// ListAccounts lista as contas, com filtro opcional por dono (owner_id).
func ListAccounts(service accounting.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ownerID *int
		if ownerParam := r.URL.Query().Get("owner_id"); ownerParam != "" {
			id, err := strconv.Atoi(ownerParam)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Identificador de dono inválido", nil)
				return
			}
			ownerID = &id
		}

		accounts, err := service.ListAccounts(ownerID)
		if err != nil {
			writeAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(accounts); err != nil {
			logrus.Error(err)
		}
	}
}

// TransferAccountOwner transfere a conta para outro usuário. A atribuição
// das vendas históricas passa a seguir o novo dono na próxima consulta.
func TransferAccountOwner(service accounting.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		var req TransferOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.TransferOwner(accountID, req.OwnerID); err != nil {
			writeAccountError(w, err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"owner_id":   req.OwnerID,
		}).Info("accounts: dono transferido")

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListAccountTransactions lista as vendas de uma conta no período informado
// (start_date/end_date em YYYY-MM-DD; padrão de 12 meses quando ausentes).
func ListAccountTransactions(service accounting.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		transactions, err := service.ListTransactions(
			userClaims.UserID,
			accountID,
			r.URL.Query().Get("start_date"),
			r.URL.Query().Get("end_date"),
		)
		if err != nil {
			writeAccountError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"account_id": accountID,
			"total":      len(transactions),
		}).Info("accounts: vendas da conta listadas")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(transactions); err != nil {
			logger.WithError(err).Error("accounts: erro ao codificar resposta")
		}
	})
}

// writeAccountError traduz os erros da administração de contas para o
// formato padrão da API, sem vazar detalhes internos.
func writeAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounting.ErrMissingName):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, accounting.ErrInvalidPeriod):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, accounting.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)
	case errors.Is(err, accounting.ErrOwnerNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, accounting.ErrPermissionDenied):
		apiErrors.WriteError(w, apiErrors.ErrPermissionDenied, err.Error(), nil)
	default:
		logrus.WithError(err).Error("accounts: falha interna")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, accounting.ErrAccountUnavailable.Error(), nil)
	}
}
