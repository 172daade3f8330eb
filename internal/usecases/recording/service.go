package recording

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authorizing"
)

// Mensagens de validação de formato, anexadas por registro assim como as
// rejeições do guard.
const (
	MissingAccountMessage  = "account_id is required"
	MissingSaleDateMessage = "sale_date is required"
	InvalidSaleDateMessage = "sale_date must be a valid date in YYYY-MM-DD format"
)

// TxRunner executa uma função dentro de uma transação do banco. Satisfeito
// por postgres.Connection; substituível nos testes.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// Recorder é o caminho de escrita: valida o formato do lote, submete os
// candidatos ao guard e persiste apenas os aceitos, preservando a semântica
// de lote parcial — um registro rejeitado nunca derruba os demais.
type Recorder interface {
	CreateBatch(ctx context.Context, actorID int, inputs []*domain.SalesTransactionInput) (*domain.BatchResult, error)
}

type Service struct {
	guard           authorizing.Guard
	transactionRepo repository.SalesTransactionRepository
	auditRepo       repository.InsertAuditRepository
	txRunner        TxRunner
}

func NewService(
	guard authorizing.Guard,
	transactionRepo repository.SalesTransactionRepository,
	auditRepo repository.InsertAuditRepository,
	txRunner TxRunner,
) Recorder {
	return &Service{
		guard:           guard,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		txRunner:        txRunner,
	}
}

func (s *Service) CreateBatch(ctx context.Context, actorID int, inputs []*domain.SalesTransactionInput) (*domain.BatchResult, error) {
	if len(inputs) == 0 {
		return nil, errors.New("o lote não pode ser vazio")
	}

	result := &domain.BatchResult{
		Total:   len(inputs),
		Results: make([]*domain.RecordResult, len(inputs)),
	}
	for i := range result.Results {
		result.Results[i] = &domain.RecordResult{Index: i}
	}

	// Primeiro a validação de formato: registros malformados são rejeitados
	// individualmente e nem chegam ao guard.
	candidates := make([]*domain.SalesTransaction, 0, len(inputs))
	candidateIdx := make([]int, 0, len(inputs))

	for i, input := range inputs {
		if message, ok := validateInput(input); !ok {
			result.Results[i].Message = message
			continue
		}

		saleDate, _ := time.Parse(time.DateOnly, input.SaleDate)
		candidates = append(candidates, &domain.SalesTransaction{
			AccountID: input.AccountID,
			SaleDate:  saleDate,
			Amount:    input.Amount,
		})
		candidateIdx = append(candidateIdx, i)
	}

	outcomes, err := s.guard.ValidateBatch(actorID, candidates)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao validar lote no guard de criação")
	}

	accepted := make([]*domain.SalesTransaction, 0, len(candidates))
	acceptedIdx := make([]int, 0, len(candidates))

	for i, outcome := range outcomes {
		originalIdx := candidateIdx[i]
		if outcome.Rejected {
			result.Results[originalIdx].Message = outcome.Message
			continue
		}
		accepted = append(accepted, candidates[i])
		acceptedIdx = append(acceptedIdx, originalIdx)
	}

	// Persiste somente os aceitos, em uma transação. O guard já rodou: se o
	// insert falhar, nada do lote é gravado.
	if len(accepted) > 0 {
		err = s.txRunner.RunInTransaction(ctx, func(tx *sql.Tx) error {
			ids, err := s.transactionRepo.InsertBatchTx(tx, accepted)
			if err != nil {
				return err
			}

			for i, id := range ids {
				result.Results[acceptedIdx[i]].Created = true
				result.Results[acceptedIdx[i]].ID = id
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "erro ao persistir lote de sales transactions")
		}
	}

	result.Accepted = len(accepted)
	result.Rejected = result.Total - result.Accepted

	// O audit é melhor esforço: falha na gravação não desfaz o lote.
	if err := s.auditRepo.Save(&domain.InsertAuditEntry{
		ActorID:  actorID,
		Total:    result.Total,
		Accepted: result.Accepted,
		Rejected: result.Rejected,
	}); err != nil {
		logrus.WithError(err).WithField("actor_id", actorID).
			Warn("recording: falha ao gravar audit do lote")
	}

	logrus.WithFields(logrus.Fields{
		"actor_id": actorID,
		"total":    result.Total,
		"accepted": result.Accepted,
		"rejected": result.Rejected,
	}).Info("recording: lote processado")

	return result, nil
}

func validateInput(input *domain.SalesTransactionInput) (string, bool) {
	if input.AccountID == "" {
		return MissingAccountMessage, false
	}

	if input.SaleDate == "" {
		return MissingSaleDateMessage, false
	}

	if _, err := time.Parse(time.DateOnly, input.SaleDate); err != nil {
		return InvalidSaleDateMessage, false
	}

	// amount sem restrição de sinal: devoluções/ajustes entram negativos.
	return "", true
}
