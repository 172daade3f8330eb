package recording

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authorizing"
	authorizingmocks "github.com/vfg2006/sales-tracker-api/internal/usecases/authorizing/mocks"
	"go.uber.org/mock/gomock"
)

// fakeTxRunner executa a função diretamente, sem banco. O *sql.Tx nulo é
// suficiente porque o repositório também está mockado.
type fakeTxRunner struct {
	err   error
	calls int
}

func (f *fakeTxRunner) RunInTransaction(_ context.Context, fn func(*sql.Tx) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

func newTestService(t *testing.T) (*Service, *authorizingmocks.MockGuard, *mocks.MockSalesTransactionRepository, *mocks.MockInsertAuditRepository, *fakeTxRunner) {
	ctrl := gomock.NewController(t)

	guard := authorizingmocks.NewMockGuard(ctrl)
	transactionRepo := mocks.NewMockSalesTransactionRepository(ctrl)
	auditRepo := mocks.NewMockInsertAuditRepository(ctrl)
	txRunner := &fakeTxRunner{}

	service := &Service{
		guard:           guard,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		txRunner:        txRunner,
	}

	return service, guard, transactionRepo, auditRepo, txRunner
}

func acceptAll(n int) []authorizing.Outcome {
	outcomes := make([]authorizing.Outcome, n)
	for i := range outcomes {
		outcomes[i].Index = i
	}
	return outcomes
}

func TestCreateBatch_LoteVazio(t *testing.T) {
	service, _, _, _, _ := newTestService(t)

	result, err := service.CreateBatch(context.Background(), 7, nil)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCreateBatch_ValidacaoDeFormato(t *testing.T) {
	tests := []struct {
		name        string
		input       *domain.SalesTransactionInput
		wantMessage string
	}{
		{
			name:        "Sem conta",
			input:       &domain.SalesTransactionInput{SaleDate: "2024-01-15", Amount: 10},
			wantMessage: MissingAccountMessage,
		},
		{
			name:        "Sem data",
			input:       &domain.SalesTransactionInput{AccountID: "ACC001", Amount: 10},
			wantMessage: MissingSaleDateMessage,
		},
		{
			name:        "Data em formato inválido",
			input:       &domain.SalesTransactionInput{AccountID: "ACC001", SaleDate: "15/01/2024", Amount: 10},
			wantMessage: InvalidSaleDateMessage,
		},
		{
			name:        "Data inexistente",
			input:       &domain.SalesTransactionInput{AccountID: "ACC001", SaleDate: "2024-02-30", Amount: 10},
			wantMessage: InvalidSaleDateMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, guard, _, auditRepo, txRunner := newTestService(t)

			// Registro malformado nem chega ao guard: o lote de candidatos
			// vai vazio.
			guard.EXPECT().
				ValidateBatch(7, gomock.Len(0)).
				Return([]authorizing.Outcome{}, nil)

			auditRepo.EXPECT().Save(gomock.Any()).Return(nil)

			result, err := service.CreateBatch(context.Background(), 7, []*domain.SalesTransactionInput{tt.input})

			assert.NoError(t, err)
			assert.Equal(t, 1, result.Total)
			assert.Equal(t, 0, result.Accepted)
			assert.Equal(t, 1, result.Rejected)
			assert.False(t, result.Results[0].Created)
			assert.Equal(t, tt.wantMessage, result.Results[0].Message)
			assert.Zero(t, txRunner.calls, "nada a persistir, a transação não deve abrir")
		})
	}
}

func TestCreateBatch_LoteParcial(t *testing.T) {
	service, guard, transactionRepo, auditRepo, txRunner := newTestService(t)

	inputs := []*domain.SalesTransactionInput{
		{AccountID: "ACC001", SaleDate: "2024-01-15", Amount: 100.50},
		{AccountID: "", SaleDate: "2024-01-16", Amount: 20},
		{AccountID: "ACC999", SaleDate: "2024-01-17", Amount: 30},
		{AccountID: "ACC002", SaleDate: "2024-01-18", Amount: 40},
	}

	// O registro 1 cai na validação de formato; os índices do guard passam a
	// ser relativos aos candidatos restantes (0, 2 e 3 originais).
	guard.EXPECT().
		ValidateBatch(7, gomock.Len(3)).
		Return([]authorizing.Outcome{
			{Index: 0},
			{Index: 1, Rejected: true, Message: authorizing.OwnershipErrorMessage},
			{Index: 2},
		}, nil)

	transactionRepo.EXPECT().
		InsertBatchTx(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ *sql.Tx, transactions []*domain.SalesTransaction) ([]int, error) {
			assert.Equal(t, "ACC001", transactions[0].AccountID)
			assert.Equal(t, "ACC002", transactions[1].AccountID)
			assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), transactions[0].SaleDate)
			return []int{101, 102}, nil
		})

	auditRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(entry *domain.InsertAuditEntry) error {
			assert.Equal(t, 7, entry.ActorID)
			assert.Equal(t, 4, entry.Total)
			assert.Equal(t, 2, entry.Accepted)
			assert.Equal(t, 2, entry.Rejected)
			return nil
		})

	result, err := service.CreateBatch(context.Background(), 7, inputs)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 2, result.Rejected)
	assert.Equal(t, 1, txRunner.calls)

	// Aceitos carregam os IDs gerados, na ordem de inserção.
	assert.True(t, result.Results[0].Created)
	assert.Equal(t, 101, result.Results[0].ID)
	assert.True(t, result.Results[3].Created)
	assert.Equal(t, 102, result.Results[3].ID)

	// Rejeitados carregam a mensagem específica e nunca um ID.
	assert.False(t, result.Results[1].Created)
	assert.Equal(t, MissingAccountMessage, result.Results[1].Message)
	assert.False(t, result.Results[2].Created)
	assert.Equal(t, authorizing.OwnershipErrorMessage, result.Results[2].Message)
}

func TestCreateBatch_ErroDoGuard(t *testing.T) {
	service, guard, _, _, txRunner := newTestService(t)

	guard.EXPECT().
		ValidateBatch(7, gomock.Any()).
		Return(nil, errors.New("connection refused"))

	result, err := service.CreateBatch(context.Background(), 7, []*domain.SalesTransactionInput{
		{AccountID: "ACC001", SaleDate: "2024-01-15", Amount: 10},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Zero(t, txRunner.calls)
}

func TestCreateBatch_ErroNaPersistencia(t *testing.T) {
	service, guard, transactionRepo, _, _ := newTestService(t)

	guard.EXPECT().
		ValidateBatch(7, gomock.Any()).
		Return(acceptAll(1), nil)

	transactionRepo.EXPECT().
		InsertBatchTx(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("deadlock detected"))

	result, err := service.CreateBatch(context.Background(), 7, []*domain.SalesTransactionInput{
		{AccountID: "ACC001", SaleDate: "2024-01-15", Amount: 10},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCreateBatch_FalhaNoAuditNaoDerrubaOLote(t *testing.T) {
	service, guard, transactionRepo, auditRepo, _ := newTestService(t)

	guard.EXPECT().
		ValidateBatch(7, gomock.Any()).
		Return(acceptAll(1), nil)

	transactionRepo.EXPECT().
		InsertBatchTx(gomock.Any(), gomock.Any()).
		Return([]int{101}, nil)

	auditRepo.EXPECT().
		Save(gomock.Any()).
		Return(errors.New("disk full"))

	result, err := service.CreateBatch(context.Background(), 7, []*domain.SalesTransactionInput{
		{AccountID: "ACC001", SaleDate: "2024-01-15", Amount: 10},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
	assert.True(t, result.Results[0].Created)
}
