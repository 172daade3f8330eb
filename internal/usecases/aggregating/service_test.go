package aggregating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// Data de referência fixa: 10 de fevereiro de 2024. A janela de 12 meses
// cobre de março de 2023 a fevereiro de 2024.
var referenceDate = time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return referenceDate
}

func TestMonthlyTotals_SerieDensaDe12Meses(t *testing.T) {
	ctrl := gomock.NewController(t)
	transactionRepo := mocks.NewMockSalesTransactionRepository(ctrl)

	service := NewService(transactionRepo).WithClock(fixedClock)

	windowStart := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	// Resultado esparso: apenas dois meses têm vendas.
	transactionRepo.EXPECT().
		SumByMonth(7, windowStart, referenceDate).
		Return([]*domain.MonthTotal{
			{Year: 2023, Month: 3, Total: 10.5},
			{Year: 2024, Month: 1, Total: 50},
		}, nil)

	points, err := service.MonthlyTotals(7)

	assert.NoError(t, err)
	assert.Len(t, points, WindowMonths)

	// Ordem cronológica crescente, do mês mais antigo ao corrente.
	assert.Equal(t, 2023, points[0].Year)
	assert.Equal(t, 3, points[0].Month)
	assert.Equal(t, 2024, points[11].Year)
	assert.Equal(t, 2, points[11].Month)

	for i := 1; i < len(points); i++ {
		previous := points[i-1].Year*100 + points[i-1].Month
		current := points[i].Year*100 + points[i].Month
		assert.Greater(t, current, previous, "a série deve ser estritamente crescente")
	}

	// Meses com vendas carregam o total; os demais entram zerados.
	for _, point := range points {
		switch {
		case point.Year == 2023 && point.Month == 3:
			assert.Equal(t, 10.5, point.Total)
		case point.Year == 2024 && point.Month == 1:
			assert.Equal(t, 50.0, point.Total)
		default:
			assert.Zero(t, point.Total, "mês %d/%d deveria ser zero", point.Month, point.Year)
		}
	}
}

func TestMonthlyTotals_VendedorSemVendas(t *testing.T) {
	ctrl := gomock.NewController(t)
	transactionRepo := mocks.NewMockSalesTransactionRepository(ctrl)

	service := NewService(transactionRepo).WithClock(fixedClock)

	// Vendedor sem contas (ou sem vendas) recebe a série inteira de zeros,
	// nunca uma série vazia.
	transactionRepo.EXPECT().
		SumByMonth(99, gomock.Any(), gomock.Any()).
		Return([]*domain.MonthTotal{}, nil)

	points, err := service.MonthlyTotals(99)

	assert.NoError(t, err)
	assert.Len(t, points, WindowMonths)
	for _, point := range points {
		assert.Zero(t, point.Total)
	}
}

func TestMonthlyTotals_ViradaDeAno(t *testing.T) {
	ctrl := gomock.NewController(t)
	transactionRepo := mocks.NewMockSalesTransactionRepository(ctrl)

	// Em janeiro a janela começa em fevereiro do ano anterior.
	january := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	service := NewService(transactionRepo).WithClock(func() time.Time { return january })

	transactionRepo.EXPECT().
		SumByMonth(7, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), january).
		Return(nil, nil)

	points, err := service.MonthlyTotals(7)

	assert.NoError(t, err)
	assert.Len(t, points, WindowMonths)
	assert.Equal(t, 2024, points[0].Year)
	assert.Equal(t, 2, points[0].Month)
	assert.Equal(t, 2025, points[11].Year)
	assert.Equal(t, 1, points[11].Month)
}

func TestMonthlyTotals_ArredondamentoDosTotais(t *testing.T) {
	ctrl := gomock.NewController(t)
	transactionRepo := mocks.NewMockSalesTransactionRepository(ctrl)

	service := NewService(transactionRepo).WithClock(fixedClock)

	transactionRepo.EXPECT().
		SumByMonth(7, gomock.Any(), gomock.Any()).
		Return([]*domain.MonthTotal{
			{Year: 2024, Month: 2, Total: 1234.56789},
		}, nil)

	points, err := service.MonthlyTotals(7)

	assert.NoError(t, err)
	assert.Equal(t, 1234.57, points[11].Total)
}

func TestMonthlyTotals_ErroDoRepositorio(t *testing.T) {
	ctrl := gomock.NewController(t)
	transactionRepo := mocks.NewMockSalesTransactionRepository(ctrl)

	service := NewService(transactionRepo).WithClock(fixedClock)

	transactionRepo.EXPECT().
		SumByMonth(7, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	points, err := service.MonthlyTotals(7)

	assert.Error(t, err)
	assert.Nil(t, points)
}
