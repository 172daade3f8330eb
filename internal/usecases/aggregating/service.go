package aggregating

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

// WindowMonths é o tamanho fixo da janela de agregação: o mês corrente e os
// onze anteriores.
const WindowMonths = 12

// Aggregator calcula a série mensal de vendas de um vendedor, atribuída
// pelo dono ATUAL de cada conta.
type Aggregator interface {
	MonthlyTotals(subjectUserID int) ([]domain.MonthlyPoint, error)
}

type Service struct {
	transactionRepo repository.SalesTransactionRepository

	// now é injetável para fixar a data de referência nos testes.
	now func() time.Time
}

func NewService(transactionRepo repository.SalesTransactionRepository) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// WithClock substitui a fonte de tempo. Usado em testes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// MonthlyTotals retorna sempre exatamente 12 pontos, em ordem cronológica
// crescente, um por mês da janela. Meses sem vendas entram com total zero;
// um vendedor sem contas recebe uma série inteira de zeros, nunca uma série
// vazia. Uma única query agregada resolve a janela toda, independente de
// quantas contas o vendedor possui.
func (s *Service) MonthlyTotals(subjectUserID int) ([]domain.MonthlyPoint, error) {
	now := s.now()
	windowStart := utils.FirstDayOfMonth(now).AddDate(0, -(WindowMonths - 1), 0)

	totals, err := s.transactionRepo.SumByMonth(subjectUserID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar vendas mensais do usuário %d: %w", subjectUserID, err)
	}

	// Indexa o resultado esparso por (ano, mês) para o preenchimento denso.
	byMonth := make(map[int]float64, len(totals))
	for _, total := range totals {
		byMonth[total.Year*100+total.Month] = total.Total
	}

	points := make([]domain.MonthlyPoint, 0, WindowMonths)
	for i := 0; i < WindowMonths; i++ {
		month := windowStart.AddDate(0, i, 0)
		points = append(points, domain.MonthlyPoint{
			Year:  month.Year(),
			Month: int(month.Month()),
			Total: utils.RoundWithTwoDecimalPlace(byMonth[month.Year()*100+int(month.Month())]),
		})
	}

	logrus.WithFields(logrus.Fields{
		"subject_user_id":  subjectUserID,
		"window_start":     windowStart.Format(time.DateOnly),
		"months_with_data": len(totals),
	}).Debug("aggregating: série mensal calculada")

	return points, nil
}
