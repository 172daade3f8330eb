package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const (
	salesTransactionsTable = "sales_transactions st"
)

type SalesTransactionRepository interface {
	// InsertBatchTx insere os registros aceitos em um único INSERT
	// multi-VALUES dentro da transação do chamador e retorna os IDs
	// gerados na mesma ordem.
	InsertBatchTx(tx *sql.Tx, transactions []*domain.SalesTransaction) ([]int, error)
	// SumByMonth retorna a soma de amount agrupada por (ano, mês) para as
	// vendas de contas cujo dono ATUAL é ownerID, dentro da janela. Uma
	// única query agregada independente do número de contas do dono.
	SumByMonth(ownerID int, startDate, endDate time.Time) ([]*domain.MonthTotal, error)
	ListByAccountID(accountID string, startDate, endDate time.Time) ([]*domain.SalesTransaction, error)
}

type salesTransactionRepository struct {
	conn *postgres.Connection
}

func NewSalesTransactionRepository(conn *postgres.Connection) SalesTransactionRepository {
	return &salesTransactionRepository{
		conn: conn,
	}
}

func (r *salesTransactionRepository) InsertBatchTx(tx *sql.Tx, transactions []*domain.SalesTransaction) ([]int, error) {
	if len(transactions) == 0 {
		return nil, nil
	}

	query := squirrel.StatementBuilder.
		Insert("sales_transactions").
		Columns("account_id", "sale_date", "amount").
		PlaceholderFormat(squirrel.Dollar)

	for _, transaction := range transactions {
		query = query.Values(
			transaction.AccountID,
			transaction.SaleDate.Format(time.DateOnly),
			transaction.Amount,
		)
	}

	query = query.Suffix("RETURNING id")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := tx.Query(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0, len(transactions))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear ID gerado: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}

func (r *salesTransactionRepository) SumByMonth(ownerID int, startDate, endDate time.Time) ([]*domain.MonthTotal, error) {
	query, args, err := squirrel.
		Select(
			"EXTRACT(YEAR FROM st.sale_date)::int AS year",
			"EXTRACT(MONTH FROM st.sale_date)::int AS month",
			"COALESCE(SUM(st.amount), 0) AS total",
		).
		From(salesTransactionsTable).
		Join("accounts a ON st.account_id = a.id").
		Where(squirrel.Eq{"a.owner_id": ownerID}).
		Where(squirrel.GtOrEq{"st.sale_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"st.sale_date": endDate.Format(time.DateOnly)}).
		GroupBy("year", "month").
		OrderBy("year ASC", "month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	totals := make([]*domain.MonthTotal, 0)
	for rows.Next() {
		total := &domain.MonthTotal{}
		if err := rows.Scan(&total.Year, &total.Month, &total.Total); err != nil {
			return nil, fmt.Errorf("erro ao escanear total mensal: %w", err)
		}
		totals = append(totals, total)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return totals, nil
}

func (r *salesTransactionRepository) ListByAccountID(accountID string, startDate, endDate time.Time) ([]*domain.SalesTransaction, error) {
	query, args, err := squirrel.
		Select("st.id, st.account_id, st.sale_date, st.amount, st.created_at").
		From(salesTransactionsTable).
		Where(squirrel.Eq{"st.account_id": accountID}).
		Where(squirrel.GtOrEq{"st.sale_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"st.sale_date": endDate.Format(time.DateOnly)}).
		OrderBy("st.sale_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.SalesTransaction, 0)
	for rows.Next() {
		transaction := &domain.SalesTransaction{}
		if err := rows.Scan(
			&transaction.ID,
			&transaction.AccountID,
			&transaction.SaleDate,
			&transaction.Amount,
			&transaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear sales transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return transactions, nil
}
