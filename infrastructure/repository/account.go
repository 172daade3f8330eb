package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

const (
	accountsTable = "accounts a"
)

type AccountRepository interface {
	GetAccountByID(accountID string) (*domain.Account, error)
	ListAccounts() ([]*domain.Account, error)
	ListAccountsByOwner(ownerID int) ([]*domain.Account, error)
	// OwnersByAccountIDs resolve o dono ATUAL de cada conta do conjunto em
	// uma única query. O guard de criação depende dessa resolução em lote:
	// uma consulta por registro estoura o orçamento de queries do lote.
	OwnersByAccountIDs(accountIDs []string) (map[string]int, error)
	CreateAccount(account *domain.Account) (*domain.Account, error)
	UpdateOwner(accountID string, ownerID int) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(accountID string) (*domain.Account, error) {
	return a.getAccount(squirrel.Eq{"a.id": accountID})
}

func (a *accountRepository) getAccount(whereClause map[string]interface{}) (*domain.Account, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select("a.id, a.name, a.owner_id, a.created_at, a.updated_at").
		From(accountsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := a.conn.QueryRow(accountsSQL, accountsArgs...)

	acc := &domain.Account{}
	if err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.OwnerID,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts() ([]*domain.Account, error) {
	return a.listAccounts(nil)
}

func (a *accountRepository) ListAccountsByOwner(ownerID int) ([]*domain.Account, error) {
	return a.listAccounts(squirrel.Eq{"a.owner_id": ownerID})
}

func (a *accountRepository) listAccounts(whereClause map[string]interface{}) ([]*domain.Account, error) {
	queryBuilder := squirrel.
		Select("a.id, a.name, a.owner_id, a.created_at, a.updated_at").
		From(accountsTable).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if whereClause != nil {
		queryBuilder = queryBuilder.Where(whereClause)
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc := &domain.Account{}
		if err := rows.Scan(
			&acc.ID,
			&acc.Name,
			&acc.OwnerID,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (a *accountRepository) OwnersByAccountIDs(accountIDs []string) (map[string]int, error) {
	owners := make(map[string]int, len(accountIDs))
	if len(accountIDs) == 0 {
		return owners, nil
	}

	ownersSQL, ownersArgs, err := squirrel.
		Select("a.id, a.owner_id").
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.Query(ownersSQL, ownersArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return owners, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID string
		var ownerID int
		if err := rows.Scan(&accountID, &ownerID); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o dono da conta: %w", err)
		}
		owners[accountID] = ownerID
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return owners, nil
}

func (a *accountRepository) CreateAccount(account *domain.Account) (*domain.Account, error) {
	if account.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID da conta: %w", err)
		}
		account.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("accounts").
		Columns("id", "name", "owner_id").
		Values(account.ID, account.Name, account.OwnerID).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = a.conn.QueryRow(sqlQuery, args...).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return account, nil
}

// UpdateOwner transfere a conta para outro usuário. A atribuição das vendas
// históricas passa a seguir o novo dono na próxima consulta.
func (a *accountRepository) UpdateOwner(accountID string, ownerID int) error {
	if accountID == "" {
		return errors.New("ID is required")
	}

	sqlQuery, args, err := squirrel.
		Update("accounts").
		Set("owner_id", ownerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := a.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("account not found")
	}

	return nil
}
