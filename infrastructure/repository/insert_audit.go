package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

type InsertAuditRepository interface {
	Save(entry *domain.InsertAuditEntry) error
	DeleteOlderThan(days int) (int64, error)
}

type insertAuditRepository struct {
	conn *postgres.Connection
}

func NewInsertAuditRepository(conn *postgres.Connection) InsertAuditRepository {
	return &insertAuditRepository{
		conn: conn,
	}
}

func (r *insertAuditRepository) Save(entry *domain.InsertAuditEntry) error {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID do audit: %w", err)
		}
		entry.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("insert_audit").
		Columns("id", "actor_id", "total", "accepted", "rejected").
		Values(entry.ID, entry.ActorID, entry.Total, entry.Accepted, entry.Rejected).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *insertAuditRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("insert_audit").
		Where(squirrel.Lt{"created_at": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
