package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

type modelRepo struct {
	pool *pgxpool.Pool
}

func NewModelRepository(pool *pgxpool.Pool) ports.ModelRepository {
	return &modelRepo{pool: pool}
}

func (r *modelRepo) Create(ctx context.Context, model *domain.Model) error {
	query := `
		INSERT INTO model (id, created_at, name, description)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, model.ID, model.CreatedAt, model.Name, model.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrModelNameConflict
		}
		return fmt.Errorf("create model: %w", err)
	}
	return nil
}

func (r *modelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Model, error) {
	query := `
		SELECT id, created_at, name, description
		FROM model
		WHERE id = $1
	`
	m, err := scanModel(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get model by id: %w", err)
	}
	return m, nil
}

func (r *modelRepo) GetByName(ctx context.Context, name string) (*domain.Model, error) {
	query := `
		SELECT id, created_at, name, description
		FROM model
		WHERE name = $1
	`
	m, err := scanModel(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get model by name: %w", err)
	}
	return m, nil
}

func (r *modelRepo) List(ctx context.Context, filter ports.ModelListFilter) ([]*domain.Model, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM model " + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count models: %w", err)
	}

	sortBy := "created_at"
	if filter.SortBy == "name" {
		sortBy = "name"
	}
	order := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, name, description
		FROM model
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, sortBy, order, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var models []*domain.Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, total, rows.Err()
}

func scanModel(row pgx.Row) (*domain.Model, error) {
	var m domain.Model
	if err := row.Scan(&m.ID, &m.CreatedAt, &m.Name, &m.Description); err != nil {
		return nil, err
	}
	return &m, nil
}
