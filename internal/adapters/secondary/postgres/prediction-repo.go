package postgres

import (
	"context"
	"encoding/json"
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

const predictionColumns = `
	p.id, p.created_at, p.completed_at, p.model_version_id,
	p.input, p.output, p.confidence, p.duration_ms, p.status, p.error,
	m.name AS model_name, mv.version
`

type predictionRepo struct {
	pool *pgxpool.Pool
}

func NewPredictionRepository(pool *pgxpool.Pool) ports.PredictionRepository {
	return &predictionRepo{pool: pool}
}

func (r *predictionRepo) Create(ctx context.Context, p *domain.Prediction) error {
	inputJSON, err := json.Marshal(p.Input)
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}
	var outputJSON []byte
	if p.Output != nil {
		outputJSON, err = json.Marshal(p.Output)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
	}

	query := `
		INSERT INTO prediction
			(id, created_at, completed_at, model_version_id, input, output,
			 confidence, duration_ms, status, error)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err = r.pool.Exec(ctx, query,
		p.ID, p.CreatedAt, p.CompletedAt, p.ModelVersionID,
		inputJSON, outputJSON, p.Confidence, p.DurationMillis,
		string(p.Status), p.Error,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrVersionNotFound
		}
		return fmt.Errorf("create prediction: %w", err)
	}
	return nil
}

func (r *predictionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM prediction p
		JOIN model_version mv ON mv.id = p.model_version_id
		JOIN model m ON m.id = mv.model_id
		WHERE p.id = $1
	`
	p, err := scanPrediction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("get prediction by id: %w", err)
	}
	return p, nil
}

func (r *predictionRepo) List(ctx context.Context, filter ports.PredictionListFilter) ([]*domain.Prediction, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.ModelVersionID != nil {
		conditions = append(conditions, fmt.Sprintf("p.model_version_id = $%d", argPos))
		args = append(args, *filter.ModelVersionID)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM prediction p " + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count predictions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+predictionColumns+`
		FROM prediction p
		JOIN model_version mv ON mv.id = p.model_version_id
		JOIN model m ON m.id = mv.model_id
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*domain.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	return predictions, total, rows.Err()
}

func (r *predictionRepo) Complete(ctx context.Context, p *domain.Prediction) error {
	var outputJSON []byte
	if p.Output != nil {
		var err error
		outputJSON, err = json.Marshal(p.Output)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
	}

	// Only PENDING rows transition; replays of the same job are no-ops caught
	// by RowsAffected.
	query := `
		UPDATE prediction
		SET completed_at = $1, output = $2, confidence = $3,
			duration_ms = $4, status = $5, error = $6
		WHERE id = $7 AND status = 'PENDING'
	`
	result, err := r.pool.Exec(ctx, query,
		p.CompletedAt, outputJSON, p.Confidence,
		p.DurationMillis, string(p.Status), p.Error, p.ID,
	)
	if err != nil {
		return fmt.Errorf("complete prediction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPredictionNotFound
	}
	return nil
}

func scanPrediction(row pgx.Row) (*domain.Prediction, error) {
	var p domain.Prediction
	var status string
	var inputJSON, outputJSON []byte
	if err := row.Scan(
		&p.ID, &p.CreatedAt, &p.CompletedAt, &p.ModelVersionID,
		&inputJSON, &outputJSON, &p.Confidence, &p.DurationMillis,
		&status, &p.Error, &p.ModelName, &p.Version,
	); err != nil {
		return nil, err
	}
	p.Status = domain.PredictionStatus(status)
	if len(inputJSON) > 0 {
		if err := json.Unmarshal(inputJSON, &p.Input); err != nil {
			return nil, fmt.Errorf("unmarshal input: %w", err)
		}
	}
	if len(outputJSON) > 0 {
		if err := json.Unmarshal(outputJSON, &p.Output); err != nil {
			return nil, fmt.Errorf("unmarshal output: %w", err)
		}
	}
	return &p, nil
}
