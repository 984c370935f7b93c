package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

const versionColumns = `
	mv.id, mv.created_at, mv.updated_at, mv.model_id, mv.version,
	mv.artifact_uri, mv.framework, mv.active, mv.status, m.name AS model_name
`

type modelVersionRepo struct {
	pool *pgxpool.Pool
}

func NewModelVersionRepository(pool *pgxpool.Pool) ports.ModelVersionRepository {
	return &modelVersionRepo{pool: pool}
}

func (r *modelVersionRepo) Create(ctx context.Context, version *domain.ModelVersion) error {
	query := `
		INSERT INTO model_version
			(id, created_at, updated_at, model_id, version, artifact_uri, framework, active, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.pool.Exec(ctx, query,
		version.ID, version.CreatedAt, version.UpdatedAt,
		version.ModelID, version.Version, version.ArtifactURI,
		version.Framework, version.Active, string(version.Status),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return domain.ErrVersionConflict
			case "23503":
				return domain.ErrModelNotFound
			}
		}
		return fmt.Errorf("create model version: %w", err)
	}
	return nil
}

func (r *modelVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelVersion, error) {
	query := `
		SELECT ` + versionColumns + `
		FROM model_version mv
		JOIN model m ON m.id = mv.model_id
		WHERE mv.id = $1
	`
	v, err := scanVersion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get model version by id: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) GetByModelAndVersion(ctx context.Context, modelID uuid.UUID, version string) (*domain.ModelVersion, error) {
	query := `
		SELECT ` + versionColumns + `
		FROM model_version mv
		JOIN model m ON m.id = mv.model_id
		WHERE mv.model_id = $1 AND mv.version = $2
	`
	v, err := scanVersion(r.pool.QueryRow(ctx, query, modelID, version))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get model version: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) GetActive(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error) {
	query := `
		SELECT ` + versionColumns + `
		FROM model_version mv
		JOIN model m ON m.id = mv.model_id
		WHERE mv.model_id = $1 AND mv.active
	`
	v, err := scanVersion(r.pool.QueryRow(ctx, query, modelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveVersion
		}
		return nil, fmt.Errorf("get active model version: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) ListByModel(ctx context.Context, modelID uuid.UUID) ([]*domain.ModelVersion, error) {
	query := `
		SELECT ` + versionColumns + `
		FROM model_version mv
		JOIN model m ON m.id = mv.model_id
		WHERE mv.model_id = $1
		ORDER BY mv.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("list model versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.ModelVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (r *modelVersionRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.VersionStatus) error {
	query := `
		UPDATE model_version
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.pool.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("set version status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionNotFound
	}
	return nil
}

func (r *modelVersionRepo) Activate(ctx context.Context, modelID uuid.UUID, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin activate: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE model_version SET active = FALSE, updated_at = NOW() WHERE model_id = $1 AND active`,
		modelID,
	); err != nil {
		return fmt.Errorf("deactivate versions: %w", err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE model_version SET active = TRUE, updated_at = NOW() WHERE id = $1 AND model_id = $2`,
		id, modelID,
	)
	if err != nil {
		return fmt.Errorf("activate version: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionNotFound
	}

	return tx.Commit(ctx)
}

func scanVersion(row pgx.Row) (*domain.ModelVersion, error) {
	var v domain.ModelVersion
	var status string
	if err := row.Scan(
		&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.ModelID, &v.Version,
		&v.ArtifactURI, &v.Framework, &v.Active, &status, &v.ModelName,
	); err != nil {
		return nil, err
	}
	v.Status = domain.VersionStatus(status)
	return &v, nil
}
