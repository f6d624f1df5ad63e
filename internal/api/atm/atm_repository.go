package atm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Repository = (*PostgresATMRepository)(nil)

type Repository interface {
	ListATMs(ctx context.Context) ([]types.ATM, error)
	GetATM(ctx context.Context, id uuid.UUID) (*types.ATM, error)
	ListATMsByBank(ctx context.Context, bank string) ([]types.ATM, error)
	CreateATM(ctx context.Context, a *types.ATM) error
	UpdateATM(ctx context.Context, a *types.ATM) error
	DeleteATM(ctx context.Context, id uuid.UUID) error
}

type PostgresATMRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresATMRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresATMRepository {
	return &PostgresATMRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const atmColumns = `id, name, bank_name, address, description, active, created_at, updated_at`

func scanATM(row pgx.Row) (*types.ATM, error) {
	var a types.ATM
	err := row.Scan(
		&a.ID, &a.Name, &a.BankName, &a.Address, &a.Description, &a.Active,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectATMs(rows pgx.Rows) ([]types.ATM, error) {
	defer rows.Close()
	var atms []types.ATM
	for rows.Next() {
		a, err := scanATM(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan atm: %w", err)
		}
		atms = append(atms, *a)
	}
	return atms, rows.Err()
}

func (r *PostgresATMRepository) ListATMs(ctx context.Context) ([]types.ATM, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+atmColumns+` FROM atms ORDER BY bank_name, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list atms: %w", err)
	}
	return collectATMs(rows)
}

func (r *PostgresATMRepository) GetATM(ctx context.Context, id uuid.UUID) (*types.ATM, error) {
	a, err := scanATM(r.pgpool.QueryRow(ctx, `SELECT `+atmColumns+` FROM atms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get atm: %w", err)
	}
	return a, nil
}

func (r *PostgresATMRepository) ListATMsByBank(ctx context.Context, bank string) ([]types.ATM, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+atmColumns+` FROM atms WHERE bank_name ILIKE $1 ORDER BY name`, bank)
	if err != nil {
		return nil, fmt.Errorf("failed to list atms by bank: %w", err)
	}
	return collectATMs(rows)
}

func (r *PostgresATMRepository) CreateATM(ctx context.Context, a *types.ATM) error {
	query := `
        INSERT INTO atms (id, name, bank_name, address, description, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		a.ID, a.Name, a.BankName, a.Address, a.Description, a.Active,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert atm: %w", err)
	}
	return nil
}

func (r *PostgresATMRepository) UpdateATM(ctx context.Context, a *types.ATM) error {
	query := `
        UPDATE atms
        SET name = $2, bank_name = $3, address = $4, description = $5,
            active = $6, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		a.ID, a.Name, a.BankName, a.Address, a.Description, a.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update atm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresATMRepository) DeleteATM(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM atms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete atm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
