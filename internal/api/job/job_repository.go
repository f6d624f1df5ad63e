package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Repository = (*PostgresJobRepository)(nil)

type Repository interface {
	ListCompanies(ctx context.Context) ([]types.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*types.Company, error)
	CreateCompany(ctx context.Context, c *types.Company) error
	UpdateCompany(ctx context.Context, c *types.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error

	ListIndustries(ctx context.Context) ([]types.Industry, error)
	GetIndustry(ctx context.Context, id uuid.UUID) (*types.Industry, error)
	CreateIndustry(ctx context.Context, i *types.Industry) error
	UpdateIndustry(ctx context.Context, i *types.Industry) error
	DeleteIndustry(ctx context.Context, id uuid.UUID) error

	ListJobListings(ctx context.Context) ([]types.JobListing, error)
	GetJobListing(ctx context.Context, id uuid.UUID) (*types.JobListing, error)
	ListJobListingsByCompany(ctx context.Context, companyID uuid.UUID) ([]types.JobListing, error)
	CreateJobListing(ctx context.Context, j *types.JobListing) error
	UpdateJobListing(ctx context.Context, j *types.JobListing) error
	DeleteJobListing(ctx context.Context, id uuid.UUID) error
}

type PostgresJobRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresJobRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresJobRepository {
	return &PostgresJobRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const companyColumns = `id, name, contact_number, email, sector, address, location,
       description, website, logo_url, active, created_at, updated_at`

func scanCompany(row pgx.Row) (*types.Company, error) {
	var c types.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.ContactNumber, &c.Email, &c.Sector, &c.Address, &c.Location,
		&c.Description, &c.Website, &c.LogoURL, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresJobRepository) ListCompanies(ctx context.Context) ([]types.Company, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []types.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func (r *PostgresJobRepository) GetCompany(ctx context.Context, id uuid.UUID) (*types.Company, error) {
	c, err := scanCompany(r.pgpool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

func (r *PostgresJobRepository) CreateCompany(ctx context.Context, c *types.Company) error {
	query := `
        INSERT INTO companies (
            id, name, contact_number, email, sector, address, location,
            description, website, logo_url, active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		c.ID, c.Name, c.ContactNumber, c.Email, c.Sector, c.Address, c.Location,
		c.Description, c.Website, c.LogoURL, c.Active,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) UpdateCompany(ctx context.Context, c *types.Company) error {
	query := `
        UPDATE companies
        SET name = $2, contact_number = $3, email = $4, sector = $5,
            address = $6, location = $7, description = $8, website = $9,
            logo_url = $10, active = $11, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		c.ID, c.Name, c.ContactNumber, c.Email, c.Sector,
		c.Address, c.Location, c.Description, c.Website, c.LogoURL, c.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const industryColumns = `id, name, description, active, created_at`

func scanIndustry(row pgx.Row) (*types.Industry, error) {
	var i types.Industry
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Active, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *PostgresJobRepository) ListIndustries(ctx context.Context) ([]types.Industry, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+industryColumns+` FROM industries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}
	defer rows.Close()

	var industries []types.Industry
	for rows.Next() {
		i, err := scanIndustry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan industry: %w", err)
		}
		industries = append(industries, *i)
	}
	return industries, rows.Err()
}

func (r *PostgresJobRepository) GetIndustry(ctx context.Context, id uuid.UUID) (*types.Industry, error) {
	i, err := scanIndustry(r.pgpool.QueryRow(ctx, `SELECT `+industryColumns+` FROM industries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get industry: %w", err)
	}
	return i, nil
}

func (r *PostgresJobRepository) CreateIndustry(ctx context.Context, i *types.Industry) error {
	query := `
        INSERT INTO industries (id, name, description, active)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`
	err := r.pgpool.QueryRow(ctx, query, i.ID, i.Name, i.Description, i.Active).Scan(&i.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: industry names are unique
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return api.ErrConflict
		}
		return fmt.Errorf("failed to insert industry: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) UpdateIndustry(ctx context.Context, i *types.Industry) error {
	query := `
        UPDATE industries
        SET name = $2, description = $3, active = $4
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query, i.ID, i.Name, i.Description, i.Active)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return api.ErrConflict
		}
		return fmt.Errorf("failed to update industry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteIndustry(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM industries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete industry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const jobListingColumns = `id, title, description, salary, contact_number, email,
       company_id, posted_at`

func scanJobListing(row pgx.Row) (*types.JobListing, error) {
	var j types.JobListing
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Salary, &j.ContactNumber, &j.Email,
		&j.CompanyID, &j.PostedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJobListings(rows pgx.Rows) ([]types.JobListing, error) {
	defer rows.Close()
	var listings []types.JobListing
	for rows.Next() {
		j, err := scanJobListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job listing: %w", err)
		}
		listings = append(listings, *j)
	}
	return listings, rows.Err()
}

func (r *PostgresJobRepository) ListJobListings(ctx context.Context) ([]types.JobListing, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+jobListingColumns+` FROM job_listings ORDER BY posted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job listings: %w", err)
	}
	return collectJobListings(rows)
}

func (r *PostgresJobRepository) GetJobListing(ctx context.Context, id uuid.UUID) (*types.JobListing, error) {
	j, err := scanJobListing(r.pgpool.QueryRow(ctx, `SELECT `+jobListingColumns+` FROM job_listings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job listing: %w", err)
	}
	return j, nil
}

func (r *PostgresJobRepository) ListJobListingsByCompany(ctx context.Context, companyID uuid.UUID) ([]types.JobListing, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+jobListingColumns+` FROM job_listings WHERE company_id = $1 ORDER BY posted_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job listings by company: %w", err)
	}
	return collectJobListings(rows)
}

func (r *PostgresJobRepository) CreateJobListing(ctx context.Context, j *types.JobListing) error {
	query := `
        INSERT INTO job_listings (
            id, title, description, salary, contact_number, email, company_id
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING posted_at`
	err := r.pgpool.QueryRow(ctx, query,
		j.ID, j.Title, j.Description, j.Salary, j.ContactNumber, j.Email, j.CompanyID,
	).Scan(&j.PostedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: the referenced company does not exist
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return api.ErrNotFound
		}
		return fmt.Errorf("failed to insert job listing: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) UpdateJobListing(ctx context.Context, j *types.JobListing) error {
	query := `
        UPDATE job_listings
        SET title = $2, description = $3, salary = $4, contact_number = $5,
            email = $6, company_id = $7
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		j.ID, j.Title, j.Description, j.Salary, j.ContactNumber, j.Email, j.CompanyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return api.ErrNotFound
		}
		return fmt.Errorf("failed to update job listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteJobListing(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM job_listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
