package business

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

var _ Repository = (*PostgresBusinessRepository)(nil)

type Repository interface {
	ListBusinesses(ctx context.Context) ([]types.Business, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*types.Business, error)
	ListBusinessesBySector(ctx context.Context, sector string) ([]types.Business, error)
	CreateBusiness(ctx context.Context, b *types.Business) error
	UpdateBusiness(ctx context.Context, b *types.Business) error
	DeleteBusiness(ctx context.Context, id uuid.UUID) error

	ListNews(ctx context.Context) ([]types.BusinessNews, error)
	GetNews(ctx context.Context, id uuid.UUID) (*types.BusinessNews, error)
	CreateNews(ctx context.Context, n *types.BusinessNews) error
	UpdateNews(ctx context.Context, n *types.BusinessNews) error
	DeleteNews(ctx context.Context, id uuid.UUID) error

	ListCenters(ctx context.Context) ([]types.BusinessCenter, error)
	GetCenter(ctx context.Context, id uuid.UUID) (*types.BusinessCenter, error)
	SearchCenters(ctx context.Context, query string) ([]types.BusinessCenter, error)
	CreateCenter(ctx context.Context, c *types.BusinessCenter) error
	UpdateCenter(ctx context.Context, c *types.BusinessCenter) error
	DeleteCenter(ctx context.Context, id uuid.UUID) error
}

type PostgresBusinessRepository struct {
	logger *slog.Logger
	pgpool api.PGXQuerier
}

func NewPostgresBusinessRepository(pgpool api.PGXQuerier, logger *slog.Logger) *PostgresBusinessRepository {
	return &PostgresBusinessRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

const businessColumns = `id, name, sector, address, description, contact, email,
       phone_number, website, active, created_at, updated_at`

func scanBusiness(row pgx.Row) (*types.Business, error) {
	var b types.Business
	err := row.Scan(
		&b.ID, &b.Name, &b.Sector, &b.Address, &b.Description, &b.Contact, &b.Email,
		&b.PhoneNumber, &b.Website, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBusinesses(rows pgx.Rows) ([]types.Business, error) {
	defer rows.Close()
	var businesses []types.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, *b)
	}
	return businesses, rows.Err()
}

func (r *PostgresBusinessRepository) ListBusinesses(ctx context.Context) ([]types.Business, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+businessColumns+` FROM businesses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return collectBusinesses(rows)
}

func (r *PostgresBusinessRepository) GetBusiness(ctx context.Context, id uuid.UUID) (*types.Business, error) {
	b, err := scanBusiness(r.pgpool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return b, nil
}

func (r *PostgresBusinessRepository) ListBusinessesBySector(ctx context.Context, sector string) ([]types.Business, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE sector ILIKE $1 ORDER BY name`, sector)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses by sector: %w", err)
	}
	return collectBusinesses(rows)
}

func (r *PostgresBusinessRepository) CreateBusiness(ctx context.Context, b *types.Business) error {
	query := `
        INSERT INTO businesses (
            id, name, sector, address, description, contact, email,
            phone_number, website, active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`
	err := r.pgpool.QueryRow(ctx, query,
		b.ID, b.Name, b.Sector, b.Address, b.Description, b.Contact, b.Email,
		b.PhoneNumber, b.Website, b.Active,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert business: %w", err)
	}
	return nil
}

func (r *PostgresBusinessRepository) UpdateBusiness(ctx context.Context, b *types.Business) error {
	query := `
        UPDATE businesses
        SET name = $2, sector = $3, address = $4, description = $5,
            contact = $6, email = $7, phone_number = $8, website = $9,
            active = $10, updated_at = NOW()
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query,
		b.ID, b.Name, b.Sector, b.Address, b.Description,
		b.Contact, b.Email, b.PhoneNumber, b.Website, b.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresBusinessRepository) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const newsColumns = `id, title, content, industry_id, created_by, published_at`

func scanNews(row pgx.Row) (*types.BusinessNews, error) {
	var n types.BusinessNews
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.IndustryID, &n.CreatedBy, &n.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PostgresBusinessRepository) ListNews(ctx context.Context) ([]types.BusinessNews, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+newsColumns+` FROM business_news ORDER BY published_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list business news: %w", err)
	}
	defer rows.Close()

	var news []types.BusinessNews
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business news: %w", err)
		}
		news = append(news, *n)
	}
	return news, rows.Err()
}

func (r *PostgresBusinessRepository) GetNews(ctx context.Context, id uuid.UUID) (*types.BusinessNews, error) {
	n, err := scanNews(r.pgpool.QueryRow(ctx, `SELECT `+newsColumns+` FROM business_news WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business news: %w", err)
	}
	return n, nil
}

func (r *PostgresBusinessRepository) CreateNews(ctx context.Context, n *types.BusinessNews) error {
	query := `
        INSERT INTO business_news (id, title, content, industry_id, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING published_at`
	err := r.pgpool.QueryRow(ctx, query, n.ID, n.Title, n.Content, n.IndustryID, n.CreatedBy).Scan(&n.PublishedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: the referenced industry does not exist
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return api.ErrNotFound
		}
		return fmt.Errorf("failed to insert business news: %w", err)
	}
	return nil
}

func (r *PostgresBusinessRepository) UpdateNews(ctx context.Context, n *types.BusinessNews) error {
	query := `
        UPDATE business_news
        SET title = $2, content = $3, industry_id = $4
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query, n.ID, n.Title, n.Content, n.IndustryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return api.ErrNotFound
		}
		return fmt.Errorf("failed to update business news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresBusinessRepository) DeleteNews(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM business_news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

const centerColumns = `id, name, sector, address, description, created_at`

func scanCenter(row pgx.Row) (*types.BusinessCenter, error) {
	var c types.BusinessCenter
	err := row.Scan(&c.ID, &c.Name, &c.Sector, &c.Address, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCenters(rows pgx.Rows) ([]types.BusinessCenter, error) {
	defer rows.Close()
	var centers []types.BusinessCenter
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business center: %w", err)
		}
		centers = append(centers, *c)
	}
	return centers, rows.Err()
}

func (r *PostgresBusinessRepository) ListCenters(ctx context.Context) ([]types.BusinessCenter, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+centerColumns+` FROM business_centers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list business centers: %w", err)
	}
	return collectCenters(rows)
}

func (r *PostgresBusinessRepository) GetCenter(ctx context.Context, id uuid.UUID) (*types.BusinessCenter, error) {
	c, err := scanCenter(r.pgpool.QueryRow(ctx, `SELECT `+centerColumns+` FROM business_centers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business center: %w", err)
	}
	return c, nil
}

func (r *PostgresBusinessRepository) SearchCenters(ctx context.Context, query string) ([]types.BusinessCenter, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+centerColumns+` FROM business_centers
         WHERE name ILIKE '%' || $1 || '%' OR sector ILIKE '%' || $1 || '%'
         ORDER BY name`, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search business centers: %w", err)
	}
	return collectCenters(rows)
}

func (r *PostgresBusinessRepository) CreateCenter(ctx context.Context, c *types.BusinessCenter) error {
	query := `
        INSERT INTO business_centers (id, name, sector, address, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	err := r.pgpool.QueryRow(ctx, query, c.ID, c.Name, c.Sector, c.Address, c.Description).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert business center: %w", err)
	}
	return nil
}

func (r *PostgresBusinessRepository) UpdateCenter(ctx context.Context, c *types.BusinessCenter) error {
	query := `
        UPDATE business_centers
        SET name = $2, sector = $3, address = $4, description = $5
        WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query, c.ID, c.Name, c.Sector, c.Address, c.Description)
	if err != nil {
		return fmt.Errorf("failed to update business center: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresBusinessRepository) DeleteCenter(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM business_centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business center: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
