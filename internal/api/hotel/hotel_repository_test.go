package hotel

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

func hotelFixture() *types.Hotel {
	return &types.Hotel{
		ID:            uuid.New(),
		Name:          "Grand Plaza",
		Address:       "1 Main St",
		StarRating:    4,
		Rating:        4.5,
		MinPrice:      80,
		MaxPrice:      250,
		StartingPrice: 95,
		Active:        true,
	}
}

func newMockRepo(t *testing.T) (*PostgresHotelRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresHotelRepository(mockPool, logger), mockPool
}

var hotelCols = []string{
	"id", "name", "address", "email", "phone_number", "description",
	"min_price", "max_price", "star_rating", "rating", "starting_price",
	"image_url", "active", "created_at", "updated_at",
}

func hotelRow(rows *pgxmock.Rows, id uuid.UUID, name string) *pgxmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, name, "1 Main St", "", "", "",
		80.0, 250.0, 4, 4.5, 95.0,
		"", true, now, now,
	)
}

func TestListHotels(t *testing.T) {
	repo, pool := newMockRepo(t)

	pool.ExpectQuery(`SELECT (.+) FROM hotels ORDER BY name`).
		WillReturnRows(hotelRow(hotelRow(pgxmock.NewRows(hotelCols), uuid.New(), "Astoria"), uuid.New(), "Grand Plaza"))

	hotels, err := repo.ListHotels(context.Background())

	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Astoria", hotels[0].Name)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestGetHotel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		repo, pool := newMockRepo(t)

		pool.ExpectQuery(`SELECT (.+) FROM hotels WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(hotelRow(pgxmock.NewRows(hotelCols), id, "Grand Plaza"))

		h, err := repo.GetHotel(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, h.ID)
		assert.Equal(t, "Grand Plaza", h.Name)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		repo, pool := newMockRepo(t)

		pool.ExpectQuery(`SELECT (.+) FROM hotels WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetHotel(ctx, id)

		assert.ErrorIs(t, err, api.ErrNotFound)
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestSearchHotelsByName(t *testing.T) {
	repo, pool := newMockRepo(t)

	pool.ExpectQuery(`SELECT (.+) FROM hotels WHERE name ILIKE`).
		WithArgs("plaza").
		WillReturnRows(hotelRow(pgxmock.NewRows(hotelCols), uuid.New(), "Grand Plaza"))

	hotels, err := repo.SearchHotelsByName(context.Background(), "plaza")

	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestUpdateHotelNotFound(t *testing.T) {
	repo, pool := newMockRepo(t)
	h := hotelFixture()

	pool.ExpectExec(`UPDATE hotels`).
		WithArgs(h.ID, h.Name, h.Address, h.Email, h.PhoneNumber, h.Description,
			h.MinPrice, h.MaxPrice, h.StarRating, h.Rating, h.StartingPrice,
			h.ImageURL, h.Active).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.UpdateHotel(context.Background(), h), api.ErrNotFound)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestDeleteHotelRepository(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Deleted", func(t *testing.T) {
		repo, pool := newMockRepo(t)

		pool.ExpectExec(`DELETE FROM hotels WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.DeleteHotel(ctx, id))
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		repo, pool := newMockRepo(t)

		pool.ExpectExec(`DELETE FROM hotels WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.DeleteHotel(ctx, id), api.ErrNotFound)
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}
