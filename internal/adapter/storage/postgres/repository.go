package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-bars-app/internal/core/domain/bars"
)

// foreignKeyViolation is the SQLSTATE raised when a membership names an unknown user.
const foreignKeyViolation = "23503"

// Repository implements ports.FavouritesRepository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new postgres repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const placeColumns = `p.id, p.name, p.phone, p.location, p.lat, p.lng, p.website, p.url, p.added_by, p.created_at`

// GetFavourites returns every place the user has favourited, oldest membership first.
// Memberships whose place has not landed yet are left out.
func (r *Repository) GetFavourites(ctx context.Context, userID string) ([]bars.Favourite, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, bars.ErrUserNotFound
	}

	query := `
		SELECT ` + placeColumns + `, m.id, m.user_id, m.place_id, m.created_at
		FROM place_members m
		JOIN places p ON p.id = m.place_id
		WHERE m.user_id = $1
		ORDER BY m.created_at, m.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favourites: %w", err)
	}

	favs := []bars.Favourite{}
	for fav, err := range scanFavourites(rows) {
		if err != nil {
			return nil, err
		}
		favs = append(favs, fav)
	}
	return favs, nil
}

// scanFavourites streams joined place/membership rows.
func scanFavourites(rows pgx.Rows) iter.Seq2[bars.Favourite, error] {
	return func(yield func(bars.Favourite, error) bool) {
		defer rows.Close()
		for rows.Next() {
			var fav bars.Favourite
			p, m := &fav.Place, &fav.Membership
			err := rows.Scan(
				&p.ID, &p.Name, &p.Phone, &p.Location, &p.Coordinates.Lat, &p.Coordinates.Lng,
				&p.Website, &p.URL, &p.AddedBy, &p.CreatedAt,
				&m.ID, &m.UserID, &m.PlaceID, &m.CreatedAt,
			)
			if err != nil {
				yield(bars.Favourite{}, fmt.Errorf("scan error: %w", err))
				return
			}
			if !yield(fav, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(bars.Favourite{}, fmt.Errorf("rows iteration error: %w", err))
		}
	}
}

// GetMembership returns nil when the user has not favourited the place.
func (r *Repository) GetMembership(ctx context.Context, userID, placeID string) (*bars.Membership, error) {
	query := `SELECT id, user_id, place_id, created_at FROM place_members WHERE user_id = $1 AND place_id = $2`

	var m bars.Membership
	err := r.db.QueryRow(ctx, query, userID, placeID).Scan(&m.ID, &m.UserID, &m.PlaceID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}
	return &m, nil
}

// GetPlace returns nil when the place has never been registered.
func (r *Repository) GetPlace(ctx context.Context, placeID string) (*bars.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places p WHERE p.id = $1`

	var p bars.Place
	err := r.db.QueryRow(ctx, query, placeID).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Location, &p.Coordinates.Lat, &p.Coordinates.Lng,
		&p.Website, &p.URL, &p.AddedBy, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch place: %w", err)
	}
	return &p, nil
}

// CreatePlace registers the place. A place that already exists is left untouched,
// so the first user to favourite it stays its AddedBy.
func (r *Repository) CreatePlace(ctx context.Context, place bars.Place) error {
	if err := place.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO places (id, name, phone, location, lat, lng, website, url, added_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		place.ID, place.Name, place.Phone, place.Location,
		place.Coordinates.Lat, place.Coordinates.Lng,
		place.Website, place.URL, place.AddedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}
	return nil
}

// CreateMembership links the user to the place. If the link already exists the
// stored membership is returned unchanged.
func (r *Repository) CreateMembership(ctx context.Context, userID, placeID string) (bars.Membership, error) {
	m := bars.Membership{UserID: userID, PlaceID: placeID}
	if err := m.Validate(); err != nil {
		return bars.Membership{}, err
	}

	query := `
		INSERT INTO place_members (id, user_id, place_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, place_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, place_id, created_at
	`
	err := r.db.QueryRow(ctx, query, uuid.NewString(), userID, placeID).Scan(&m.ID, &m.UserID, &m.PlaceID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return bars.Membership{}, bars.ErrUserNotFound
		}
		return bars.Membership{}, fmt.Errorf("failed to insert membership: %w", err)
	}
	return m, nil
}

// DeleteMembership removes the membership by ID.
func (r *Repository) DeleteMembership(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM place_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return bars.ErrMembershipNotFound
	}
	return nil
}
