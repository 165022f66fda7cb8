package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wb-go/wbf/dbpg"
)

var ErrProfileNotFound = errors.New("profile not found")

// Subscription types stored on a profile.
const (
	SubscriptionMonthly  = "monthly"
	SubscriptionLifetime = "lifetime"
)

// Profile is one row of the profiles table, keyed by the identity
// provider's user id.
type Profile struct {
	ID               string
	IsPro            bool
	SubscriptionType sql.NullString
}

// Repository provides CRUD operations for profiles in the database.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new Repository with the given DB connection.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// UpsertPro marks the user as pro with the given subscription type,
// creating the profile row if it does not exist yet.
func (r *Repository) UpsertPro(ctx context.Context, userID, subscriptionType string) error {
	query := `
		INSERT INTO profiles (id, is_pro, subscription_type)
		VALUES ($1, TRUE, $2)
		ON CONFLICT (id) DO UPDATE
		SET is_pro = TRUE, subscription_type = EXCLUDED.subscription_type
	`

	if _, err := r.db.ExecContext(ctx, query, userID, subscriptionType); err != nil {
		return fmt.Errorf("upsert: failed to upgrade profile: %w", err)
	}

	return nil
}

// Downgrade clears the pro flag for the user.
func (r *Repository) Downgrade(ctx context.Context, userID string) error {
	query := `
		UPDATE profiles
		SET is_pro = FALSE
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("downgrade: failed to update profile: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// Get retrieves a profile by user id.
func (r *Repository) Get(ctx context.Context, userID string) (Profile, error) {
	query := `
		SELECT id, is_pro, subscription_type
		FROM profiles
		WHERE id = $1
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.IsPro, &p.SubscriptionType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, fmt.Errorf("get: failed to get profile: %w", err)
	}

	return p, nil
}
