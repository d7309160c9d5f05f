package postgres

import (
	"context"
	"database/sql"
	"wavelink-server/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const userColumns = `id, first_name, last_name, date_of_birth, email, avatar_images, friends, background_top, background_bottom`

// UserRepository reads identity snapshots for reference resolution.
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// GetUserByID retrieves one user snapshot by id.
func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No user found is not an application error
		}
		return nil, err
	}
	return user, nil
}

// GetUsersByIDs retrieves the snapshots for every id in ids that exists.
// Missing ids are simply absent from the result; order is unspecified.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var (
		dateOfBirth sql.NullTime
		avatars     pq.StringArray
		friends     pq.StringArray
	)
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &dateOfBirth, &user.Email,
		&avatars, &friends, &user.BackgroundColors[0], &user.BackgroundColors[1],
	)
	if err != nil {
		return nil, err
	}

	if dateOfBirth.Valid {
		user.DateOfBirth = &dateOfBirth.Time
	}
	user.AvatarImages = []string(avatars)
	for _, f := range friends {
		friendID, err := uuid.Parse(f)
		if err != nil {
			continue // skip rows with corrupt friend references
		}
		user.Friends = append(user.Friends, friendID)
	}
	return user, nil
}
