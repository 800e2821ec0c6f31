package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"bistro/apperrors"
	"bistro/models"
	"bistro/store"
)

type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

var _ store.UserStore = (*Users)(nil)

func (s *Users) Create(ctx context.Context, user models.User) (models.User, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password, is_staff)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		user.Username, user.Email, user.Password, user.IsStaff).
		Scan(&user.ID, &user.CreatedAt)
	return user, err
}

func (s *Users) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *Users) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return s.getUser(ctx, `WHERE username = $1`, username)
}

func (s *Users) getUser(ctx context.Context, where string, arg interface{}) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, is_staff, created_at
		FROM users `+where, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.Password,
			&user.IsStaff, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT group_name FROM user_groups WHERE user_id = $1`, user.ID)
	if err != nil {
		return models.User{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group); err != nil {
			return models.User{}, err
		}
		user.Groups = append(user.Groups, group)
	}
	return user, rows.Err()
}

func (s *Users) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE LOWER(username) = LOWER($1)`, username).
		Scan(&count)
	return count > 0, err
}

func (s *Users) GroupMembers(ctx context.Context, group models.Group) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email
		FROM users u
		JOIN user_groups ug ON ug.user_id = u.id
		WHERE ug.group_name = $1
		ORDER BY u.username`, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, err
		}
		members = append(members, u)
	}
	return members, rows.Err()
}

func (s *Users) AddToGroup(ctx context.Context, userID uuid.UUID, group models.Group) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_groups (user_id, group_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, group_name) DO NOTHING`, userID, group)
	return err
}

func (s *Users) RemoveFromGroup(ctx context.Context, userID uuid.UUID, group models.Group) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_groups
		WHERE user_id = $1 AND group_name = $2`, userID, group)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Users) InGroup(ctx context.Context, userID uuid.UUID, group models.Group) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_groups
			WHERE user_id = $1 AND group_name = $2
		)`, userID, group).Scan(&exists)
	return exists, err
}
