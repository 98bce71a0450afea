package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkraev/costlens/internal/client/models"
	"github.com/mkraev/costlens/internal/dbx"
)

// Cache keys. Token and user form one logical record: they are written
// together and cleared together, never independently.
const (
	keyToken    = "token"
	keyUser     = "user"
	keyClientID = "client_id"
)

// SessionStore persists the (token, user) pair across restarts.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) repo(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}

// Load returns the cached token and user record, or ("", nil, nil) when
// either half is missing: a partial cache counts as no cache.
func (s *SessionStore) Load(ctx context.Context) (string, *models.User, error) {
	repo := s.repo(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return "", nil, err
	}
	data, err := repo.Get(ctx, keyUser)
	if err != nil {
		return "", nil, err
	}
	if len(token) == 0 || len(data) == 0 {
		return "", nil, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return "", nil, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return string(token), &user, nil
}

// Save writes the token and user in a single transaction.
func (s *SessionStore) Save(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, data)
	})
}

// Clear removes both entries in a single transaction. Clearing an already
// empty cache is a no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUser)
	})
}

// ClientID returns the per-install identifier, generating and persisting
// one on first use. It survives logout: it identifies the install, not the
// session.
func (s *SessionStore) ClientID(ctx context.Context) (string, error) {
	repo := s.repo(s.db)

	id, err := repo.Get(ctx, keyClientID)
	if err != nil {
		return "", err
	}
	if len(id) > 0 {
		return string(id), nil
	}

	fresh := uuid.NewString()
	if err := repo.Set(ctx, keyClientID, []byte(fresh)); err != nil {
		return "", err
	}
	return fresh, nil
}
