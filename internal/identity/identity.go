// Package identity manages login accounts. It stands in for the hosted
// identity service the app originally delegated to: two calls, no session
// state. The secret is hashed at registration and stored, but nothing in
// the core ever verifies it — login only checks that an account exists.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gregapec/tovor/internal/model"
)

var (
	// ErrDuplicateAccount is returned when the email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrAccountNotFound is returned when no account matches the email.
	ErrAccountNotFound = errors.New("account not found")
)

// Provider resolves and creates accounts.
type Provider struct {
	db *sql.DB
}

// NewProvider wraps an open database handle.
func NewProvider(db *sql.DB) *Provider {
	return &Provider{db: db}
}

// CreateAccount registers a new account with a bcrypt-hashed secret.
func (p *Provider) CreateAccount(ctx context.Context, email, secret string) (*model.Account, error) {
	existing, err := p.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("creating account %s: %w", email, ErrDuplicateAccount)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing secret: %w", err)
	}

	// The UNIQUE constraint on email backstops the existence check above.
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO accounts (email, secret_hash) VALUES (?, ?)`,
		email, string(hash),
	)
	if err != nil {
		return nil, fmt.Errorf("creating account %s: %w", email, err)
	}

	return p.FindAccount(ctx, email)
}

// FindAccount returns the account for an email, or ErrAccountNotFound.
func (p *Provider) FindAccount(ctx context.Context, email string) (*model.Account, error) {
	account, err := p.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("finding account %s: %w", email, ErrAccountNotFound)
	}
	return account, nil
}

func (p *Provider) lookup(ctx context.Context, email string) (*model.Account, error) {
	a := &model.Account{}
	err := p.db.QueryRowContext(ctx,
		`SELECT id, email, secret_hash, created_at FROM accounts WHERE email = ?`, email,
	).Scan(&a.ID, &a.Email, &a.SecretHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	return a, nil
}
