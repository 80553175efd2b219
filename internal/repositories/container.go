// internal/repositories/container.go
// Repository container for dependency injection

package repositories

import (
	"context"
	"database/sql"

	"bracketpool/internal/database"
)

// Container holds all repository instances
type Container struct {
	User                    *UserRepository
	State                   *StateRepository
	Bracket                 *BracketRepository
	Audit                   *AuditRepository
	NotificationPreferences *NotificationPreferencesRepository
	db                      *sql.DB
}

// NewContainer creates a new repository container
func NewContainer(conn *database.Connections) *Container {
	return &Container{
		User:                    NewUserRepository(conn.MySQL),
		State:                   NewStateRepository(conn.MongoDB),
		Bracket:                 NewBracketRepository(conn.MongoDB),
		Audit:                   NewAuditRepository(conn.MySQL),
		NotificationPreferences: NewNotificationPreferencesRepository(conn.MongoDB),
		db:                      conn.MySQL,
	}
}

// BeginTx starts a new database transaction
func (c *Container) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}
