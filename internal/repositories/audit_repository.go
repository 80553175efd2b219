// internal/repositories/audit_repository.go
// Append-only audit log of every applyResult call, backed by MySQL.

package repositories

import (
	"context"
	"database/sql"
	"time"

	"bracketpool/internal/bracket"
)

// AuditEntry is one recorded applyResult call: who won, when, and whether
// it amended a previously recorded result (S5).
type AuditEntry struct {
	ID         string
	Year       int
	MatchupID  int
	Round      int
	Winner     string
	WinnerSeed int
	ScoreA     *int
	ScoreB     *int
	Amendment  bool
	RecordedAt time.Time
}

// AuditRepository persists a durable record of every result applied to a
// tournament, independent of the in-memory TournamentState, so the
// idempotence and amendment properties (§8) stay independently auditable.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record inserts one audit entry.
func (r *AuditRepository) Record(ctx context.Context, id string, year int, matchupID int, winner bracket.Team, score *bracket.MatchScore, amendment bool) error {
	var scoreA, scoreB *int
	if score != nil {
		scoreA, scoreB = &score.A, &score.B
	}

	query := `
		INSERT INTO result_audit (
			id, tournament_year, matchup_id, winner_name, winner_seed,
			score_a, score_b, amendment, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		id, year, matchupID, winner.Name, winner.Seed, scoreA, scoreB, amendment, time.Now(),
	)
	return err
}

// ListForMatchup returns every audit entry recorded for a single matchup,
// oldest first, so a caller can reconstruct the amendment history (S5).
func (r *AuditRepository) ListForMatchup(ctx context.Context, year, matchupID int) ([]*AuditEntry, error) {
	query := `
		SELECT id, tournament_year, matchup_id, winner_name, winner_seed,
			score_a, score_b, amendment, recorded_at
		FROM result_audit
		WHERE tournament_year = ? AND matchup_id = ?
		ORDER BY recorded_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, year, matchupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*AuditEntry, 0)
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(
			&e.ID, &e.Year, &e.MatchupID, &e.Winner, &e.WinnerSeed,
			&e.ScoreA, &e.ScoreB, &e.Amendment, &e.RecordedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

// CountAmendments counts how many applyResult calls for a tournament year
// were amendments.
func (r *AuditRepository) CountAmendments(ctx context.Context, year int) (int, error) {
	query := `SELECT COUNT(*) FROM result_audit WHERE tournament_year = ? AND amendment = TRUE`
	var count int
	err := r.db.QueryRowContext(ctx, query, year).Scan(&count)
	return count, err
}
