package postgres

import (
	"context"
	"database/sql"
	"time"

	"hackmate-backend/internal/domain"
)

// Membership helpers shared by the team and match request repositories: a
// team invite accept and a direct join must add members under the same
// locking discipline.

// lockTeam reads the capacity-relevant columns with the team row locked until
// the transaction ends. Every mutation of a team's member set starts here, so
// the capacity check and the membership write are one indivisible unit.
func lockTeam(ctx context.Context, tx *sql.Tx, teamID int32) (eventID, maxMembers int32, status domain.TeamStatus, err error) {
	query := `SELECT event_id, max_members, status FROM teams WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, teamID).Scan(&eventID, &maxMembers, &status)
	if err == sql.ErrNoRows {
		err = domain.NewNotFoundError("team")
	}
	return eventID, maxMembers, status, err
}

// addMemberTx adds userID to a team whose row the caller holds locked. It
// enforces the open-status, capacity, already-member and
// single-team-per-event invariants, and recomputes the derived status.
func addMemberTx(ctx context.Context, tx *sql.Tx, teamID, eventID, maxMembers int32, status domain.TeamStatus, userID int32, role string, now time.Time) error {
	if !status.AcceptsMembers() {
		return domain.ErrTeamNotOpen
	}

	// Two concurrent joins by one user into different teams of the same event
	// lock different team rows, so serialize on the (event, user) pair too.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, eventID, userID); err != nil {
		return err
	}

	var onTeam int
	query := `SELECT COUNT(*) FROM team_members tm
	          JOIN teams t ON t.id = tm.team_id
	          WHERE tm.user_id = $1 AND t.event_id = $2 AND t.status NOT IN ('COMPLETED', 'DISBANDED')`
	if err := tx.QueryRowContext(ctx, query, userID, eventID).Scan(&onTeam); err != nil {
		return err
	}
	if onTeam > 0 {
		var member int
		query = `SELECT COUNT(*) FROM team_members WHERE team_id = $1 AND user_id = $2`
		if err := tx.QueryRowContext(ctx, query, teamID, userID).Scan(&member); err != nil {
			return err
		}
		if member > 0 {
			return domain.ErrAlreadyMember
		}
		return domain.ErrAlreadyOnTeam
	}

	var size int32
	query = `SELECT COUNT(*) FROM team_members WHERE team_id = $1`
	if err := tx.QueryRowContext(ctx, query, teamID).Scan(&size); err != nil {
		return err
	}
	if size >= maxMembers {
		return domain.ErrTeamFull
	}

	query = `INSERT INTO team_members (team_id, user_id, role, joined_on) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, teamID, userID, role, now); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return err
	}

	newStatus := domain.TeamStatusOpen
	if size+1 >= maxMembers {
		newStatus = domain.TeamStatusFull
	}
	query = `UPDATE teams SET status = $1, updated_on = $2 WHERE id = $3`
	_, err := tx.ExecContext(ctx, query, newStatus, now, teamID)
	return err
}
