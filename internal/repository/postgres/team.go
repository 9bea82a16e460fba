package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"

	"github.com/lib/pq"
)

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

const teamColumns = `id, event_id, name, description, leader_id, max_members, tech_stack, status, invite_code, created_on, updated_on`

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanTeam(row interface{ Scan(...any) error }) (*domain.Team, error) {
	t := &domain.Team{}
	err := row.Scan(&t.ID, &t.EventID, &t.Name, &t.Description, &t.LeaderID, &t.MaxMembers,
		pq.Array(&t.TechStack), &t.Status, &t.InviteCode, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// loadMembers fills the member list ordered by join time; that order is the
// leadership succession order.
func loadMembers(ctx context.Context, q querier, team *domain.Team) error {
	query := `SELECT tm.user_id, COALESCE(p.name, ''), tm.role, tm.joined_on
	          FROM team_members tm
	          LEFT JOIN profiles p ON p.user_id = tm.user_id
	          WHERE tm.team_id = $1
	          ORDER BY tm.joined_on, tm.user_id`
	rows, err := q.QueryContext(ctx, query, team.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Role, &m.JoinedOn); err != nil {
			return err
		}
		team.Members = append(team.Members, m)
	}
	return rows.Err()
}

func getTeam(ctx context.Context, q querier, id int32) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	t, err := scanTeam(q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("team")
	}
	if err != nil {
		return nil, err
	}
	if err := loadMembers(ctx, q, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Same (event, user) serialization as joins, so creating a team races
	// neither a join elsewhere nor a concurrent create by the same leader.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, team.EventID, team.LeaderID); err != nil {
		return err
	}

	var onTeam int
	query := `SELECT COUNT(*) FROM team_members tm
	          JOIN teams t ON t.id = tm.team_id
	          WHERE tm.user_id = $1 AND t.event_id = $2 AND t.status NOT IN ('COMPLETED', 'DISBANDED')`
	if err := tx.QueryRowContext(ctx, query, team.LeaderID, team.EventID).Scan(&onTeam); err != nil {
		return err
	}
	if onTeam > 0 {
		return domain.ErrAlreadyOnTeam
	}

	query = `INSERT INTO teams (event_id, name, description, leader_id, max_members, tech_stack, status, invite_code, created_on, updated_on)
	         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	err = tx.QueryRowContext(ctx, query, team.EventID, team.Name, team.Description, team.LeaderID,
		team.MaxMembers, pq.Array(team.TechStack), team.Status, team.InviteCode, team.CreatedOn).Scan(&team.ID)
	if err != nil {
		return err
	}

	query = `INSERT INTO team_members (team_id, user_id, role, joined_on) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, team.ID, team.LeaderID, "Leader", team.CreatedOn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	team.Members = []domain.TeamMember{{UserID: team.LeaderID, Role: "Leader", JoinedOn: team.CreatedOn}}
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	return getTeam(ctx, r.db, id)
}

func (r *teamRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Team, error) {
	var id int32
	query := `SELECT id FROM teams WHERE invite_code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("team")
	}
	if err != nil {
		return nil, err
	}
	return getTeam(ctx, r.db, id)
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, userID int32, role string) (*domain.Team, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	eventID, maxMembers, status, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if err := addMemberTx(ctx, tx, teamID, eventID, maxMembers, status, userID, role, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return getTeam(ctx, r.db, teamID)
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, actingUserID, targetUserID int32) (*domain.Team, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var leaderID, maxMembers int32
	var status domain.TeamStatus
	query := `SELECT leader_id, max_members, status FROM teams WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, teamID).Scan(&leaderID, &maxMembers, &status)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("team")
	}
	if err != nil {
		return nil, err
	}
	if status.Terminal() {
		return nil, domain.ErrTeamNotOpen
	}

	// Kicks are re-authorized against the locked leader_id: whoever leads
	// after a concurrent transfer is the one whose say counts. This also
	// covers the current leader as kick target, since the kicker then
	// cannot be the leader themselves.
	if actingUserID != targetUserID && actingUserID != leaderID {
		return nil, domain.ErrNotLeader
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, targetUserID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, domain.ErrNotMember
	}

	// Remaining members in join order decide both the disband case and who
	// inherits leadership.
	query = `SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY joined_on, user_id`
	rows, err := tx.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	var remaining []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		remaining = append(remaining, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if len(remaining) == 0 {
		query = `UPDATE teams SET status = $1, updated_on = $2 WHERE id = $3`
		if _, err := tx.ExecContext(ctx, query, domain.TeamStatusDisbanded, now, teamID); err != nil {
			return nil, err
		}
	} else {
		newLeader := leaderID
		if targetUserID == leaderID {
			newLeader = remaining[0]
		}
		newStatus := domain.TeamStatusOpen
		if int32(len(remaining)) >= maxMembers {
			newStatus = domain.TeamStatusFull
		}
		query = `UPDATE teams SET leader_id = $1, status = $2, updated_on = $3 WHERE id = $4`
		if _, err := tx.ExecContext(ctx, query, newLeader, newStatus, now, teamID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return getTeam(ctx, r.db, teamID)
}

func (r *teamRepository) UpdateCapacity(ctx context.Context, teamID, newMax int32) (*domain.Team, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, _, status, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if status.Terminal() {
		return nil, domain.ErrTeamNotOpen
	}

	var size int32
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID).Scan(&size); err != nil {
		return nil, err
	}
	if newMax < size {
		return nil, domain.ErrCapacityBelowSize
	}

	newStatus := domain.TeamStatusOpen
	if size >= newMax {
		newStatus = domain.TeamStatusFull
	}
	query := `UPDATE teams SET max_members = $1, status = $2, updated_on = $3 WHERE id = $4`
	if _, err := tx.ExecContext(ctx, query, newMax, newStatus, time.Now().UTC(), teamID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return getTeam(ctx, r.db, teamID)
}

func (r *teamRepository) UpdateInfo(ctx context.Context, team *domain.Team) error {
	query := `UPDATE teams SET name = $1, description = $2, tech_stack = $3, updated_on = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, team.Name, team.Description, pq.Array(team.TechStack), time.Now().UTC(), team.ID)
	return err
}

func (r *teamRepository) ListByEvent(ctx context.Context, eventID int32, status domain.TeamStatus, search string) ([]domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE event_id = $1`
	args := []any{eventID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	query += ` ORDER BY created_on DESC`
	return r.listTeams(ctx, query, args...)
}

func (r *teamRepository) ListByMember(ctx context.Context, userID int32) ([]domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams
	          WHERE id IN (SELECT team_id FROM team_members WHERE user_id = $1)
	          ORDER BY created_on DESC`
	return r.listTeams(ctx, query, userID)
}

func (r *teamRepository) listTeams(ctx context.Context, query string, args ...any) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range teams {
		if err := loadMembers(ctx, r.db, &teams[i]); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *teamRepository) GetActiveForUser(ctx context.Context, eventID, userID int32) (*domain.Team, error) {
	var id int32
	query := `SELECT t.id FROM teams t
	          JOIN team_members tm ON tm.team_id = t.id
	          WHERE t.event_id = $1 AND tm.user_id = $2 AND t.status NOT IN ('COMPLETED', 'DISBANDED')`
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return getTeam(ctx, r.db, id)
}

func (r *teamRepository) CompleteForEndedEvents(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE teams SET status = $1, updated_on = $2
	          WHERE status NOT IN ('COMPLETED', 'DISBANDED')
	          AND event_id IN (SELECT id FROM events WHERE end_date < $2)`
	res, err := r.db.ExecContext(ctx, query, domain.TeamStatusCompleted, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
