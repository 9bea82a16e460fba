package postgres_test

import (
	"context"
	"testing"
	"time"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var teamCols = []string{"id", "event_id", "name", "description", "leader_id", "max_members", "tech_stack", "status", "invite_code", "created_on", "updated_on"}

var memberCols = []string{"user_id", "name", "role", "joined_on"}

func expectGetTeam(mock sqlmock.Sqlmock, teamID int32, status domain.TeamStatus, memberIDs ...int32) {
	now := time.Now()
	mock.ExpectQuery("SELECT id, event_id, name, description, leader_id, max_members, tech_stack, status, invite_code, created_on, updated_on FROM teams WHERE id").
		WithArgs(teamID).
		WillReturnRows(sqlmock.NewRows(teamCols).
			AddRow(teamID, 10, "Bit Crushers", "", 1, 4, "{go,react}", status, "code-123", now, now))
	memberRows := sqlmock.NewRows(memberCols)
	for _, id := range memberIDs {
		memberRows.AddRow(id, "Member", "", now)
	}
	mock.ExpectQuery("SELECT tm.user_id, COALESCE").
		WithArgs(teamID).
		WillReturnRows(memberRows)
}

func TestTeamRepository_AddMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewTeamRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT event_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "max_members", "status"}).AddRow(10, 4, "OPEN"))
		mock.ExpectExec("pg_advisory_xact_lock").
			WithArgs(int32(10), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members tm JOIN teams").
			WithArgs(int32(2), int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectExec("INSERT INTO team_members").
			WithArgs(int32(5), int32(2), "backend", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE teams SET status").
			WithArgs(domain.TeamStatusOpen, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetTeam(mock, 5, domain.TeamStatusOpen, 1, 3, 2)

		team, err := repo.AddMember(ctx, 5, 2, "backend")
		assert.NoError(t, err)
		assert.Equal(t, int32(5), team.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FillsLastSeat", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT event_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "max_members", "status"}).AddRow(10, 4, "OPEN"))
		mock.ExpectExec("pg_advisory_xact_lock").
			WithArgs(int32(10), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members tm JOIN teams").
			WithArgs(int32(2), int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectExec("INSERT INTO team_members").
			WithArgs(int32(5), int32(2), "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Fourth member of four: derived status flips to FULL.
		mock.ExpectExec("UPDATE teams SET status").
			WithArgs(domain.TeamStatusFull, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetTeam(mock, 5, domain.TeamStatusFull, 1, 3, 4, 2)

		team, err := repo.AddMember(ctx, 5, 2, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.TeamStatusFull, team.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TeamFull", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT event_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "max_members", "status"}).AddRow(10, 3, "OPEN"))
		mock.ExpectExec("pg_advisory_xact_lock").
			WithArgs(int32(10), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members tm JOIN teams").
			WithArgs(int32(2), int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectRollback()

		_, err := repo.AddMember(ctx, 5, 2, "")
		assert.ErrorIs(t, err, domain.ErrTeamFull)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TerminalStatus", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT event_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "max_members", "status"}).AddRow(10, 4, "COMPLETED"))
		mock.ExpectRollback()

		_, err := repo.AddMember(ctx, 5, 2, "")
		assert.ErrorIs(t, err, domain.ErrTeamNotOpen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyOnAnotherTeam", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT event_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "max_members", "status"}).AddRow(10, 4, "OPEN"))
		mock.ExpectExec("pg_advisory_xact_lock").
			WithArgs(int32(10), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members tm JOIN teams").
			WithArgs(int32(2), int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members WHERE team_id = \\$1 AND user_id").
			WithArgs(int32(5), int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		_, err := repo.AddMember(ctx, 5, 2, "")
		assert.ErrorIs(t, err, domain.ErrAlreadyOnTeam)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTeamRepository_RemoveMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewTeamRepository(db)
	ctx := context.Background()

	t.Run("LeaderLeavesSuccession", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT leader_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"leader_id", "max_members", "status"}).AddRow(1, 4, "OPEN"))
		mock.ExpectExec("DELETE FROM team_members").
			WithArgs(int32(5), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT user_id FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3).AddRow(4))
		// Earliest remaining member inherits leadership.
		mock.ExpectExec("UPDATE teams SET leader_id").
			WithArgs(int32(3), domain.TeamStatusOpen, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetTeam(mock, 5, domain.TeamStatusOpen, 3, 4)

		team, err := repo.RemoveMember(ctx, 5, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), team.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LastMemberDisbands", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT leader_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"leader_id", "max_members", "status"}).AddRow(1, 4, "OPEN"))
		mock.ExpectExec("DELETE FROM team_members").
			WithArgs(int32(5), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT user_id FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
		mock.ExpectExec("UPDATE teams SET status").
			WithArgs(domain.TeamStatusDisbanded, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetTeam(mock, 5, domain.TeamStatusDisbanded)

		team, err := repo.RemoveMember(ctx, 5, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.TeamStatusDisbanded, team.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotMember", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT leader_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"leader_id", "max_members", "status"}).AddRow(1, 4, "OPEN"))
		mock.ExpectExec("DELETE FROM team_members").
			WithArgs(int32(5), int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.RemoveMember(ctx, 5, 9, 9)
		assert.ErrorIs(t, err, domain.ErrNotMember)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KickByStaleLeader", func(t *testing.T) {
		// Leadership moved to user 3 before the lock was taken; the old
		// leader's kick of the new leader must not turn into a succession.
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT leader_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"leader_id", "max_members", "status"}).AddRow(3, 4, "OPEN"))
		mock.ExpectRollback()

		_, err := repo.RemoveMember(ctx, 5, 1, 3)
		assert.ErrorIs(t, err, domain.ErrNotLeader)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KickByCurrentLeader", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT leader_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"leader_id", "max_members", "status"}).AddRow(1, 4, "OPEN"))
		mock.ExpectExec("DELETE FROM team_members").
			WithArgs(int32(5), int32(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT user_id FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(3))
		// Leadership stays put when the kicked member is not the leader.
		mock.ExpectExec("UPDATE teams SET leader_id").
			WithArgs(int32(1), domain.TeamStatusOpen, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetTeam(mock, 5, domain.TeamStatusOpen, 1, 3)

		team, err := repo.RemoveMember(ctx, 5, 1, 4)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), team.LeaderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTeamRepository_UpdateCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewTeamRepository(db)
	ctx := context.Background()

	t.Run("BelowCurrentSize", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT event_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "max_members", "status"}).AddRow(10, 5, "OPEN"))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectRollback()

		_, err := repo.UpdateCapacity(ctx, 5, 2)
		assert.ErrorIs(t, err, domain.ErrCapacityBelowSize)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ShrinkToSizeBecomesFull", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT event_id, max_members, status FROM teams WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "max_members", "status"}).AddRow(10, 5, "OPEN"))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members WHERE team_id").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectExec("UPDATE teams SET max_members").
			WithArgs(int32(3), domain.TeamStatusFull, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectGetTeam(mock, 5, domain.TeamStatusFull, 1, 3, 4)

		team, err := repo.UpdateCapacity(ctx, 5, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.TeamStatusFull, team.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTeamRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewTeamRepository(db)
	ctx := context.Background()

	t.Run("LeaderAlreadyOnTeam", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("pg_advisory_xact_lock").
			WithArgs(int32(10), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM team_members tm JOIN teams").
			WithArgs(int32(1), int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		team := &domain.Team{EventID: 10, LeaderID: 1, Name: "Bit Crushers", MaxMembers: 4, Status: domain.TeamStatusForming}
		err := repo.Create(ctx, team)
		assert.ErrorIs(t, err, domain.ErrAlreadyOnTeam)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTeamRepository_GetActiveForUser_NoTeam(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewTeamRepository(db)

	mock.ExpectQuery("SELECT t.id FROM teams t").
		WithArgs(int32(10), int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	team, err := repo.GetActiveForUser(context.Background(), 10, 2)
	assert.NoError(t, err)
	assert.Nil(t, team)
}
