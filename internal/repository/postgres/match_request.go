package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/repository"
)

type matchRequestRepository struct {
	db *sql.DB
}

func NewMatchRequestRepository(db *sql.DB) repository.MatchRequestRepository {
	return &matchRequestRepository{db: db}
}

const matchRequestColumns = `id, requester_id, recipient_id, event_id, team_id, type, status, score, score_details, message, created_on, responded_on, expires_on`

func scanMatchRequest(row interface{ Scan(...any) error }) (*domain.MatchRequest, error) {
	req := &domain.MatchRequest{}
	var teamID sql.NullInt32
	var respondedOn sql.NullTime
	var detailsRaw []byte
	err := row.Scan(&req.ID, &req.RequesterID, &req.RecipientID, &req.EventID, &teamID, &req.Type,
		&req.Status, &req.Score, &detailsRaw, &req.Message, &req.CreatedOn, &respondedOn, &req.ExpiresOn)
	if err != nil {
		return nil, err
	}
	if teamID.Valid {
		req.TeamID = &teamID.Int32
	}
	if respondedOn.Valid {
		req.RespondedOn = &respondedOn.Time
	}
	if len(detailsRaw) > 0 {
		if err := json.Unmarshal(detailsRaw, &req.ScoreDetails); err != nil {
			return nil, fmt.Errorf("failed to decode score details: %w", err)
		}
	}
	return req, nil
}

func (r *matchRequestRepository) Create(ctx context.Context, req *domain.MatchRequest) error {
	details, err := json.Marshal(req.ScoreDetails)
	if err != nil {
		return fmt.Errorf("failed to encode score details: %w", err)
	}
	// The partial unique index on pending (requester, recipient, event)
	// triples makes the duplicate check race-free: a concurrent insert loses
	// with a unique violation instead of slipping past a prior SELECT.
	query := `INSERT INTO match_requests (requester_id, recipient_id, event_id, team_id, type, status, score, score_details, message, created_on, expires_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = r.db.QueryRowContext(ctx, query, req.RequesterID, req.RecipientID, req.EventID, req.TeamID,
		req.Type, req.Status, req.Score, details, req.Message, req.CreatedOn, req.ExpiresOn).Scan(&req.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateActiveRequest
	}
	return err
}

func (r *matchRequestRepository) GetByID(ctx context.Context, id int32) (*domain.MatchRequest, error) {
	query := `SELECT ` + matchRequestColumns + ` FROM match_requests WHERE id = $1`
	req, err := scanMatchRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("match request")
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *matchRequestRepository) Resolve(ctx context.Context, id int32, status domain.MatchRequestStatus, respondedOn time.Time) error {
	// Guarding on PENDING keeps resolution single-shot under concurrent
	// responders; losing a race surfaces as already-resolved. An expired
	// request can still be cancelled but no longer accepted or rejected, so
	// responders see the expiry before the nightly sweep lands.
	query := `UPDATE match_requests SET status = $1, responded_on = $2
	          WHERE id = $3 AND status = 'PENDING' AND (expires_on > $2 OR $1 = 'CANCELLED')`
	res, err := r.db.ExecContext(ctx, query, status, respondedOn, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		req, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Resolved() {
			return domain.ErrRequestResolved
		}
		return domain.ErrRequestExpired
	}
	return nil
}

func (r *matchRequestRepository) AcceptWithTeamJoin(ctx context.Context, requestID, teamID, userID int32, respondedOn time.Time) (*domain.MatchRequest, *domain.Team, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	// Lock the request row first so a racing cancel or second respond waits.
	var status domain.MatchRequestStatus
	var expiresOn time.Time
	query := `SELECT status, expires_on FROM match_requests WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, requestID).Scan(&status, &expiresOn)
	if err == sql.ErrNoRows {
		return nil, nil, domain.NewNotFoundError("match request")
	}
	if err != nil {
		return nil, nil, err
	}
	if status != domain.MatchRequestStatusPending {
		return nil, nil, domain.ErrRequestResolved
	}
	if !expiresOn.After(respondedOn) {
		return nil, nil, domain.ErrRequestExpired
	}

	eventID, maxMembers, teamStatus, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return nil, nil, err
	}
	if err := addMemberTx(ctx, tx, teamID, eventID, maxMembers, teamStatus, userID, "", respondedOn); err != nil {
		// Rolling back leaves the request pending: the accept and the join
		// either both happen or neither does.
		return nil, nil, err
	}

	query = `UPDATE match_requests SET status = $1, responded_on = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, query, domain.MatchRequestStatusAccepted, respondedOn, requestID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	req, err := r.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	team, err := getTeam(ctx, r.db, teamID)
	if err != nil {
		return nil, nil, err
	}
	return req, team, nil
}

func (r *matchRequestRepository) ListByUser(ctx context.Context, userID int32, direction string, status domain.MatchRequestStatus) ([]domain.MatchRequest, error) {
	query := `SELECT ` + matchRequestColumns + ` FROM match_requests WHERE `
	args := []any{userID}
	switch direction {
	case "sent":
		query += `requester_id = $1`
	case "received":
		query += `recipient_id = $1`
	default:
		query += `(requester_id = $1 OR recipient_id = $1)`
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.MatchRequest
	for rows.Next() {
		req, err := scanMatchRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

func (r *matchRequestRepository) FindMutual(ctx context.Context, userID int32) ([]domain.MutualMatch, error) {
	// Two independent accepted requests, one in each direction, for the same
	// event. The match timestamp is the later of the two responses. A pair
	// can re-request after a first acceptance (only PENDING is unique), so
	// collapse repeats to one row per (pair, event).
	query := `SELECT a.recipient_id, a.event_id, MAX(GREATEST(a.responded_on, b.responded_on))
	          FROM match_requests a
	          JOIN match_requests b ON b.requester_id = a.recipient_id
	            AND b.recipient_id = a.requester_id
	            AND b.event_id = a.event_id
	          WHERE a.requester_id = $1 AND a.status = 'ACCEPTED' AND b.status = 'ACCEPTED'
	          GROUP BY a.recipient_id, a.event_id
	          ORDER BY 3 DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.MutualMatch
	for rows.Next() {
		var m domain.MutualMatch
		if err := rows.Scan(&m.OtherUserID, &m.EventID, &m.MatchedOn); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *matchRequestRepository) StatusCounts(ctx context.Context, userID int32) (domain.RequestCounts, domain.RequestCounts, error) {
	var sent, received domain.RequestCounts
	query := `SELECT
	            COUNT(*) FILTER (WHERE requester_id = $1),
	            COUNT(*) FILTER (WHERE requester_id = $1 AND status = 'PENDING'),
	            COUNT(*) FILTER (WHERE requester_id = $1 AND status = 'ACCEPTED'),
	            COUNT(*) FILTER (WHERE requester_id = $1 AND status = 'REJECTED'),
	            COUNT(*) FILTER (WHERE recipient_id = $1),
	            COUNT(*) FILTER (WHERE recipient_id = $1 AND status = 'PENDING'),
	            COUNT(*) FILTER (WHERE recipient_id = $1 AND status = 'ACCEPTED'),
	            COUNT(*) FILTER (WHERE recipient_id = $1 AND status = 'REJECTED')
	          FROM match_requests WHERE requester_id = $1 OR recipient_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&sent.Total, &sent.Pending, &sent.Accepted, &sent.Rejected,
		&received.Total, &received.Pending, &received.Accepted, &received.Rejected)
	if err != nil {
		return sent, received, err
	}
	return sent, received, nil
}

func (r *matchRequestRepository) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE match_requests SET status = $1, responded_on = $2 WHERE status = 'PENDING' AND expires_on < $2`
	res, err := r.db.ExecContext(ctx, query, domain.MatchRequestStatusCancelled, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
