package repository

import (
	"context"

	"github.com/alexanderramin/dealdesk/internal/db"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// SQLiteMeetingBriefRepo implements MeetingBriefRepo using a SQLite database.
type SQLiteMeetingBriefRepo struct {
	db db.DBTX
}

func NewSQLiteMeetingBriefRepo(db db.DBTX) *SQLiteMeetingBriefRepo {
	return &SQLiteMeetingBriefRepo{db: db}
}

// Upsert keeps one brief per deal; the original id and created_at survive.
func (r *SQLiteMeetingBriefRepo) Upsert(ctx context.Context, b *domain.MeetingBrief) error {
	objections, err := encodeStrings(b.Objections)
	if err != nil {
		return err
	}
	proofPoints, err := encodeStrings(b.ProofPoints)
	if err != nil {
		return err
	}
	query := `INSERT INTO meeting_briefs
		(id, workspace_id, deal_id, summary, primary_goal, objections_json, proof_points_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(workspace_id, deal_id) DO UPDATE SET
			summary = excluded.summary,
			primary_goal = excluded.primary_goal,
			objections_json = excluded.objections_json,
			proof_points_json = excluded.proof_points_json,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		b.ID, b.WorkspaceID, b.DealID, b.Summary, b.PrimaryGoal, objections, proofPoints,
		formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	return storeErr("upserting meeting brief", err)
}

func (r *SQLiteMeetingBriefRepo) GetByDeal(ctx context.Context, workspaceID, dealID string) (*domain.MeetingBrief, error) {
	query := `SELECT id, workspace_id, deal_id, summary, primary_goal, objections_json, proof_points_json, created_at, updated_at
		FROM meeting_briefs WHERE workspace_id = ? AND deal_id = ?`
	var b domain.MeetingBrief
	var objections, proofPoints, createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, workspaceID, dealID).Scan(
		&b.ID, &b.WorkspaceID, &b.DealID, &b.Summary, &b.PrimaryGoal, &objections, &proofPoints, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, notFoundOr("meeting brief", err)
	}
	if b.Objections, err = decodeStrings(objections); err != nil {
		return nil, err
	}
	if b.ProofPoints, err = decodeStrings(proofPoints); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// SQLiteFollowUpDraftRepo implements FollowUpDraftRepo using a SQLite database.
type SQLiteFollowUpDraftRepo struct {
	db db.DBTX
}

func NewSQLiteFollowUpDraftRepo(db db.DBTX) *SQLiteFollowUpDraftRepo {
	return &SQLiteFollowUpDraftRepo{db: db}
}

func (r *SQLiteFollowUpDraftRepo) Upsert(ctx context.Context, d *domain.FollowUpDraft) error {
	channel, err := domain.ChannelCodec.ToDB(d.Channel)
	if err != nil {
		return err
	}
	query := `INSERT INTO follow_up_drafts (id, workspace_id, deal_id, channel, subject, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(workspace_id, deal_id) DO UPDATE SET
			channel = excluded.channel,
			subject = excluded.subject,
			body = excluded.body,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		d.ID, d.WorkspaceID, d.DealID, channel, d.Subject, d.Body, formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
	)
	return storeErr("upserting follow-up draft", err)
}

func (r *SQLiteFollowUpDraftRepo) GetByDeal(ctx context.Context, workspaceID, dealID string) (*domain.FollowUpDraft, error) {
	query := `SELECT id, workspace_id, deal_id, channel, subject, body, created_at, updated_at
		FROM follow_up_drafts WHERE workspace_id = ? AND deal_id = ?`
	var d domain.FollowUpDraft
	var channel, createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, workspaceID, dealID).Scan(
		&d.ID, &d.WorkspaceID, &d.DealID, &channel, &d.Subject, &d.Body, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, notFoundOr("follow-up draft", err)
	}
	if d.Channel, err = domain.ChannelCodec.FromDB(channel); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
