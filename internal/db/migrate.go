package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id           TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		name         TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_accounts_workspace ON accounts(workspace_id)`,

	`CREATE TABLE IF NOT EXISTS deals (
		id           TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		account_id   TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		stage        TEXT NOT NULL
		             CHECK(stage IN ('DISCOVERY','EVALUATION','PROPOSAL','PROCUREMENT','CLOSED_WON','CLOSED_LOST')),
		amount       INTEGER NOT NULL DEFAULT 0 CHECK(amount >= 0),
		confidence   REAL NOT NULL DEFAULT 0 CHECK(confidence >= 0 AND confidence <= 1),
		close_date   TEXT,
		risk_summary TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deals_workspace_account ON deals(workspace_id, account_id, updated_at)`,

	`CREATE TABLE IF NOT EXISTS signals (
		id           TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		account_id   TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		type         TEXT NOT NULL
		             CHECK(type IN ('HIRING','FUNDING','TOOLING','ENGAGEMENT')),
		summary      TEXT NOT NULL,
		happened_at  TEXT NOT NULL,
		score        INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_signals_workspace_happened ON signals(workspace_id, happened_at)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id           TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		deal_id      TEXT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		type         TEXT NOT NULL
		             CHECK(type IN ('CALL','EMAIL','MEETING','NOTE')),
		happened_at  TEXT NOT NULL,
		summary      TEXT NOT NULL,
		source       TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_deal ON activities(deal_id, happened_at)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		deal_id      TEXT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		owner        TEXT NOT NULL CHECK(owner IN ('REP','MANAGER','SYSTEM')),
		due_at       TEXT NOT NULL,
		priority     TEXT NOT NULL CHECK(priority IN ('HIGH','MEDIUM','LOW')),
		status       TEXT NOT NULL DEFAULT 'TODO' CHECK(status IN ('TODO','IN_PROGRESS','DONE')),
		channel      TEXT NOT NULL CHECK(channel IN ('EMAIL','PHONE','LINKEDIN','MEETING')),
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_deal ON tasks(deal_id, due_at)`,

	`CREATE TABLE IF NOT EXISTS outbound_approvals (
		id               TEXT PRIMARY KEY,
		workspace_id     TEXT NOT NULL,
		deal_id          TEXT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		channel          TEXT NOT NULL CHECK(channel IN ('EMAIL','PHONE','LINKEDIN','MEETING')),
		subject          TEXT NOT NULL,
		body             TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'PENDING' CHECK(status IN ('PENDING','APPROVED','REJECTED')),
		requested_by     TEXT NOT NULL,
		reviewed_by      TEXT NOT NULL DEFAULT '',
		rejection_reason TEXT NOT NULL DEFAULT '',
		reviewed_at      TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_approvals_deal_status ON outbound_approvals(deal_id, status)`,

	`CREATE TABLE IF NOT EXISTS signal_notifications (
		id                 TEXT PRIMARY KEY,
		workspace_id       TEXT NOT NULL,
		signal_id          TEXT NOT NULL REFERENCES signals(id) ON DELETE CASCADE,
		deal_id            TEXT REFERENCES deals(id) ON DELETE SET NULL,
		priority           TEXT NOT NULL CHECK(priority IN ('HIGH','MEDIUM','LOW')),
		summary            TEXT NOT NULL,
		recommended_action TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'UNREAD' CHECK(status IN ('UNREAD','ACKNOWLEDGED')),
		acknowledged_by    TEXT NOT NULL DEFAULT '',
		acknowledged_at    TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		UNIQUE(workspace_id, signal_id)
	)`,

	`CREATE TABLE IF NOT EXISTS meeting_briefs (
		id                TEXT PRIMARY KEY,
		workspace_id      TEXT NOT NULL,
		deal_id           TEXT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		summary           TEXT NOT NULL,
		primary_goal      TEXT NOT NULL,
		objections_json   TEXT NOT NULL DEFAULT '[]',
		proof_points_json TEXT NOT NULL DEFAULT '[]',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		UNIQUE(workspace_id, deal_id)
	)`,

	`CREATE TABLE IF NOT EXISTS follow_up_drafts (
		id           TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		deal_id      TEXT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		channel      TEXT NOT NULL CHECK(channel IN ('EMAIL','PHONE','LINKEDIN','MEETING')),
		subject      TEXT NOT NULL,
		body         TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		UNIQUE(workspace_id, deal_id)
	)`,

	`CREATE TABLE IF NOT EXISTS audit_events (
		id            TEXT PRIMARY KEY,
		workspace_id  TEXT NOT NULL,
		actor_id      TEXT NOT NULL,
		action        TEXT NOT NULL,
		entity_type   TEXT NOT NULL,
		entity_id     TEXT NOT NULL,
		metadata_json TEXT NOT NULL DEFAULT '{}',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_workspace_entity ON audit_events(workspace_id, entity_type, entity_id)`,
}
