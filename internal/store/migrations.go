package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id   TEXT NOT NULL,
	source_name TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	body        TEXT NOT NULL DEFAULT '',
	timestamp   INTEGER NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	removed     INTEGER NOT NULL DEFAULT 0 CHECK(removed IN (0, 1)),
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notification_extras (
	notification_id INTEGER NOT NULL REFERENCES notifications(id) ON DELETE CASCADE,
	key             TEXT NOT NULL,
	value           TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (notification_id, key)
);

CREATE TABLE IF NOT EXISTS summaries (
	id           TEXT PRIMARY KEY,
	period       TEXT NOT NULL,
	date         INTEGER NOT NULL,
	summary_json TEXT NOT NULL,
	generated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_timestamp ON notifications(timestamp);
CREATE INDEX IF NOT EXISTS idx_notifications_source_id ON notifications(source_id);
CREATE INDEX IF NOT EXISTS idx_summaries_date ON summaries(date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_notifications_source_timestamp
	ON notifications(source_id, timestamp);

CREATE INDEX IF NOT EXISTS idx_notifications_category
	ON notifications(category);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
