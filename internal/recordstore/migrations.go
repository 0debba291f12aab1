package recordstore

const schema = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    position INTEGER PRIMARY KEY,
    text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS time_blocks (
    position INTEGER PRIMARY KEY,
    start_unix INTEGER NOT NULL,
    end_unix INTEGER NOT NULL,
    finished_tasks TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS past_shifts (
    position INTEGER PRIMARY KEY,
    id TEXT,
    date_unix INTEGER NOT NULL,
    seconds INTEGER NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    finished_tasks TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_past_shifts_date ON past_shifts(date_unix);
`
