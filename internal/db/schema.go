package db

const schemaSQL = `
-- ===========================================================================
-- SCREENS: one row per logical screen, payload is schema-less JSON text
-- ===========================================================================

CREATE TABLE IF NOT EXISTS screens (
  slug TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  payload TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- ===========================================================================
-- SETTINGS: flat key/value overrides (theme colors, flags, media URLs)
-- ===========================================================================

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`
