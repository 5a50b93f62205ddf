package storage

const schema = `
-- The 'buried' table records which cards are suspended and until when.
-- One row per card; re-burying a card replaces its row.
CREATE TABLE IF NOT EXISTS buried (
    cid   INTEGER PRIMARY KEY,
    until INTEGER NOT NULL -- expiry, unix seconds
);

-- Expiry sweeps scan by 'until'.
CREATE INDEX IF NOT EXISTS idx_buried_until ON buried(until);
`
