package store

const createTableSQL = `
CREATE TABLE IF NOT EXISTS properties (
    position  INTEGER PRIMARY KEY,
    property  TEXT NOT NULL,
    value     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_properties_property ON properties(property);
`
