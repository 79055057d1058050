package db

// SchemaVersion is the normalized layout: every reference entity is scoped to a
// sport or game, and bets point at them by id.
const SchemaVersion = 2

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS sports_games (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL CHECK (category IN ('Sport', 'Esport'))
);
CREATE INDEX IF NOT EXISTS idx_sports_games_category ON sports_games(category);

CREATE TABLE IF NOT EXISTS teams (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    sport_game_id INTEGER NOT NULL REFERENCES sports_games(id),
    UNIQUE (name, sport_game_id)
);
CREATE INDEX IF NOT EXISTS idx_teams_name ON teams(name);

CREATE TABLE IF NOT EXISTS tournaments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    sport_game_id INTEGER NOT NULL REFERENCES sports_games(id),
    UNIQUE (name, sport_game_id)
);
CREATE INDEX IF NOT EXISTS idx_tournaments_name ON tournaments(name);

CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    sport_game_id INTEGER NOT NULL REFERENCES sports_games(id),
    UNIQUE (name, sport_game_id)
);
CREATE INDEX IF NOT EXISTS idx_locations_name ON locations(name);

CREATE TABLE IF NOT EXISTS bet_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    sport_game_id INTEGER NOT NULL REFERENCES sports_games(id),
    description TEXT,
    UNIQUE (name, sport_game_id)
);
CREATE INDEX IF NOT EXISTS idx_bet_types_name ON bet_types(name);

CREATE TABLE IF NOT EXISTS bet_type_options (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    bet_type_id INTEGER NOT NULL REFERENCES bet_types(id),
    option_type TEXT NOT NULL CHECK (option_type IN ('dropdown', 'text')),
    options TEXT,
    placeholder TEXT
);
CREATE INDEX IF NOT EXISTS idx_bet_type_options_type ON bet_type_options(bet_type_id);

CREATE TABLE IF NOT EXISTS bets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL CHECK (category IN ('Sport', 'Esport')),
    sport_game_id INTEGER NOT NULL REFERENCES sports_games(id),
    team_a_id INTEGER NOT NULL REFERENCES teams(id),
    team_b_id INTEGER NOT NULL REFERENCES teams(id),
    tournament_id INTEGER REFERENCES tournaments(id),
    location_id INTEGER REFERENCES locations(id),
    bet_type_id INTEGER NOT NULL REFERENCES bet_types(id),
    bet_option TEXT,
    line REAL,
    odds REAL NOT NULL,
    stake REAL NOT NULL,
    result TEXT,
    cash_out_amount REAL,
    date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bets_date ON bets(date);
CREATE INDEX IF NOT EXISTS idx_bets_sport_game ON bets(sport_game_id);
CREATE INDEX IF NOT EXISTS idx_bets_result ON bets(result);
`
