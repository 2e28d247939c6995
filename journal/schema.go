package journal

const Schema = `
CREATE TABLE IF NOT EXISTS observations (
	observation_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	pair TEXT NOT NULL,
	price REAL NOT NULL,
	trend REAL NOT NULL,
	mode TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS signals (
	signal_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	pair TEXT NOT NULL,
	action TEXT NOT NULL,
	price REAL NOT NULL,
	trend REAL NOT NULL,
	reason TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_pair_time ON observations(pair, time);
CREATE INDEX IF NOT EXISTS idx_signals_time ON signals(time);
`
