package store

const Schema = `
CREATE TABLE IF NOT EXISTS employers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL CHECK (length(name) > 0),
	notes TEXT,
	industry TEXT,
	favorited BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_employers_name ON employers(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	employer_id INTEGER NOT NULL,
	title TEXT NOT NULL CHECK (length(title) > 0),
	notes TEXT,
	link TEXT,
	reference_number TEXT,
	salary_estimate TEXT,
	interest_level INTEGER CHECK (interest_level IS NULL OR interest_level BETWEEN 1 AND 10),
	archived BOOLEAN NOT NULL DEFAULT 0,
	favorited BOOLEAN NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK (status IN ('not applied', 'applied', 'interview', 'offer', 'rejected', 'withdrawn')),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,

	FOREIGN KEY (employer_id) REFERENCES employers(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_jobs_employer_id ON jobs(employer_id);
CREATE INDEX IF NOT EXISTS idx_jobs_employer_title ON jobs(employer_id, title);
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at);

CREATE TABLE IF NOT EXISTS keywords (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id INTEGER NOT NULL,
	keyword TEXT NOT NULL CHECK (length(keyword) > 0),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,

	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

-- One row per keyword per job
CREATE UNIQUE INDEX IF NOT EXISTS idx_keywords_job_keyword ON keywords(job_id, keyword);

CREATE TABLE IF NOT EXISTS user_keywords (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword TEXT NOT NULL UNIQUE CHECK (length(keyword) > 0),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id INTEGER NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('status_change', 'activity')),
	category TEXT NOT NULL,
	notes TEXT,
	previous_status TEXT,
	new_status TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,

	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activities_job_id ON activities(job_id);
CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at);

CREATE TABLE IF NOT EXISTS goals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL UNIQUE,
	target_number INTEGER NOT NULL,
	frequency_days INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
