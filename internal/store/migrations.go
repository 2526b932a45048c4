package store

const schema = `
CREATE TABLE IF NOT EXISTS main (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    text        TEXT NOT NULL,
    language    TEXT NOT NULL,
    sentiment   REAL,
    favourites  INTEGER NOT NULL DEFAULT 0,
    retweets    INTEGER NOT NULL DEFAULT 0,
    truncated   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_main_user ON main(user_id);
CREATE INDEX IF NOT EXISTS idx_main_language ON main(language);

CREATE TABLE IF NOT EXISTS users (
    user_id               TEXT PRIMARY KEY,
    date_created          TEXT NOT NULL,
    screen_name           TEXT NOT NULL,
    name                  TEXT NOT NULL,
    description           TEXT,
    verified              INTEGER NOT NULL DEFAULT 0,
    follower_count        INTEGER NOT NULL DEFAULT 0,
    language              TEXT,
    default_profile       INTEGER NOT NULL DEFAULT 0,
    default_profile_image INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS replies (
    id         TEXT PRIMARY KEY,
    reply_id   TEXT NOT NULL,
    reply_user TEXT
);

CREATE TABLE IF NOT EXISTS hashtag (
    id      TEXT NOT NULL,
    hashtag TEXT NOT NULL,
    PRIMARY KEY (id, hashtag)
);
`
