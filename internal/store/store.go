package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/tsawler/polarity/internal/tweets"
)

// Record is one annotated tweet ready for export.
type Record struct {
	Tweet     tweets.Tweet
	Language  string   // "N/A" when the tweet has no language
	Sentiment *float64 // nil when no score could be produced
}

// TweetRow is a row of the main table.
type TweetRow struct {
	ID         string   `db:"id"`
	UserID     string   `db:"user_id"`
	CreatedAt  string   `db:"created_at"`
	Text       string   `db:"text"`
	Language   string   `db:"language"`
	Sentiment  *float64 `db:"sentiment"`
	Favourites int      `db:"favourites"`
	Retweets   int      `db:"retweets"`
	Truncated  bool     `db:"truncated"`
}

// UserRow is a row of the users table.
type UserRow struct {
	UserID              string  `db:"user_id"`
	DateCreated         string  `db:"date_created"`
	ScreenName          string  `db:"screen_name"`
	Name                string  `db:"name"`
	Description         *string `db:"description"`
	Verified            bool    `db:"verified"`
	FollowerCount       int     `db:"follower_count"`
	Language            *string `db:"language"`
	DefaultProfile      bool    `db:"default_profile"`
	DefaultProfileImage bool    `db:"default_profile_image"`
}

// ReplyRow is a row of the replies table.
type ReplyRow struct {
	ID        string  `db:"id"`
	ReplyID   string  `db:"reply_id"`
	ReplyUser *string `db:"reply_user"`
}

// LanguageSummary aggregates the sentiment column per language.
type LanguageSummary struct {
	Language string   `db:"language" json:"language"`
	Tweets   int      `db:"tweets" json:"tweets"`
	Scored   int      `db:"scored" json:"scored"`
	Mean     *float64 `db:"mean" json:"mean"`
}

// Store is the persistence interface of the exporter.
type Store interface {
	SaveBatch(ctx context.Context, recs []Record) error
	CountTweets(ctx context.Context) (int, error)
	GetTweet(ctx context.Context, id string) (*TweetRow, error)
	GetUser(ctx context.Context, userID string) (*UserRow, error)
	GetReply(ctx context.Context, id string) (*ReplyRow, error)
	ListHashtags(ctx context.Context, id string) ([]string, error)
	Summary(ctx context.Context) ([]LanguageSummary, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBatch writes recs in one transaction. For tweets already present the
// first stored row wins; users, replies and hashtags take the latest values.
func (s *SQLiteStore) SaveBatch(ctx context.Context, recs []Record) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	for i := range recs {
		if err := saveRecord(ctx, tx, &recs[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func saveRecord(ctx context.Context, tx *sqlx.Tx, rec *Record) error {
	t := &rec.Tweet

	_, err := tx.ExecContext(ctx, `
		INSERT INTO main (id, user_id, created_at, text, language, sentiment, favourites, retweets, truncated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, t.IDStr, t.User.IDStr, t.Created.UTC().Format(time.RFC3339), t.Text, rec.Language,
		rec.Sentiment, t.FavoriteCount, t.RetweetCount, t.Truncated)
	if err != nil {
		return fmt.Errorf("insert tweet %s: %w", t.IDStr, err)
	}

	u := &t.User
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (user_id, date_created, screen_name, name, description, verified, follower_count, language, default_profile, default_profile_image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			date_created = excluded.date_created,
			screen_name = excluded.screen_name,
			name = excluded.name,
			description = excluded.description,
			verified = excluded.verified,
			follower_count = excluded.follower_count,
			language = excluded.language,
			default_profile = excluded.default_profile,
			default_profile_image = excluded.default_profile_image
	`, u.IDStr, u.Created.Format(time.DateOnly), u.ScreenName, u.Name, u.Description,
		u.Verified, u.FollowersCount, u.Lang, u.DefaultProfile, u.DefaultProfileImage)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.IDStr, err)
	}

	if t.InReplyToStatusIDStr != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO replies (id, reply_id, reply_user)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				reply_id = excluded.reply_id,
				reply_user = excluded.reply_user
		`, t.IDStr, *t.InReplyToStatusIDStr, t.InReplyToUserIDStr)
		if err != nil {
			return fmt.Errorf("upsert reply %s: %w", t.IDStr, err)
		}
	}

	for _, tag := range t.HashtagTexts() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO hashtag (id, hashtag) VALUES (?, ?)
			ON CONFLICT(id, hashtag) DO NOTHING
		`, t.IDStr, tag)
		if err != nil {
			return fmt.Errorf("insert hashtag %s/%s: %w", t.IDStr, tag, err)
		}
	}

	return nil
}

func (s *SQLiteStore) CountTweets(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM main"); err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) GetTweet(ctx context.Context, id string) (*TweetRow, error) {
	var row TweetRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM main WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get tweet %s: %w", id, err)
	}
	return &row, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*UserRow, error) {
	var row UserRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM users WHERE user_id = ?", userID); err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &row, nil
}

func (s *SQLiteStore) GetReply(ctx context.Context, id string) (*ReplyRow, error) {
	var row ReplyRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM replies WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get reply %s: %w", id, err)
	}
	return &row, nil
}

func (s *SQLiteStore) ListHashtags(ctx context.Context, id string) ([]string, error) {
	var tags []string
	if err := s.db.SelectContext(ctx, &tags, "SELECT hashtag FROM hashtag WHERE id = ? ORDER BY hashtag", id); err != nil {
		return nil, fmt.Errorf("list hashtags %s: %w", id, err)
	}
	return tags, nil
}

func (s *SQLiteStore) Summary(ctx context.Context) ([]LanguageSummary, error) {
	var out []LanguageSummary
	err := s.db.SelectContext(ctx, &out, `
		SELECT language, COUNT(*) AS tweets, COUNT(sentiment) AS scored, AVG(sentiment) AS mean
		FROM main
		GROUP BY language
		ORDER BY language
	`)
	if err != nil {
		return nil, fmt.Errorf("summarise sentiment: %w", err)
	}
	return out, nil
}
