// Package tweets reads tweet archives stored as JSON lines, one tweet
// object per line, as written by the streaming API.
package tweets

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// TimeLayout is the timestamp format of created_at fields.
const TimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

const maxLineSize = 4 << 20

// ErrInvalid marks a line that is not a usable tweet.
var ErrInvalid = errors.New("invalid tweet")

// Tweet is the subset of a tweet object the exporter uses.
type Tweet struct {
	IDStr                string   `json:"id_str"`
	CreatedAt            string   `json:"created_at"`
	Text                 string   `json:"text"`
	Lang                 *string  `json:"lang"`
	FavoriteCount        int      `json:"favorite_count"`
	RetweetCount         int      `json:"retweet_count"`
	Truncated            bool     `json:"truncated"`
	InReplyToStatusIDStr *string  `json:"in_reply_to_status_id_str"`
	InReplyToUserIDStr   *string  `json:"in_reply_to_user_id_str"`
	User                 User     `json:"user"`
	Entities             Entities `json:"entities"`

	Created time.Time `json:"-"`
}

// User is the author of a tweet.
type User struct {
	IDStr               string  `json:"id_str"`
	ScreenName          string  `json:"screen_name"`
	Name                string  `json:"name"`
	Description         *string `json:"description"`
	CreatedAt           string  `json:"created_at"`
	Lang                *string `json:"lang"`
	Verified            bool    `json:"verified"`
	FollowersCount      int     `json:"followers_count"`
	DefaultProfile      bool    `json:"default_profile"`
	DefaultProfileImage bool    `json:"default_profile_image"`

	Created time.Time `json:"-"`
}

// Entities holds the parsed entities of a tweet.
type Entities struct {
	Hashtags []Hashtag `json:"hashtags"`
}

// Hashtag is one #tag of a tweet, without the leading '#'.
type Hashtag struct {
	Text string `json:"text"`
}

// Language returns the tweet language and whether the field was present.
func (t *Tweet) Language() (string, bool) {
	if t.Lang == nil {
		return "", false
	}
	return *t.Lang, true
}

// HashtagTexts returns the hashtags in order of appearance.
func (t *Tweet) HashtagTexts() []string {
	tags := make([]string, 0, len(t.Entities.Hashtags))
	for _, h := range t.Entities.Hashtags {
		tags = append(tags, h.Text)
	}
	return tags
}

// Parse decodes and validates a single JSON line.
func Parse(line []byte) (*Tweet, error) {
	var t *Tweet
	if err := json.Unmarshal(line, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: null", ErrInvalid)
	}
	if t.IDStr == "" || t.User.IDStr == "" {
		return nil, fmt.Errorf("%w: missing id_str", ErrInvalid)
	}

	var err error
	if t.Created, err = time.Parse(TimeLayout, t.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: created_at: %v", ErrInvalid, err)
	}
	if t.User.Created, err = time.Parse(TimeLayout, t.User.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: user.created_at: %v", ErrInvalid, err)
	}
	return t, nil
}

// Reader yields tweets from a JSON-lines stream. Blank lines are ignored and
// lines that do not hold a valid tweet are skipped and counted.
type Reader struct {
	sc      *bufio.Scanner
	line    int
	skipped int
	lastErr error
}

// NewReader returns a Reader for r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next valid tweet, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (*Tweet, error) {
	for r.sc.Scan() {
		r.line++
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		t, err := Parse(line)
		if err != nil {
			r.skipped++
			r.lastErr = fmt.Errorf("line %d: %w", r.line, err)
			continue
		}
		return t, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

// Skipped returns the number of invalid lines seen so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// LastSkipError describes the most recent skipped line, if any.
func (r *Reader) LastSkipError() error {
	return r.lastErr
}

// ReadFile reads every valid tweet in path.
func ReadFile(path string) ([]Tweet, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := NewReader(f)
	var out []Tweet
	for {
		t, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, r.Skipped(), nil
		}
		if err != nil {
			return nil, r.Skipped(), fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, *t)
	}
}

// Files expands path into the files to read: path itself when it is a
// file, or the regular files directly inside it when it is a directory.
func Files(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
