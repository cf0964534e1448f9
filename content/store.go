package content

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

// storedTimeFormat has fixed width so published_at sorts as text.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z"

const postColumns = `slug, title, date, published_at, description, excerpt_html, tags, reading_time,
	thumb_src, thumb_source, thumb_alt, thumb_width, thumb_height`

// Store is a SQLite content index. It is filled from a FileSource by the
// index command and serves as a Source for serve and build.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and applies the embedded migrations.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while the index command writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetLogger(gooseLogger{l: slog.Default()})
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(s.db, "migrations")
}

// Replace swaps the whole index for posts in one transaction.
func (s *Store) Replace(ctx context.Context, posts []Post) error {
	summaries := make([]PostSummary, len(posts))
	for i := range posts {
		summaries[i] = posts[i].PostSummary
	}
	if err := ValidatePosts(summaries); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (`+postColumns+`, body_html)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range posts {
		var publishedAt string
		if !p.PublishedAt.IsZero() {
			publishedAt = p.PublishedAt.UTC().Format(storedTimeFormat)
		}
		thumb, _ := p.Thumbnail.Get()
		if _, err := stmt.ExecContext(ctx,
			p.Slug, p.Title, p.Date, publishedAt, p.Description, p.ExcerptHTML,
			JoinTags(p.Tags), p.ReadingTimeMinutes,
			thumb.Src, thumb.Source, thumb.Alt, thumb.Width, thumb.Height,
			p.BodyHTML,
		); err != nil {
			return fmt.Errorf("insert %q: %w", p.Slug, err)
		}
	}
	return tx.Commit()
}

// Posts implements Source.
func (s *Store) Posts(ctx context.Context) ([]PostSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts
		ORDER BY published_at = '', published_at DESC, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []PostSummary
	for rows.Next() {
		p, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Post implements Source.
func (s *Store) Post(ctx context.Context, slug string) (Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+`, body_html FROM posts WHERE slug = ?`, slug)
	var body string
	summary, err := scanSummary(row, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, err
	}
	return Post{PostSummary: summary, BodyHTML: body}, nil
}

// Count returns the number of indexed posts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner, extra ...any) (PostSummary, error) {
	var (
		p                          PostSummary
		publishedAt, tags          string
		thumbSrc, thumbSource, alt string
		thumbWidth, thumbHeight    int
	)
	dest := []any{
		&p.Slug, &p.Title, &p.Date, &publishedAt, &p.Description, &p.ExcerptHTML, &tags, &p.ReadingTimeMinutes,
		&thumbSrc, &thumbSource, &alt, &thumbWidth, &thumbHeight,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return PostSummary{}, err
	}
	if publishedAt != "" {
		t, err := time.Parse(storedTimeFormat, publishedAt)
		if err != nil {
			return PostSummary{}, fmt.Errorf("post %q: published_at: %w", p.Slug, err)
		}
		p.PublishedAt = t
	}
	p.Tags = ParseTags(tags)
	if thumbSrc != "" {
		p.Thumbnail = Some(Thumbnail{
			Src:    thumbSrc,
			Source: thumbSource,
			Alt:    alt,
			Width:  thumbWidth,
			Height: thumbHeight,
		})
	}
	return p, nil
}

// JoinTags stores tags as a comma-delimited string (e.g. ",go,web,").
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// gooseLogger adapts slog to goose's Printf/Fatalf logger.
type gooseLogger struct {
	l *slog.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
	os.Exit(1)
}
