package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/avelichko/kritika/config"
	"github.com/avelichko/kritika/internal/jsonlog"
	"github.com/avelichko/kritika/repository/postgres"
)

// loader binds a CSV file to the statement that inserts one of its records.
// The files load in dependency order: users and the catalog first, then the
// records referencing them.
type loader struct {
	file    string
	insert  string
	table   string
	convert func(record []string) ([]interface{}, error)
}

var loaders = []loader{
	{
		file:   "users.csv",
		insert: `INSERT INTO users (id, username, email, role, bio, first_name, last_name) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		table:  "users",
		convert: func(record []string) ([]interface{}, error) {
			if len(record) != 7 {
				return nil, fmt.Errorf("expected 7 fields, got %d", len(record))
			}
			return []interface{}{record[0], record[1], record[2], record[3], record[4], record[5], record[6]}, nil
		},
	},
	{
		file:   "category.csv",
		insert: `INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)`,
		table:  "categories",
		convert: func(record []string) ([]interface{}, error) {
			if len(record) != 3 {
				return nil, fmt.Errorf("expected 3 fields, got %d", len(record))
			}
			return []interface{}{record[0], record[1], record[2]}, nil
		},
	},
	{
		file:   "genre.csv",
		insert: `INSERT INTO genres (id, name, slug) VALUES ($1, $2, $3)`,
		table:  "genres",
		convert: func(record []string) ([]interface{}, error) {
			if len(record) != 3 {
				return nil, fmt.Errorf("expected 3 fields, got %d", len(record))
			}
			return []interface{}{record[0], record[1], record[2]}, nil
		},
	},
	{
		file:   "titles.csv",
		insert: `INSERT INTO titles (id, name, year, category_id) VALUES ($1, $2, $3, $4)`,
		table:  "titles",
		convert: func(record []string) ([]interface{}, error) {
			if len(record) != 4 {
				return nil, fmt.Errorf("expected 4 fields, got %d", len(record))
			}
			return []interface{}{record[0], record[1], record[2], nullable(record[3])}, nil
		},
	},
	{
		file:   "genre_title.csv",
		insert: `INSERT INTO titles_genres (title_id, genre_id) VALUES ($1, $2)`,
		table:  "",
		convert: func(record []string) ([]interface{}, error) {
			// The source file carries its own id column; the link table has none.
			if len(record) != 3 {
				return nil, fmt.Errorf("expected 3 fields, got %d", len(record))
			}
			return []interface{}{record[1], record[2]}, nil
		},
	},
	{
		file:   "review.csv",
		insert: `INSERT INTO reviews (id, title_id, text, user_id, score, pub_date) VALUES ($1, $2, $3, $4, $5, $6)`,
		table:  "reviews",
		convert: func(record []string) ([]interface{}, error) {
			if len(record) != 6 {
				return nil, fmt.Errorf("expected 6 fields, got %d", len(record))
			}
			pubDate, err := time.Parse(time.RFC3339, record[5])
			if err != nil {
				return nil, err
			}
			return []interface{}{record[0], record[1], record[2], record[3], record[4], pubDate}, nil
		},
	},
	{
		file:   "comments.csv",
		insert: `INSERT INTO comments (id, review_id, text, user_id, pub_date) VALUES ($1, $2, $3, $4, $5)`,
		table:  "comments",
		convert: func(record []string) ([]interface{}, error) {
			if len(record) != 5 {
				return nil, fmt.Errorf("expected 5 fields, got %d", len(record))
			}
			pubDate, err := time.Parse(time.RFC3339, record[4])
			if err != nil {
				return nil, err
			}
			return []interface{}{record[0], record[1], record[2], record[3], pubDate}, nil
		},
	},
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	var dir string
	flag.StringVar(&dir, "dir", "./data/csv", "Directory containing the CSV files")
	flag.Parse()

	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()

	for _, l := range loaders {
		count, err := load(db, dir, l)
		if err != nil {
			logger.PrintFatal(err, map[string]string{"file": l.file})
		}
		logger.PrintInfo("imported file", map[string]string{
			"file":    l.file,
			"records": fmt.Sprintf("%d", count),
		})
	}
}

// load imports one CSV file inside a single transaction, skipping the header
// row. Explicitly inserted ids leave the table's id sequence behind, so it is
// realigned before commit.
func load(db *sql.DB, dir string, l loader) (int, error) {
	f, err := os.Open(filepath.Join(dir, l.file))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	stmt, err := tx.Prepare(l.insert)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	reader := csv.NewReader(f)
	// Skip the header row.
	_, err = reader.Read()
	if err != nil {
		return 0, err
	}
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		args, err := l.convert(record)
		if err != nil {
			return 0, fmt.Errorf("%s line %d: %w", l.file, count+2, err)
		}
		_, err = stmt.Exec(args...)
		if err != nil {
			return 0, fmt.Errorf("%s line %d: %w", l.file, count+2, err)
		}
		count++
	}
	if l.table != "" {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT coalesce(max(id), 1) FROM %s))`, l.table, l.table)
		_, err = tx.Exec(query)
		if err != nil {
			return 0, err
		}
	}
	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return count, nil
}

// nullable maps an empty CSV field to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
