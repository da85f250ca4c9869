package db

import (
	"combo-scraper/internal/combos"
	"combo-scraper/lib/sqliteutil"
	"context"
	"database/sql"
	"fmt"
)

// Store mirrors scraped result sets into sqlite.
type Store struct {
	db *sql.DB
}

func Open(path string) (Store, error) {
	db, err := sqliteutil.OpenDB(Schema, path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(db), nil
}

// NewStore wraps a database that already has Schema applied.
func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	err = fn(tx)
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Replace deletes and rewrites the rows of every character in rs.
// Characters stored by earlier runs that are not in rs are left alone.
// listings supplies the listing path of each character and may be nil.
func (s Store) Replace(ctx context.Context, rs *combos.ResultSet, listings []combos.Character) error {
	paths := map[string]string{}
	for _, c := range listings {
		paths[c.Name] = c.ListingPath
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for position, name := range rs.Characters() {
			records, _ := rs.Get(name)

			for _, stmt := range []string{
				"delete from moves where character = ?",
				"delete from combos where character = ?",
				"delete from characters where name = ?",
			} {
				_, err := tx.ExecContext(ctx, stmt, name)
				if err != nil {
					return fmt.Errorf("clear %s: %w", name, err)
				}
			}

			_, err := tx.ExecContext(
				ctx,
				"insert into characters(name, listing_path, position) values (?, ?, ?)",
				name, paths[name], position,
			)
			if err != nil {
				return fmt.Errorf("insert character %s: %w", name, err)
			}

			for i, record := range records {
				_, err := tx.ExecContext(
					ctx,
					"insert into combos(character, position, id, hits, damage, text) values (?, ?, ?, ?, ?, ?)",
					name, i, nullable(record.ID), record.Hits, record.Damage, record.Text,
				)
				if err != nil {
					return fmt.Errorf("insert combo %s/%d: %w", name, i, err)
				}

				for j, move := range record.Moves {
					var img sql.NullString
					if move.Kind == combos.MoveImage {
						img = sql.NullString{String: move.Icon, Valid: true}
					}
					_, err := tx.ExecContext(
						ctx,
						"insert into moves(character, combo_position, position, type, name, img) values (?, ?, ?, ?, ?, ?)",
						name, i, j, string(move.Kind), move.Name, img,
					)
					if err != nil {
						return fmt.Errorf("insert move %s/%d/%d: %w", name, i, j, err)
					}
				}
			}
		}
		return nil
	})
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Load reads the stored result set back in character position order.
func (s Store) Load(ctx context.Context) (*combos.ResultSet, error) {
	rs := combos.NewResultSet()

	rows, err := s.db.QueryContext(ctx, "select name from characters order by position, name")
	if err != nil {
		return nil, err
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range names {
		records, err := s.loadCharacter(ctx, name)
		if err != nil {
			return nil, err
		}
		rs.Set(name, records)
	}
	return rs, nil
}

func (s Store) loadCharacter(ctx context.Context, name string) ([]combos.ComboRecord, error) {
	var records []combos.ComboRecord

	rows, err := s.db.QueryContext(
		ctx,
		"select id, hits, damage, text from combos where character = ? order by position",
		name,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id sql.NullString
		record := combos.ComboRecord{Moves: []combos.MoveStep{}}
		if err := rows.Scan(&id, &record.Hits, &record.Damage, &record.Text); err != nil {
			rows.Close()
			return nil, err
		}
		if id.Valid {
			record.ID = &id.String
		}
		records = append(records, record)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(
		ctx,
		"select combo_position, type, name, img from moves where character = ? order by combo_position, position",
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			combo int
			kind  string
			move  combos.MoveStep
			img   sql.NullString
		)
		if err := rows.Scan(&combo, &kind, &move.Name, &img); err != nil {
			return nil, err
		}
		if combo < 0 || combo >= len(records) {
			return nil, fmt.Errorf("move references unknown combo %s/%d", name, combo)
		}
		move.Kind = combos.MoveKind(kind)
		move.Icon = img.String
		records[combo].Moves = append(records[combo].Moves, move)
	}
	return records, rows.Err()
}
