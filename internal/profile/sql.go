package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/driver"
)

func nowUnix() int64 {
	return time.Now().Unix()
}

// SQLStore Store implementation backed by the profiles table, progress is
// persisted as a JSON column
type SQLStore struct {
	Conn driver.ITransactionalDB
}

var _ Store = &SQLStore{}

// NewSQLStore create a SQL backed store
func NewSQLStore(Conn driver.ITransactionalDB) *SQLStore {
	return &SQLStore{
		Conn: Conn,
	}
}

// GetAll read every profile row
func (store *SQLStore) GetAll(ctx context.Context) ([]*Profile, error) {
	conn := store.Conn
	rows, err := conn.QueryContext(ctx, `
SELECT
    id, username, avatar, progress, updated_at
FROM
    profiles
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Profile
	for rows.Next() {
		item, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// GetByID read a single row, (nil, nil) when the id is absent
func (store *SQLStore) GetByID(ctx context.Context, id string) (*Profile, error) {
	conn := store.Conn
	row, err := conn.QueryContext(ctx, `
SELECT
    id, username, avatar, progress, updated_at
FROM
    profiles
WHERE
    id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer row.Close()

	if row.Next() {
		return scanProfile(row)
	}
	return nil, nil
}

// Insert add a new profile row
func (store *SQLStore) Insert(ctx context.Context, p *Profile) error {
	conn := store.Conn
	raw, err := json.Marshal(p.Progress)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx, `INSERT INTO profiles(id, username, avatar, progress, updated_at)
	VALUES($1,$2,$3,$4,$5)`, p.ID, p.Username, p.Avatar, raw, p.UpdatedAt)
	return err
}

// UpdateProgress replace the progress value of one row, conditioned on id
// match only. Concurrent writers race, the last write wins
func (store *SQLStore) UpdateProgress(ctx context.Context, id string, progress Progress) error {
	conn := store.Conn
	raw, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `UPDATE profiles
	SET progress=$1,
			updated_at=$2
	WHERE id = $3;`, raw, nowUnix(), id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func scanProfile(rows driver.ISQLRows) (*Profile, error) {
	item := new(Profile)
	var raw []byte
	if err := rows.Scan(&item.ID, &item.Username, &item.Avatar, &raw, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Progress = Progress{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &item.Progress); err != nil {
			return nil, err
		}
	}
	return item, nil
}
