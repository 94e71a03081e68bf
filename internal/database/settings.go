package database

import (
	"context"
	"database/sql"
	"errors"
)

// GetSetting returns the stored value for key. Missing keys and NULL values
// report ok=false with a nil error; any other failure is returned so callers
// can tell "nothing stored" apart from "could not read".
func (d *Database) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value sql.NullString
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapSettingErr("get", key, err)
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// SetSetting upserts key in a single statement, so a write either lands whole or not at all.
func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	_, err := d.DB.ExecContext(ctx, `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value)
	return wrapSettingErr("set", key, err)
}
