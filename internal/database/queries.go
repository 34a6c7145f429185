package database

import (
	"context"
	"fmt"

	"docsum/internal/domain"
)

func (d *Database) GetUserSettingsWithDefault(
	ctx context.Context,
	userID int64,
) (*domain.UserSettings, error) {
	query := `select user_id, max_length, min_length
	from user_settings
	where user_id = ?`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"userID", userID,
				"operation", "GetUserSettingsWithDefault")
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate rows: %w", err)
		}
		return &domain.UserSettings{
			UserID:    userID,
			MaxLength: domain.DefaultMaxLength,
			MinLength: domain.DefaultMinLength,
		}, nil
	}

	var us domain.UserSettings
	if err = rows.Scan(&us.UserID, &us.MaxLength, &us.MinLength); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return &us, nil
}

func (d *Database) UpsertUserSettings(ctx context.Context, userSettings *domain.UserSettings) error {
	req := domain.SummaryRequest{
		MaxLength: int(userSettings.MaxLength),
		MinLength: int(userSettings.MinLength),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	query := `insert into user_settings (user_id, max_length, min_length)
	values (?, ?, ?)
	on conflict (user_id) do update
	set max_length = excluded.max_length,
	min_length = excluded.min_length`

	_, err := d.db.ExecContext(ctx, query,
		userSettings.UserID,
		userSettings.MaxLength,
		userSettings.MinLength)

	return err
}
