package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"docsum/internal/domain"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID

	return b.withSpinner(ctx, chatID, func() error {
		data := strings.TrimSpace(callback.Data)

		switch data {
		case "menu":
			return b.withEmptyCallbackAnswer(callback, func() error {
				return b.handleMenuCommand(ctx, chatID)
			})
		case "menu_settings":
			return b.withEmptyCallbackAnswer(callback, func() error {
				return b.handleSettingsCommand(ctx, chatID, callback.From.ID)
			})
		case "menu_help":
			return b.withEmptyCallbackAnswer(callback, func() error {
				return b.handleHelpCommand(ctx, chatID)
			})
		}

		if raw, ok := strings.CutPrefix(data, settingsMaxLengthKeyboardCallbackPrefix); ok {
			return b.handleSettingsMaxLengthQuery(ctx, raw, callback)
		}

		return nil
	})
}

func (b *Bot) handleSettingsMaxLengthQuery(
	ctx context.Context,
	raw string,
	callback *tgbotapi.CallbackQuery,
) error {
	maxLength, ok := parseMaxLengthPreset(strings.TrimSpace(raw))
	if !ok {
		return b.errorCallbackAnswer(callback, fmt.Errorf("parse max length preset %q", raw))
	}

	current, err := b.db.GetUserSettingsWithDefault(ctx, callback.From.ID)
	if err != nil {
		return b.errorCallbackAnswer(callback, fmt.Errorf("get user settings with default: %w", err))
	}

	if err = b.db.UpsertUserSettings(ctx, &domain.UserSettings{
		UserID:    callback.From.ID,
		MaxLength: maxLength,
		MinLength: min(current.MinLength, maxLength),
	}); err != nil {
		return b.errorCallbackAnswer(callback, fmt.Errorf("upsert user settings: %w", err))
	}

	if _, err = b.rateLimiter.Request(tgbotapi.NewCallback(callback.ID, "✅ Settings are updated.")); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	return b.handleSettingsCommand(ctx, callback.Message.Chat.ID, callback.From.ID)
}

func (b *Bot) withEmptyCallbackAnswer(
	callback *tgbotapi.CallbackQuery,
	fn func() error,
) error {
	var errs []error

	if _, err := b.rateLimiter.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		errs = append(errs, b.errorCallbackAnswer(callback, fmt.Errorf("send request: %w", err)))
	}

	err := fn()
	if err != nil {
		errs = append(errs, fmt.Errorf("call fn: %w", err))
	}

	return errors.Join(errs...)
}

func (b *Bot) errorCallbackAnswer(
	callback *tgbotapi.CallbackQuery,
	err error,
) error {
	if _, sendErr := b.rateLimiter.Request(tgbotapi.NewCallback(callback.ID, "❌ Failed.")); sendErr != nil {
		return errors.Join(err, fmt.Errorf("send request: %w", sendErr))
	}
	return err
}
