package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"docsum/internal/download"
)

const (
	maxLinksPerMessage = 5

	noDocumentText = `✖️ Send me a document \(%s\) or an https link to one\.`
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	return b.withSpinner(ctx, message.Chat.ID, func() error {
		if message.Document != nil {
			return b.handleDocument(ctx, message)
		}

		text := strings.TrimSpace(message.Text)
		if text == "" {
			text = strings.TrimSpace(message.Caption)
		}

		switch {
		case strings.HasPrefix(text, "/start"):
			return b.handleStartCommand(ctx, message.Chat.ID)
		case strings.HasPrefix(text, "/menu"):
			return b.handleMenuCommand(ctx, message.Chat.ID)
		case strings.HasPrefix(text, "/help"):
			return b.handleHelpCommand(ctx, message.Chat.ID)
		case strings.HasPrefix(text, "/settings"):
			return b.handleSettingsCommand(ctx, message.Chat.ID, message.From.ID)
		default:
			return b.handleRandomText(ctx, text, message.Chat.ID, message.From.ID)
		}
	})
}

func (b *Bot) handleRandomText(
	ctx context.Context,
	text string,
	chatID int64,
	userID int64,
) error {
	urls, err := download.FindDocumentURLs(text)

	if len(urls) == 0 {
		var errs []error
		if err != nil {
			errs = append(errs, fmt.Errorf("find document URLs: %w", err))
		}

		sendErr := b.sendMessageWithKeyboard(
			ctx,
			chatID,
			fmt.Sprintf(noDocumentText, supportedFormatsText()),
			b.menuKeyboard,
		)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	if len(urls) > maxLinksPerMessage {
		b.log.InfoContext(ctx, "Too many links in message, extra links are ignored",
			"chatID", chatID,
			"userID", userID,
			"found", len(urls),
			"limit", maxLinksPerMessage)

		urls = urls[:maxLinksPerMessage]
	}

	var errs []error
	for _, u := range urls {
		if err = b.summarizeRemote(ctx, chatID, userID, u, download.FileName(u)); err != nil {
			errs = append(errs, fmt.Errorf("summarize link: %w", err))
		}
	}

	return errors.Join(errs...)
}
