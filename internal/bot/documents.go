package bot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"docsum/internal/download"
	"docsum/internal/extract"
	"docsum/internal/pipeline"
)

func (b *Bot) handleDocument(ctx context.Context, message *tgbotapi.Message) error {
	doc := message.Document
	chatID := message.Chat.ID
	name := strings.TrimSpace(doc.FileName)

	if _, err := extract.FormatOf(name); err != nil {
		return b.replyWithError(ctx, chatID, err)
	}

	if int64(doc.FileSize) > b.maxDownloadBytes {
		return b.replyWithError(ctx, chatID, fmt.Errorf("file size %d: %w", doc.FileSize, download.ErrTooLarge))
	}

	fileURL, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		// Bot API request URLs embed the token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return b.replyWithError(ctx, chatID, fmt.Errorf("get file direct URL: %w", err))
	}

	return b.summarizeRemote(ctx, chatID, message.From.ID, fileURL, name)
}

// summarizeRemote downloads the document at fileURL, summarizes it with the
// user's settings and replies with the summary and statistics. The temp file
// is always removed.
func (b *Bot) summarizeRemote(
	ctx context.Context,
	chatID int64,
	userID int64,
	fileURL string,
	name string,
) error {
	if _, err := extract.FormatOf(name); err != nil {
		return b.replyWithError(ctx, chatID, err)
	}

	settings, err := b.db.GetUserSettingsWithDefault(ctx, userID)
	if err != nil {
		return b.replyWithError(ctx, chatID, fmt.Errorf("get user settings with default: %w", err))
	}

	path, err := b.fetcher.Fetch(ctx, fileURL, name)
	if err != nil {
		return b.replyWithError(ctx, chatID, fmt.Errorf("fetch %s: %w", name, err))
	}
	defer b.removeTempFile(ctx, path)

	res, err := b.pipeline.Process(ctx, path, settings.SummaryRequest())
	if err != nil {
		return b.replyWithError(ctx, chatID, fmt.Errorf("process %s: %w", name, err))
	}

	b.log.InfoContext(ctx, "Document is summarized",
		"chatID", chatID,
		"userID", userID,
		"format", res.Format.String(),
		"wordCount", res.Metrics.WordCount,
		"summaryWordCount", res.Metrics.SummaryWordCount)

	return b.sendSummary(ctx, chatID, name, res)
}

func (b *Bot) sendSummary(ctx context.Context, chatID int64, name string, res *pipeline.Result) error {
	var errs []error

	for _, text := range summaryMessages(name, res.Summary) {
		if err := b.sendMessageWithKeyboard(ctx, chatID, text, nil); err != nil {
			errs = append(errs, fmt.Errorf("send summary message: %w", err))
		}
	}

	if err := b.sendMessageWithKeyboard(ctx, chatID, statisticsText(res.Metrics), b.returnKeyboard); err != nil {
		errs = append(errs, fmt.Errorf("send statistics message: %w", err))
	}

	return errors.Join(errs...)
}

// replyWithError answers the user and returns err unless it is caused by
// the input.
func (b *Bot) replyWithError(ctx context.Context, chatID int64, err error) error {
	var errs []error

	if isUserError(err) {
		b.log.InfoContext(ctx, "Document is rejected",
			"chatID", chatID,
			"reason", err)
	} else {
		errs = append(errs, err)
	}

	if sendErr := b.sendMessageWithKeyboard(ctx, chatID, userErrorText(err), b.returnKeyboard); sendErr != nil {
		errs = append(errs, fmt.Errorf("send message with keyboard: %w", sendErr))
	}

	return errors.Join(errs...)
}

func (b *Bot) removeTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		b.log.WarnContext(ctx, "Failed to remove temp file",
			"error", err,
			"path", path)
	}
}
