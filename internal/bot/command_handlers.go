package bot

import (
	"context"
	"errors"
	"fmt"
)

const welcomeText = `🤖 *Welcome to DocSum\!*

I summarize documents\. Send me:

– a document as a file \(%s\)
– or an https link to such a file

Summaries are between the minimum and maximum length from /settings\.
Use /help for details\.`

const helpText = `❔ *Help*

– Upload a %s file and I reply with its summary and statistics
– Paste https links ending in one of these extensions and I summarize each
– Long documents are summarized part by part, so the result may be longer than the limit
– Change the maximum summary length with /settings
– Documents are deleted right after processing`

const settingsText = `*⚙️ Settings*

Current summary length is %d to %d words\.

You can choose a different maximum below:`

func (b *Bot) handleStartCommand(ctx context.Context, chatID int64) error {
	return b.sendMessageWithKeyboard(ctx, chatID, fmt.Sprintf(welcomeText, supportedFormatsText()), b.menuKeyboard)
}

func (b *Bot) handleHelpCommand(ctx context.Context, chatID int64) error {
	return b.sendMessageWithKeyboard(ctx, chatID, fmt.Sprintf(helpText, supportedFormatsText()), b.returnKeyboard)
}

func (b *Bot) handleMenuCommand(ctx context.Context, chatID int64) error {
	return b.sendMessageWithKeyboard(ctx, chatID, "❔ *Choose an option:*", b.menuKeyboard)
}

func (b *Bot) handleSettingsCommand(ctx context.Context, chatID int64, userID int64) error {
	settings, err := b.db.GetUserSettingsWithDefault(ctx, userID)
	if err != nil {
		errs := []error{fmt.Errorf("failed to get user settings with default: %w", err)}

		sendErr := b.sendMessageWithKeyboard(ctx, chatID, "❌ Failed\\.", b.returnKeyboard)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("failed to send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	req := settings.SummaryRequest()

	if err = b.sendMessageWithKeyboard(
		ctx,
		chatID,
		fmt.Sprintf(settingsText, req.MinLength, req.MaxLength),
		getSettingsMaxLengthKeyboard(int64(req.MaxLength)),
	); err != nil {
		return fmt.Errorf("failed to send message with keyboard: %w", err)
	}

	return nil
}
