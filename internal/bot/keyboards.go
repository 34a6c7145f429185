package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxLengthPresetMin                      = 50
	maxLengthPresetMax                      = 500
	maxLengthPresetStep                     = 50
	settingsMaxLengthKeyboardRowSize        = 5
	settingsMaxLengthKeyboardCallbackPrefix = "settings_max_length_"
	currentSettingMarker                    = "✅ "
)

func getReturnKeyboard() [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData("⬅️ Return to menu", "menu")},
	}
}

func getMenuKeyboard() [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", "menu_settings"),
			tgbotapi.NewInlineKeyboardButtonData("❔ Help", "menu_help"),
		},
	}
}

// getSettingsMaxLengthKeyboard lists max-length presets and marks current.
func getSettingsMaxLengthKeyboard(current int64) [][]tgbotapi.InlineKeyboardButton {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for preset := int64(maxLengthPresetMin); preset <= maxLengthPresetMax; preset += maxLengthPresetStep {
		label := strconv.FormatInt(preset, 10)
		data := settingsMaxLengthKeyboardCallbackPrefix + label
		if preset == current {
			label = currentSettingMarker + label
		}

		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, data))

		if len(row) == settingsMaxLengthKeyboardRowSize {
			keyboard = append(keyboard, row)
			row = nil
		}
	}

	if len(row) > 0 {
		keyboard = append(keyboard, row)
	}

	return append(keyboard, getReturnKeyboard()...)
}

// parseMaxLengthPreset accepts only values offered by the settings keyboard.
func parseMaxLengthPreset(raw string) (int64, bool) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	if value < maxLengthPresetMin || value > maxLengthPresetMax || value%maxLengthPresetStep != 0 {
		return 0, false
	}

	return value, true
}
