package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nfanikita31-bit/woodshop-sushko/internal/catalog"
)

// BOT KEYBOARDS

func (b *Bot) createProductKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(b.catalog.Products()))
	for _, product := range b.catalog.Products() {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(product),
		))
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) createVolumeKeyboard(product string) tgbotapi.ReplyKeyboardMarkup {
	volumes := b.catalog.VolumesFor(product)
	rows := make([][]tgbotapi.KeyboardButton, 0, len(volumes))
	for _, volume := range volumes {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(catalog.VolumeLabel(volume)),
		))
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) createDiscountKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(b.catalog.Discounts()))
	for _, label := range b.catalog.Discounts() {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(label),
		))
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) createRestartKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(restartButton),
		),
	)
}
