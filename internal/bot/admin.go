package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const exportLimit = 100

// handleExport sends the admin an Excel report of recent orders. Non-admins
// get no reply.
func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	if chatID != b.cfg.AdminID {
		b.logger.Debug("Ignoring /export from non-admin",
			zap.Int64("chat_id", chatID))
		return
	}

	if b.archive == nil {
		b.sendError(chatID, "Архив заказов не настроен")
		return
	}

	orders, err := b.archive.ListRecentOrders(ctx, exportLimit)
	if err != nil {
		b.logger.Error("Failed to list orders", zap.Error(err))
		b.sendError(chatID, "Ошибка при выгрузке заказов")
		return
	}
	if len(orders) == 0 {
		b.sendMessage(tgbotapi.NewMessage(chatID, "Заказов пока нет."))
		return
	}

	filepath, err := b.archive.ExportOrdersToExcel(ctx, orders)
	if err != nil {
		b.logger.Error("Failed to export orders", zap.Error(err))
		b.sendError(chatID, "Ошибка при выгрузке заказов")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filepath))
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("Failed to send orders report",
			zap.String("file", filepath),
			zap.Error(err))
	}
}
