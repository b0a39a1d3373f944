package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/nfanikita31-bit/woodshop-sushko/internal/catalog"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/geo"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/pricing"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/session"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/storage"
	"github.com/nfanikita31-bit/woodshop-sushko/pkg/geocoder"
)

// handleRestart clears the draft and prompts the product menu. Reached from
// any state via /start or the restart button.
func (b *Bot) handleRestart(ctx context.Context, chatID int64) {
	if !b.saveDraft(ctx, chatID, session.Draft{Step: session.StepProduct}) {
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Выберите вид дров:")
	msg.ReplyMarkup = b.createProductKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleProduct(ctx context.Context, chatID int64, text string, draft session.Draft) {
	if !b.catalog.HasProduct(text) {
		b.logger.Debug("Ignoring unrecognized product input",
			zap.Int64("chat_id", chatID),
			zap.String("text", text))
		return
	}

	draft = session.Draft{Step: session.StepVolume, Product: text}
	if !b.saveDraft(ctx, chatID, draft) {
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Выберите объем:")
	msg.ReplyMarkup = b.createVolumeKeyboard(text)
	b.sendMessage(msg)
}

func (b *Bot) handleVolume(ctx context.Context, chatID int64, text string, draft session.Draft) {
	volume, ok := catalog.ParseVolume(text)
	if !ok {
		b.logger.Debug("Ignoring unrecognized volume input",
			zap.Int64("chat_id", chatID),
			zap.String("text", text))
		return
	}

	if _, offered := b.catalog.Price(draft.Product, volume); !offered {
		b.sendMessage(tgbotapi.NewMessage(chatID, b.volumeGuidance(draft.Product)))
		return
	}

	draft.Volume = volume
	draft.Step = session.StepAddress
	if !b.saveDraft(ctx, chatID, draft) {
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Введите адрес доставки:")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	b.sendMessage(msg)
}

// volumeGuidance explains which volumes the chosen product actually offers.
func (b *Bot) volumeGuidance(product string) string {
	volumes := b.catalog.VolumesFor(product)
	if len(volumes) == 1 {
		return "Для выбранного вида дров доступен только объем " + catalog.VolumeLabel(volumes[0]) + "."
	}

	labels := make([]string, 0, len(volumes))
	for _, v := range volumes {
		labels = append(labels, catalog.VolumeLabel(v))
	}
	return "Для выбранного вида дров доступны объемы: " + strings.Join(labels, ", ") + "."
}

func (b *Bot) handleAddress(ctx context.Context, chatID int64, text string, draft session.Draft) {
	draft.Address = text
	draft.Step = session.StepPhone
	if !b.saveDraft(ctx, chatID, draft) {
		return
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, "Введите номер телефона:"))
}

func (b *Bot) handlePhone(ctx context.Context, chatID int64, text string, draft session.Draft) {
	draft.Phone = text
	draft.Step = session.StepDiscount
	if !b.saveDraft(ctx, chatID, draft) {
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Выберите скидку:")
	msg.ReplyMarkup = b.createDiscountKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleDiscount(ctx context.Context, chatID int64, text string, draft session.Draft) {
	rate, ok := b.catalog.DiscountRate(text)
	if !ok {
		b.logger.Debug("Ignoring unrecognized discount input",
			zap.Int64("chat_id", chatID),
			zap.String("text", text))
		return
	}

	draft.Discount = text
	draft.DiscountRate = rate
	b.completeOrder(ctx, chatID, draft)
}

// completeOrder runs the completion pipeline: resolve the address, compute
// the delivery distance, price the order and notify customer and admin.
func (b *Bot) completeOrder(ctx context.Context, chatID int64, draft session.Draft) {
	destination, err := b.geocoder.Resolve(ctx, draft.Address)
	if err != nil {
		if errors.Is(err, geocoder.ErrNotFound) {
			b.logger.Debug("Address not found",
				zap.Int64("chat_id", chatID),
				zap.String("address", draft.Address))
		} else {
			b.logger.Error("Geocoding failed",
				zap.Int64("chat_id", chatID),
				zap.String("address", draft.Address),
				zap.Error(err))
		}

		// Discount fields are cleared so the draft stays a clean
		// awaiting_discount state; resending a label retries resolution.
		draft.Discount = ""
		draft.DiscountRate = 0
		draft.Step = session.StepDiscount
		if !b.saveDraft(ctx, chatID, draft) {
			return
		}

		b.sendMessage(tgbotapi.NewMessage(chatID, "Не удалось определить координаты. Проверь адрес."))
		return
	}

	basePrice, ok := b.catalog.Price(draft.Product, draft.Volume)
	if !ok {
		// The volume step only offers valid volumes, so this is a bug.
		b.logger.Error("Draft references unknown catalog entry",
			zap.Int64("chat_id", chatID),
			zap.String("product", draft.Product),
			zap.Float64("volume", draft.Volume))
		b.sendError(chatID, "Ошибка при расчете заказа")
		return
	}

	distanceKm := geo.DistanceKm(b.warehouse, destination)
	breakdown := pricing.Calculate(basePrice, draft.DiscountRate, distanceKm, b.pricingCfg)
	summary := formatSummary(draft, distanceKm, breakdown)

	draft.Step = session.StepComplete
	if !b.saveDraft(ctx, chatID, draft) {
		return
	}

	msg := tgbotapi.NewMessage(chatID, summary)
	msg.ReplyMarkup = b.createRestartKeyboard()
	b.sendMessage(msg)

	b.sendMessage(tgbotapi.NewMessage(b.cfg.AdminID, "🛒 Новый заказ:\n"+summary))

	b.archiveOrder(ctx, chatID, draft, distanceKm, breakdown)
}

// archiveOrder writes the completed order to the archive when one is
// configured. Failures are logged and never reach the customer.
func (b *Bot) archiveOrder(ctx context.Context, chatID int64, draft session.Draft, distanceKm float64, breakdown pricing.Breakdown) {
	if b.archive == nil {
		return
	}

	orderID, err := b.archive.SaveOrder(ctx, storage.Order{
		ChatID:          chatID,
		Product:         draft.Product,
		Volume:          draft.Volume,
		Address:         draft.Address,
		Phone:           draft.Phone,
		Discount:        draft.Discount,
		DiscountRate:    draft.DiscountRate,
		DistanceKm:      distanceKm,
		BasePrice:       breakdown.BasePrice,
		DiscountValue:   breakdown.DiscountValue,
		DiscountedPrice: breakdown.DiscountedPrice,
		DeliveryPrice:   breakdown.DeliveryPrice,
		Total:           breakdown.Total,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		b.logger.Error("Failed to archive order",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	b.logger.Info("Order archived",
		zap.Int64("chat_id", chatID),
		zap.Int64("order_id", orderID))
}

// handleComplete ignores everything after a finished order; only the restart
// command is recognized, and that is routed before the step handlers.
func (b *Bot) handleComplete(ctx context.Context, chatID int64, text string, draft session.Draft) {
	b.logger.Debug("Ignoring message after completed order",
		zap.Int64("chat_id", chatID),
		zap.String("text", text))
}
