package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/nfanikita31-bit/woodshop-sushko/internal/catalog"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/config"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/geo"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/pricing"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/session"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/storage"
)

const restartButton = "🔁 Новый заказ"

// sender is the slice of the Telegram API the handlers need. *tgbotapi.BotAPI
// satisfies it; tests substitute a recorder.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Geocoder turns a free-text address into coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (geo.Point, error)
}

// OrderArchive persists completed orders. Optional; may be left nil.
type OrderArchive interface {
	SaveOrder(ctx context.Context, order storage.Order) (int64, error)
	ListRecentOrders(ctx context.Context, limit int) ([]storage.Order, error)
	ExportOrdersToExcel(ctx context.Context, orders []storage.Order) (string, error)
}

type Bot struct {
	bot      *tgbotapi.BotAPI
	api      sender
	logger   *zap.Logger
	sessions session.Store
	geocoder Geocoder
	archive  OrderArchive
	catalog  *catalog.Catalog
	cfg      *config.Config

	warehouse  geo.Point
	pricingCfg pricing.Config

	handlers map[session.Step]func(context.Context, int64, string, session.Draft)
}

func New(
	cfg *config.Config,
	sessions session.Store,
	geocoder Geocoder,
	archive OrderArchive,
	cat *catalog.Catalog,
	logger *zap.Logger,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := newBot(botAPI, cfg, sessions, geocoder, archive, cat, logger)
	b.bot = botAPI
	return b, nil
}

func newBot(
	api sender,
	cfg *config.Config,
	sessions session.Store,
	geocoder Geocoder,
	archive OrderArchive,
	cat *catalog.Catalog,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:       api,
		logger:    logger,
		sessions:  sessions,
		geocoder:  geocoder,
		archive:   archive,
		catalog:   cat,
		cfg:       cfg,
		warehouse: geo.Point{Lat: cfg.WarehouseLat, Lon: cfg.WarehouseLon},
		pricingCfg: pricing.Config{
			DeliveryCostPerKm: cfg.DeliveryCostPerKm,
		},
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[session.Step]func(context.Context, int64, string, session.Draft){
		session.StepProduct:  b.handleProduct,
		session.StepVolume:   b.handleVolume,
		session.StepAddress:  b.handleAddress,
		session.StepPhone:    b.handlePhone,
		session.StepDiscount: b.handleDiscount,
		session.StepComplete: b.handleComplete,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update := <-updates:
			if update.Message != nil {
				b.processMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := msg.Text

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", text))

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleRestart(ctx, chatID)
		case "export":
			b.handleExport(ctx, chatID)
		default:
			b.logger.Debug("Ignoring unknown command",
				zap.Int64("chat_id", chatID),
				zap.String("command", msg.Command()))
		}
		return
	}

	if text == "" {
		return
	}

	if text == restartButton {
		b.handleRestart(ctx, chatID)
		return
	}

	draft, err := b.sessions.Get(ctx, chatID)
	if errors.Is(err, session.ErrNotFound) {
		// A never-seen chat routes like awaiting_product, no /start needed.
		draft = session.Draft{Step: session.StepProduct}
	} else if err != nil {
		b.logger.Error("Failed to get draft",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Ошибка при обработке запроса")
		return
	}

	if handler, exists := b.handlers[draft.Step]; exists {
		handler(ctx, chatID, text, draft)
	} else {
		b.logger.Error("Draft has unknown step",
			zap.Int64("chat_id", chatID),
			zap.String("step", string(draft.Step)))
		b.handleRestart(ctx, chatID)
	}
}

func (b *Bot) saveDraft(ctx context.Context, chatID int64, draft session.Draft) bool {
	if err := b.sessions.Save(ctx, chatID, draft); err != nil {
		b.logger.Error("Failed to save draft",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Ошибка при обработке запроса")
		return false
	}
	return true
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.sendMessage(msg)
}
