package notify

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/pkg/logger"
)

// Telegram sends a short alert to a chat when a report lands on an
// actionable rating.
type Telegram struct {
	logger *logger.Logger
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(lgr *logger.Logger, token string, chatID int64) (*Telegram, error) {
	bot, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{logger: lgr, bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(_ context.Context, report *models.Report) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return nil
	}
	msg := tgbot.NewMessage(t.chatID, formatAlert(report))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	t.logger.Debug("alert sent", logger.String("symbol", report.Symbol))
	return nil
}

func formatAlert(report *models.Report) string {
	rec := report.Recommendation
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", rec.Rating, report.Symbol)
	fmt.Fprintf(&b, "Score %.2f", report.Scores.Overall)
	if report.Quote != nil {
		fmt.Fprintf(&b, " at %.2f", report.Quote.Price)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Entry %.2f, target %.2f, stop %.2f (R/R %.2f)\n",
		rec.EntryPrice, rec.Target, rec.StopLoss, rec.RiskReward)
	if rec.Reason != "" {
		b.WriteString(rec.Reason)
	}
	return b.String()
}

var _ domrepo.Notifier = (*Telegram)(nil)
