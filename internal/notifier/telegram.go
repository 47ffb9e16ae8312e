package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Min interval between any two Telegram messages to the same chat to
// avoid 429 Too Many Requests (~30/min limit).
const sendInterval = 2 * time.Second

// Telegram message limit is 4096 chars; alerts are chunked well below
// it so the header fits.
const chunkLimit = 3500

// Telegram delivers arbitrage alerts to a chat. Messages go through a
// buffered queue and a background sender that enforces the send
// interval, so callers never block on the Telegram API.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time

	queue     chan string
	queueDone chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewTelegram creates the notifier and starts its background sender.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("failed to get bot info: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	n := &Telegram{
		bot:       bot,
		chatID:    chatID,
		queue:     make(chan string, 100),
		queueDone: make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}

	n.wg.Add(1)
	go n.messageSender()

	slog.Info("telegram notifier initialized", "chat_id", chatID)
	return n, nil
}

// messageSender sends queued messages with the minimum interval
// between them.
func (n *Telegram) messageSender() {
	defer n.wg.Done()
	for {
		select {
		case <-n.ctx.Done():
			// Drain remaining messages before exit
			for {
				select {
				case text := <-n.queue:
					n.send(text)
				default:
					close(n.queueDone)
					return
				}
			}
		case text := <-n.queue:
			n.send(text)
		}
	}
}

func (n *Telegram) send(text string) {
	n.mu.Lock()
	elapsed := time.Since(n.lastSend)
	if elapsed < sendInterval {
		wait := sendInterval - elapsed
		n.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-n.ctx.Done():
			// Still deliver: drain path calls send after cancel.
		}
		n.mu.Lock()
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("telegram send failed", "error", err)
		return
	}
	slog.Info("telegram alert sent", "queue_len", len(n.queue))
}

// QueueAlert queues one alert message (non-blocking).
func (n *Telegram) QueueAlert(ctx context.Context, body string) error {
	if n == nil || n.bot == nil {
		return fmt.Errorf("telegram notifier not initialized")
	}
	text := fmt.Sprintf("🚨 ARBITRAGE ALERT 🚨\n\n%s\n\nTime: %s", body, time.Now().UTC().Format("2006-01-02 15:04:05"))
	select {
	case <-n.ctx.Done():
		return fmt.Errorf("notifier stopped")
	case <-ctx.Done():
		return ctx.Err()
	case n.queue <- text:
		return nil
	default:
		slog.Warn("telegram queue full, dropping alert")
		return fmt.Errorf("message queue is full")
	}
}

// SendFindingLines queues the given positive finding lines, chunked to
// stay under the Telegram message limit. With no lines it sends a
// "nothing found" note so the chat still gets a heartbeat per run.
func (n *Telegram) SendFindingLines(ctx context.Context, lines []string) error {
	if len(lines) == 0 {
		return n.QueueAlert(ctx, "No positive arbitrage opportunities found.")
	}

	chunk := ""
	for _, line := range lines {
		if len(chunk)+len(line) > chunkLimit {
			if err := n.QueueAlert(ctx, chunk); err != nil {
				return err
			}
			chunk = ""
		}
		chunk += line + "\n"
	}
	if chunk != "" {
		return n.QueueAlert(ctx, chunk)
	}
	return nil
}

// SendReportDocument uploads the raw report file to the chat.
func (n *Telegram) SendReportDocument(ctx context.Context, path, caption string) error {
	if n == nil || n.bot == nil {
		return fmt.Errorf("telegram notifier not initialized")
	}
	doc := tgbotapi.NewDocument(n.chatID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("%s\nTime: %s", caption, time.Now().UTC().Format("2006-01-02 15:04:05"))
	if _, err := n.bot.Send(doc); err != nil {
		return fmt.Errorf("failed to send report document: %w", err)
	}
	return nil
}

// Stop stops the notifier after draining queued messages.
func (n *Telegram) Stop() {
	if n == nil {
		return
	}
	n.cancel()
	<-n.queueDone
	n.wg.Wait()
}
