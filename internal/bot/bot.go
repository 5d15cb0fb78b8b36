package bot

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/example/quizbot/internal/database"
	"github.com/example/quizbot/internal/extract"
	"github.com/example/quizbot/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot represents the Telegram quiz bot application
type Bot struct {
	api      *tgbotapi.BotAPI
	token    string
	quizzes  *database.QuizRepository
	results  *database.ResultRepository
	sessions *session.Manager
	pipeline *extract.Pipeline
	adminID  int64
	config   *BotConfig
}

// New creates a new bot instance. oracle may be nil when no answer
// predictor is configured.
func New(oracle extract.Oracle) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	quizzes := database.NewQuizRepository()

	var adminID int64
	if idStr := os.Getenv("ADMIN_ID"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Printf("Warning: Invalid ADMIN_ID: %s", idStr)
		} else {
			adminID = id
		}
	}

	return &Bot{
		token:    token,
		quizzes:  quizzes,
		results:  database.NewResultRepository(),
		sessions: session.NewManager(quizzes),
		pipeline: extract.NewPipeline(oracle),
		adminID:  adminID,
		config:   DefaultConfig(),
	}, nil
}

// Sessions exposes the session manager for housekeeping
func (b *Bot) Sessions() *session.Manager {
	return b.sessions
}

// Start initializes the Telegram API client and processes updates until
// Stop is called
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	if err := os.MkdirAll(b.config.UploadDir, 0755); err != nil {
		return fmt.Errorf("unable to create upload directory: %v", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	// Per-user ordering is enforced by the session manager, so updates
	// can be handled concurrently.
	for update := range updates {
		go b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
}

// handleUpdate dispatches a single incoming update
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in update handler: %v", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message == nil:
		// ignore other update kinds
	case update.Message.Document != nil:
		b.handleDocument(update.Message)
	case update.Message.IsCommand() || isTakeCommand(update.Message.Text):
		b.handleCommand(update.Message)
	}
}

// send delivers a message and logs delivery failures
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// reply sends a plain text message to a chat
func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}
