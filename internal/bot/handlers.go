package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/quizbot/internal/database"
	"github.com/example/quizbot/internal/export"
	"github.com/example/quizbot/internal/session"
	"github.com/example/quizbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const welcomeText = "Send me a PDF (MCQ). I will convert it to a quiz (English + Gujarati supported). After the quiz, send /result to see your score."

const helpText = `Commands:
/start - show welcome message
/take_<id> - start a quiz by id
/result - show your current score
/help - show this message

Send a PDF document with multiple-choice questions to create a new quiz.`

// isTakeCommand recognizes /take_<id> messages, which the Telegram API
// does not report as commands because of the underscore payload
func isTakeCommand(text string) bool {
	return strings.HasPrefix(text, "/take_")
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	if isTakeCommand(message.Text) {
		b.handleTake(message)
		return
	}

	switch message.Command() {
	case "start":
		b.reply(message.Chat.ID, welcomeText)
	case "help":
		b.reply(message.Chat.ID, helpText)
	case "result":
		b.handleResult(message)
	case "export":
		b.handleExport(message)
	default:
		b.reply(message.Chat.ID, "Unknown command. Send /help for usage.")
	}
}

// handleDocument accepts a PDF upload, runs the extraction pipeline and
// stores the resulting quiz. Extraction is slow (OCR and labeling may
// take seconds per page), so the upload handler runs it inline on its
// own update goroutine, never on a session lock.
func (b *Bot) handleDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".pdf") {
		b.reply(chatID, "Please send a PDF file.")
		return
	}

	path, err := b.downloadDocument(doc)
	if err != nil {
		log.Printf("Failed to download document %s: %v", doc.FileName, err)
		b.reply(chatID, "Could not download the file. Please try again.")
		return
	}

	b.reply(chatID, "PDF received. Extracting questions...")

	ctx, cancel := context.WithTimeout(context.Background(), b.config.ExtractTimeout)
	defer cancel()

	questions := b.pipeline.Extract(ctx, path)
	if len(questions) == 0 {
		b.reply(chatID, "Could not find questions automatically. Make sure the PDF contains MCQs in clear format.")
		return
	}

	quizID, err := b.quizzes.Create(ctx, doc.FileName, questions)
	if err != nil {
		log.Printf("Failed to store quiz from %s: %v", doc.FileName, err)
		b.reply(chatID, "Something went wrong while saving the quiz. Please try again.")
		return
	}

	b.reply(chatID, fmt.Sprintf("Quiz created with %d questions. Use /take_%d to start taking it.", len(questions), quizID))
	b.startQuiz(ctx, chatID, quizID)
}

// downloadDocument fetches the uploaded file into the upload directory
// under a collision-free name
func (b *Bot) downloadDocument(doc *tgbotapi.Document) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: doc.FileID})
	if err != nil {
		return "", fmt.Errorf("failed to resolve file: %w", err)
	}

	resp, err := http.Get(file.Link(b.token))
	if err != nil {
		return "", fmt.Errorf("failed to fetch file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch file: status %s", resp.Status)
	}

	path := filepath.Join(b.config.UploadDir, uuid.NewString()+"-"+filepath.Base(doc.FileName))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}

// handleTake starts a quiz by id from a /take_<id> message
func (b *Bot) handleTake(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	idStr := strings.TrimPrefix(strings.Fields(message.Text)[0], "/take_")
	quizID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		b.reply(chatID, "Invalid command. Use /take_<quizid>")
		return
	}

	b.startQuiz(context.Background(), chatID, quizID)
}

// startQuiz creates a session for the chat and sends the first question
func (b *Bot) startQuiz(ctx context.Context, chatID, quizID int64) {
	progress, err := b.sessions.Start(ctx, chatID, quizID)
	if errors.Is(err, database.ErrQuizNotFound) {
		b.reply(chatID, "Invalid quiz id.")
		return
	}
	if err != nil {
		log.Printf("Failed to start quiz %d for %d: %v", quizID, chatID, err)
		b.reply(chatID, "Something went wrong. Please try again.")
		return
	}
	b.sendProgress(ctx, chatID, progress)
}

// sendProgress sends the next question prompt, or the completion
// message when the quiz is finished
func (b *Bot) sendProgress(ctx context.Context, chatID int64, progress *session.Progress) {
	if progress.Done {
		b.reply(chatID, "Quiz finished! Send /result to see your results.")
		b.recordResult(ctx, chatID)
		return
	}

	q := progress.Question
	text := fmt.Sprintf("<b>Q%d.</b> %s", progress.Index+1, q.Question)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if len(q.Options) > 0 {
		var rows [][]tgbotapi.InlineKeyboardButton
		for i, opt := range q.Options {
			label := fmt.Sprintf("%c. %s", 'A'+i, opt)
			data := fmt.Sprintf("ans|%d|%d", progress.Index, i)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, data)))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	b.send(msg)
}

// handleCallback records an answer selected via inline keyboard.
// Callback data format: ans|<question index>|<option index>.
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	parts := strings.Split(callback.Data, "|")
	if len(parts) != 3 || parts[0] != "ans" {
		b.answerCallback(callback.ID, "")
		return
	}
	questionIndex, err1 := strconv.Atoi(parts[1])
	selectedIndex, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		b.answerCallback(callback.ID, "")
		return
	}

	chatID := callback.Message.Chat.ID
	ctx := context.Background()

	progress, err := b.sessions.Submit(ctx, chatID, questionIndex, selectedIndex)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		b.answerCallback(callback.ID, "Session expired. Start quiz again.")
		return
	case errors.Is(err, session.ErrStaleSubmission):
		b.answerCallback(callback.ID, "You already answered this question.")
		return
	case err != nil:
		log.Printf("Failed to submit answer for %d: %v", chatID, err)
		b.answerCallback(callback.ID, "Something went wrong.")
		return
	}

	b.answerCallback(callback.ID, fmt.Sprintf("Recorded answer %c", 'A'+selectedIndex))
	b.sendProgress(ctx, chatID, progress)
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}

// handleResult shows the user's score for their active session
func (b *Bot) handleResult(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	score, err := b.sessions.Score(context.Background(), chatID)
	if errors.Is(err, session.ErrSessionNotFound) {
		b.reply(chatID, "No active quiz session found. Use the /take_<id> command to start.")
		return
	}
	if err != nil {
		log.Printf("Failed to score session for %d: %v", chatID, err)
		b.reply(chatID, "Something went wrong. Please try again.")
		return
	}

	var sb strings.Builder
	for i, correct := range score.PerQuestion {
		mark := "❌"
		if correct {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, mark)
	}
	fmt.Fprintf(&sb, "\nScore: %d / %d", score.Correct, score.Total)
	b.reply(chatID, sb.String())
}

// recordResult persists the final score of a just-completed session
func (b *Bot) recordResult(ctx context.Context, chatID int64) {
	score, err := b.sessions.Score(ctx, chatID)
	if err != nil {
		log.Printf("Failed to score completed session for %d: %v", chatID, err)
		return
	}
	result := &models.QuizResult{
		UserID:  chatID,
		QuizID:  score.QuizID,
		Correct: score.Correct,
		Total:   score.Total,
	}
	if err := b.results.Create(ctx, result); err != nil {
		log.Printf("Failed to record result for %d: %v", chatID, err)
	}
}

// handleExport sends the admin an xlsx workbook of stored quizzes and
// results
func (b *Bot) handleExport(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if b.adminID == 0 || message.From == nil || message.From.ID != b.adminID {
		b.reply(chatID, "Unknown command. Send /help for usage.")
		return
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("quizbot-export-%s.xlsx", uuid.NewString()))
	defer os.Remove(path)

	if err := export.Workbook(context.Background(), path); err != nil {
		log.Printf("Export failed: %v", err)
		b.reply(chatID, "Export failed. Check the logs.")
		return
	}

	docMsg := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	docMsg.Caption = "Stored quizzes and results"
	b.send(docMsg)
}
