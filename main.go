package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/quizbot/internal/ai"
	"github.com/example/quizbot/internal/bot"
	"github.com/example/quizbot/internal/database"
	"github.com/example/quizbot/internal/extract"
	"github.com/example/quizbot/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// The answer predictor is optional; without it the bot simply
	// leaves undetected answers unlabeled.
	var oracle extract.Oracle
	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := ai.New(ctx)
		if err != nil {
			log.Printf("Warning: Unable to initialize Gemini client: %v", err)
		} else {
			oracle = gemini
			defer gemini.Close()
		}
	}

	b, err := bot.New(oracle)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	sched := scheduler.New("uploads", b.Sessions())
	sched.Start()
	defer sched.Stop()

	startHealthServer()

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
		b.Stop()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped.")
}

// startHealthServer runs a minimal HTTP endpoint so hosting platforms
// see the process as healthy
func startHealthServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("Health server stopped: %v", err)
		}
	}()
}
