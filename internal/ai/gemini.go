package ai

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is used when GEMINI_MODEL is not set
	DefaultModel = "gemini-1.5-flash"
	// predictTimeout bounds a single labeling call
	predictTimeout = 20 * time.Second
)

// Gemini is a best-effort answer predictor backed by the Google
// generative language API. Every failure degrades to "unknown"; callers
// never see an error.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// New creates a new Gemini client from GEMINI_API_KEY and GEMINI_MODEL
func New(ctx context.Context) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := os.Getenv("GEMINI_MODEL")
	if name == "" {
		name = DefaultModel
	}

	return &Gemini{client: client, model: client.GenerativeModel(name)}, nil
}

// Close closes the underlying API client
func (g *Gemini) Close() {
	g.client.Close()
}

// Predict asks the model for the 0-based index of the correct option.
// It returns false on timeout, transport failure, or an unparseable or
// out-of-range reply.
func (g *Gemini) Predict(ctx context.Context, question string, options []string) (int, bool) {
	ctx, cancel := context.WithTimeout(ctx, predictTimeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(question, options)))
	if err != nil {
		log.Printf("Gemini labeling error: %v", err)
		return 0, false
	}

	return parseIndex(responseText(resp), len(options))
}

// buildPrompt asks for the index only, so the reply is trivially
// parseable
func buildPrompt(question string, options []string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert exam setter. Given the question and options, reply ONLY with the index number (0-based) of the correct option.\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\nOptions:\n")
	for i, opt := range options {
		fmt.Fprintf(&sb, "%d: %s\n", i, opt)
	}
	return sb.String()
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// parseIndex scans the reply for the first integer token that is a
// valid option index
func parseIndex(reply string, optionCount int) (int, bool) {
	for _, tok := range strings.Fields(reply) {
		tok = strings.Trim(tok, ".,:;()[]")
		idx, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if idx >= 0 && idx < optionCount {
			return idx, true
		}
	}
	return 0, false
}
