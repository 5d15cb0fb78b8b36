package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Directory where uploaded PDFs are saved before extraction
	UploadDir string
	// Overall budget for extracting one document, OCR and labeling included
	ExtractTimeout time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		UploadDir:      "uploads",
		ExtractTimeout: 10 * time.Minute,
	}
}
