package service

import (
	"context"
	"log"
	"time"

	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"
)

// flasher writes transient messages; failures only cost the message.
type flasher struct {
	flashes repository.FlashRepository
}

func (f flasher) flash(ctx context.Context, sessionID, message string, kind model.FlashKind, delay time.Duration) {
	if f.flashes == nil || sessionID == "" {
		return
	}
	if err := f.flashes.Set(ctx, sessionID, model.Flash{Message: message, Kind: kind}, delay); err != nil {
		log.Printf("WARN: Failed to store flash for session %s: %v", sessionID, err)
	}
}
