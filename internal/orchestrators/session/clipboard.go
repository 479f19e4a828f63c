package session

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/deck-api/internal/clipboard"
	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
)

// CopyToClipboard exports the deck in clipboard format. The deck is never
// modified, whether or not the write succeeds.
func (s *Session) CopyToClipboard(ctx context.Context, cb clipboard.Clipboard) error {
	text, err := s.ExportText(ctx, codec.FormatClipboard)
	if err != nil {
		return err
	}
	if err := cb.WriteText(ctx, text); err != nil {
		slog.WarnContext(ctx, "clipboard export failed",
			"deck_id", s.id,
			"error", err)
		return err
	}
	return nil
}

// PasteFromClipboard imports clipboard text. A failed read leaves the deck
// unchanged and reports import_failed.
func (s *Session) PasteFromClipboard(ctx context.Context, cb clipboard.Clipboard) deck.ImportResult {
	text, err := cb.ReadText(ctx)
	if err != nil {
		slog.WarnContext(ctx, "clipboard import failed",
			"deck_id", s.id,
			"error", err)
		return deck.ImportResult{Message: deck.MessageImportFailed}
	}
	return s.ImportText(ctx, text, codec.FormatClipboard)
}
