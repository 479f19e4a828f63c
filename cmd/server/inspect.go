package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-api/internal/clipboard"
	"github.com/KirkDiggler/deck-api/internal/codec"
	"github.com/KirkDiggler/deck-api/internal/engine"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/orchestrators/session"
	"github.com/KirkDiggler/deck-api/internal/refdata"
)

var (
	inspectFormat    string
	inspectReference string
	inspectLanguage  string
	inspectCopy      bool
	inspectObserve   map[string]int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [text]",
	Short: "Decode a preset locally",
	Long: `Decode preset text or a share link without a server. With no argument
the text is read from the system clipboard. With --reference the preset is
imported into a local deck and the drift report is printed; --observe then
lists the cards the deck would play for the given battle values. Examples:

  deck-api inspect 'rVLBbtswDP0Vw+...'
  deck-api inspect 'https://deck.example.com/share?preset=rVLBbtswDP0Vw-...'
  deck-api inspect --reference data/reference.yaml --copy
  deck-api inspect --reference data/reference.yaml --observe hand_card_count=3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "clipboard", "Preset text format (clipboard or url)")
	inspectCmd.Flags().StringVar(&inspectReference, "reference", "", "Reference data file to reconcile against")
	inspectCmd.Flags().StringVar(&inspectLanguage, "language", session.DefaultReferenceLanguage, "Language of the skill names used for drift matching")
	inspectCmd.Flags().BoolVar(&inspectCopy, "copy", false, "Copy the reconciled preset back to the clipboard")
	inspectCmd.Flags().StringToIntVar(&inspectObserve, "observe", nil, "Battle values by special control key, e.g. hand_card_count=3")
}

// isShareLink reports whether the argument is a share link rather than bare
// preset text
func isShareLink(arg string) bool {
	return strings.Contains(arg, "://")
}

func runInspect(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := codec.ParseFormat(inspectFormat)
	if err != nil {
		return err
	}

	var cb clipboard.Clipboard
	if len(args) == 0 || inspectCopy {
		system, err := clipboard.NewSystem()
		if err != nil {
			return err
		}
		cb = system
	}

	if inspectReference == "" {
		text := ""
		if len(args) == 1 {
			text = args[0]
		} else if text, err = cb.ReadText(ctx); err != nil {
			return err
		}

		var p *deck.Preset
		if isShareLink(text) {
			p, err = codec.FromURL(text)
		} else {
			p, err = codec.Decode(text, format)
		}
		if err != nil {
			return err
		}
		return printJSON(p)
	}

	s, err := newLocalSession(inspectReference)
	if err != nil {
		return err
	}

	var result deck.ImportResult
	switch {
	case len(args) == 1 && isShareLink(args[0]):
		p, err := codec.FromURL(args[0])
		if err != nil {
			return err
		}
		result = s.ImportPreset(ctx, p)
	case len(args) == 1:
		result = s.ImportText(ctx, args[0], format)
	default:
		result = s.PasteFromClipboard(ctx, cb)
	}

	fmt.Printf("Result: %s\n", result.Message)
	if !result.Success {
		return nil
	}
	for from, to := range result.Substitutions {
		fmt.Printf("  rebound %s -> %s\n", from, to)
	}
	for _, id := range result.Dropped {
		fmt.Printf("  dropped %s\n", id)
	}
	for _, id := range result.Skipped {
		fmt.Printf("  skipped character %s\n", id)
	}
	fmt.Printf("Cards: %s\n", strings.Join(s.Snapshot().CardIDs(), " "))
	if len(inspectObserve) > 0 {
		fmt.Printf("Playable: %s\n", strings.Join(s.PlayableCards(inspectObserve), " "))
	}

	if inspectCopy {
		if err := s.CopyToClipboard(ctx, cb); err != nil {
			return err
		}
		fmt.Println("Copied reconciled preset to the clipboard")
	}

	return printJSON(s.Preset())
}

func newLocalSession(path string) (*session.Session, error) {
	db, err := refdata.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	resolver, err := engine.NewResolver(&engine.ResolverConfig{Database: db})
	if err != nil {
		return nil, err
	}
	index, err := engine.NewIndex(&engine.IndexConfig{Database: db, Resolver: resolver})
	if err != nil {
		return nil, err
	}
	return session.New(&session.Config{
		Database:          db,
		Resolver:          resolver,
		Index:             index,
		ID:                "inspect",
		ReferenceLanguage: inspectLanguage,
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
