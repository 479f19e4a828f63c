package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-api/internal/handlers/deck/v1alpha1"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [text]",
	Short: "Replay preset text against the server's reference data",
	Long: `Import preset text into a scratch deck and report which cards were
rebound or dropped because the reference data changed.`,
	Args: cobra.ExactArgs(1),
	RunE: reconcile,
}

func reconcile(cmd *cobra.Command, args []string) error {
	text, err := presetText(cmd, args[0])
	if err != nil {
		return err
	}

	client, cleanup, err := createPresetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ReconcilePreset(ctx, &v1alpha1.ReconcilePresetRequest{
		Text:   text,
		Format: format,
	})
	if err != nil {
		return rpcError("reconcile preset", err)
	}

	fmt.Printf("Result: %s\n", resp.Message)
	if !resp.Success {
		return nil
	}
	for from, to := range resp.Substitutions {
		fmt.Printf("  rebound %s -> %s\n", from, to)
	}
	for _, id := range resp.Dropped {
		fmt.Printf("  dropped %s\n", id)
	}
	for _, id := range resp.Skipped {
		fmt.Printf("  skipped character %s\n", id)
	}
	fmt.Printf("\n%s\n", resp.Text)

	return nil
}
