package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-api/internal/handlers/deck/v1alpha1"
)

var shareTTL time.Duration

var shareCmd = &cobra.Command{
	Use:   "share [text]",
	Short: "Store a preset and print its share link",
	Args:  cobra.ExactArgs(1),
	RunE:  share,
}

func init() {
	shareCmd.Flags().DurationVar(&shareTTL, "ttl", 0, "Share lifetime (server default when zero)")
}

func share(cmd *cobra.Command, args []string) error {
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

	resp, err := client.SharePreset(ctx, &v1alpha1.SharePresetRequest{
		Text:       text,
		Format:     format,
		TTLSeconds: int64(shareTTL / time.Second),
	})
	if err != nil {
		return rpcError("share preset", err)
	}

	fmt.Printf("ID:      %s\n", resp.ID)
	fmt.Printf("Link:    %s\n", resp.Link)
	fmt.Printf("Expires: %s\n", resp.ExpiresAt.Format("2006-01-02 15:04:05"))

	return nil
}
