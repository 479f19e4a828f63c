package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-api/internal/handlers/deck/v1alpha1"
)

var getSharedCmd = &cobra.Command{
	Use:   "get-shared [id]",
	Short: "Fetch a shared preset by id",
	Args:  cobra.ExactArgs(1),
	RunE:  getShared,
}

func getShared(_ *cobra.Command, args []string) error {
	client, cleanup, err := createPresetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetSharedPreset(ctx, &v1alpha1.GetSharedPresetRequest{ID: args[0]})
	if err != nil {
		return rpcError("get shared preset", err)
	}

	fmt.Printf("Link:    %s\n", resp.Link)
	fmt.Printf("Expires: %s\n\n", resp.ExpiresAt.Format("2006-01-02 15:04:05"))
	return printJSON(resp.Preset)
}
