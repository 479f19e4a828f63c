package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-api/internal/handlers/deck/v1alpha1"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [text]",
	Short: "Decode preset text on the server",
	Long: `Decode preset text and print the preset as JSON. Examples:

  client decode 'rVLBbtswDP0Vw+...'
  client decode --format url 'rVLBbtswDP0Vw-...'
  pbpaste | client decode -`,
	Args: cobra.ExactArgs(1),
	RunE: decode,
}

func decode(cmd *cobra.Command, args []string) error {
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

	resp, err := client.DecodePreset(ctx, &v1alpha1.DecodePresetRequest{
		Text:   text,
		Format: format,
	})
	if err != nil {
		return rpcError("decode preset", err)
	}

	return printJSON(resp.Preset)
}
