// Package client provides commands that call a running deck-api server
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/handlers/deck/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// format is the preset text flavor shared by the subcommands
	format string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the deck API",
	Long:  `Client commands make real gRPC requests against a running deck-api server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&format, "format", "clipboard", "Preset text format (clipboard or url)")

	ClientCmd.AddCommand(decodeCmd)
	ClientCmd.AddCommand(reconcileCmd)
	ClientCmd.AddCommand(shareCmd)
	ClientCmd.AddCommand(getSharedCmd)
}

// createPresetClient creates a preset service client
func createPresetClient() (v1alpha1.PresetServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewPresetServiceClient(conn), cleanup, nil
}

// rpcError restores the code and metadata the server attached to a failed
// call, so callers can branch on them, and names the failed operation with
// its reason when one was sent.
func rpcError(op string, err error) error {
	err = errors.FromGRPCError(err)
	msg := "failed to " + op
	if reason := errors.Reason(err, ""); reason != "" {
		msg += " (" + reason + ")"
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// presetText returns arg, or standard input when arg is "-"
func presetText(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read preset from stdin: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
