// Package clipboard reads and writes preset text through the system
// clipboard.
package clipboard

//go:generate mockgen -destination=mock/mock_clipboard.go -package=clipboardmock github.com/KirkDiggler/deck-api/internal/clipboard Clipboard

import (
	"context"

	"github.com/atotto/clipboard"

	"github.com/KirkDiggler/deck-api/internal/errors"
)

// Clipboard is the boundary to a platform clipboard
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// System uses the operating system clipboard
type System struct{}

// NewSystem returns the system clipboard, or an Unavailable error when the
// platform has no clipboard utility.
func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, errors.Unavailable("system clipboard is not supported on this platform")
	}
	return &System{}, nil
}

var _ Clipboard = (*System)(nil)

// ReadText returns the clipboard contents
func (c *System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeAborted, "clipboard read canceled")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read clipboard")
	}
	return text, nil
}

// WriteText replaces the clipboard contents
func (c *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeAborted, "clipboard write canceled")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to write clipboard")
	}
	return nil
}

// Memory is an in-process clipboard for tests and headless use
type Memory struct {
	text string
	// Err, when set, is returned by every read and write
	Err error
}

var _ Clipboard = (*Memory)(nil)

// ReadText returns the stored text
func (c *Memory) ReadText(_ context.Context) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return c.text, nil
}

// WriteText stores text
func (c *Memory) WriteText(_ context.Context, text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.text = text
	return nil
}
