// Package codec converts presets to and from their compact text form:
// JSON, raw DEFLATE without a container header, then base64. The clipboard
// flavor uses the standard alphabet and never carries the equipment layout
// or awakening stages; the URL flavor uses the URL-safe alphabet and keeps
// both.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"

	"github.com/klauspost/compress/flate"

	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
)

// Format selects the text flavor of an encoded preset
type Format int

// Supported formats
const (
	FormatClipboard Format = iota
	FormatURL
)

// String returns the flag name of the format
func (f Format) String() string {
	switch f {
	case FormatClipboard:
		return "clipboard"
	case FormatURL:
		return "url"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat converts a flag value to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clipboard", "":
		return FormatClipboard, nil
	case "url":
		return FormatURL, nil
	default:
		return 0, errors.InvalidArgumentf("unknown preset format %q", s)
	}
}

// QueryParam is the share link query parameter carrying a URL preset
const QueryParam = "preset"

// MaxInflatedSize bounds the decompressed JSON of a preset
const MaxInflatedSize = 1 << 20

var (
	// ErrInvalidInput is wrapped by every decode failure
	ErrInvalidInput = stderrors.New("invalid preset input")
	// ErrInvalidPresetFormat is wrapped when the JSON has the wrong shape
	ErrInvalidPresetFormat = stderrors.New("invalid preset format")
)

func invalidInput(cause error, message string) error {
	return errors.WrapWithCode(fmt.Errorf("%w: %v", ErrInvalidInput, cause), errors.CodeInvalidArgument, message).
		WithReason(deck.MessageImportFailed)
}

func invalidFormat(cause error) error {
	return errors.WrapWithCode(
		fmt.Errorf("%w: %w: %v", ErrInvalidInput, ErrInvalidPresetFormat, cause),
		errors.CodeInvalidArgument,
		"preset does not match the expected schema",
	).WithReason(deck.MessageInvalidPresetFormat)
}

// Encode serializes a preset in the given format
func Encode(p *deck.Preset, format Format) (string, error) {
	if p == nil {
		return "", errors.InvalidArgument("preset is required")
	}
	enc, err := encoding(format)
	if err != nil {
		return "", err
	}

	v := p.WithCompactLayout()
	if format == FormatClipboard {
		v = v.WithoutLayout()
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal preset")
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", errors.Wrap(err, "failed to create deflate writer")
	}
	if _, err := w.Write(raw); err != nil {
		return "", errors.Wrap(err, "failed to compress preset")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to compress preset")
	}

	return enc.EncodeToString(buf.Bytes()), nil
}

// Decode parses encoded preset text. Whitespace anywhere in the text is
// ignored and padding is optional. Empty layout maps decode as nil. Every
// failure wraps ErrInvalidInput.
func Decode(text string, format Format) (*deck.Preset, error) {
	enc, err := encoding(format)
	if err != nil {
		return nil, err
	}

	compact := strings.TrimRight(stripSpace(text), "=")
	if compact == "" {
		return nil, invalidInput(stderrors.New("empty text"), "preset text is empty")
	}

	compressed, err := enc.WithPadding(base64.NoPadding).DecodeString(compact)
	if err != nil {
		return nil, invalidInput(err, "preset text is not valid base64")
	}

	raw, err := inflate(compressed)
	if err != nil {
		return nil, invalidInput(err, "preset data is corrupt")
	}

	p, err := parse(raw)
	if err != nil {
		return nil, err
	}
	*p = p.WithCompactLayout()
	if format == FormatClipboard {
		*p = p.WithoutLayout()
	}
	return p, nil
}

// ShareURL returns base with the preset attached as a query parameter
func ShareURL(base string, p *deck.Preset) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid share base url")
	}

	text, err := Encode(p, FormatURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(QueryParam, text)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromURL decodes the preset attached to a share link
func FromURL(link string) (*deck.Preset, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return nil, invalidInput(err, "invalid share link")
	}
	text := u.Query().Get(QueryParam)
	if text == "" {
		return nil, invalidInput(fmt.Errorf("missing %q query parameter", QueryParam), "share link carries no preset")
	}
	return Decode(text, FormatURL)
}

func encoding(format Format) (*base64.Encoding, error) {
	switch format {
	case FormatClipboard:
		return base64.StdEncoding, nil
	case FormatURL:
		return base64.URLEncoding, nil
	default:
		return nil, errors.InvalidArgumentf("unknown preset format %d", int(format))
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func inflate(compressed []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(compressed))
	defer func() { _ = r.Close() }()

	raw, err := io.ReadAll(io.LimitReader(r, MaxInflatedSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxInflatedSize {
		return nil, fmt.Errorf("inflated preset exceeds %d bytes", MaxInflatedSize)
	}
	return raw, nil
}
