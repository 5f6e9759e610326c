package standings

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

// EncodeLogo reads an image and returns it as a base64 data URL.
func EncodeLogo(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	mime := mimetype.Detect(data)
	kind, _, _ := strings.Cut(mime.String(), ";")
	if !strings.HasPrefix(kind, "image/") {
		return "", ErrNotImage
	}
	return "data:" + kind + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// UploadLogo encodes an image and stores it on the edit selection when an edit
// is active, otherwise on the create draft. Nothing is sent to the remote store.
func (c *Controller) UploadLogo(ctx context.Context, name string, r io.Reader) error {
	if !c.session.IsAdmin() {
		return ErrNotAdmin
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	url, err := EncodeLogo(r)
	if err != nil {
		return err
	}

	c.mu.Lock()
	target := "draft"
	switch {
	case c.selection != nil && c.edit.state == DialogSubmitting:
		c.mu.Unlock()
		return ErrSubmitInFlight
	case c.selection != nil:
		c.selection.LogoURL = url
		target = "selection"
	default:
		c.draft.LogoURL = url
	}
	c.mu.Unlock()

	logging.Debug(c.loggerFor(ctx), "logo attached", slog.String("file", name), slog.String("target", target))
	return nil
}
