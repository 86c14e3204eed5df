package probe

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"

	"github.com/okian/tourplot/internal/adapters/dataset"
)

// verifyDataset fetches /data.json and checks it decodes as race records.
func verifyDataset(ctx context.Context, client *HTTPClient, baseURL string, stats *Stats) error {
	status, _, body, err := client.Get(ctx, baseURL+"/data.json")
	if err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: /data.json returned %d", ErrBadPayload, status)
	}
	recs, err := dataset.Decode(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	stats.Records = len(recs)
	stats.Allegations = 0
	for _, r := range recs {
		if r.HasAllegation() {
			stats.Allegations++
		}
	}
	return nil
}

// verifySVG checks /chart.svg is well-formed XML with an svg root.
func verifySVG(ctx context.Context, client *HTTPClient, baseURL string) error {
	status, _, body, err := client.Get(ctx, baseURL+"/chart.svg")
	if err != nil {
		return fmt.Errorf("fetch svg: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: /chart.svg returned %d", ErrBadPayload, status)
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	root := ""
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: svg: %w", ErrBadPayload, err)
		}
		if se, ok := tok.(xml.StartElement); ok && root == "" {
			root = se.Name.Local
		}
	}
	if root != "svg" {
		return fmt.Errorf("%w: svg root is %q", ErrBadPayload, root)
	}
	return nil
}

// verifyPNG checks /chart.png decodes as an image.
func verifyPNG(ctx context.Context, client *HTTPClient, baseURL string) error {
	status, _, body, err := client.Get(ctx, baseURL+"/chart.png")
	if err != nil {
		return fmt.Errorf("fetch png: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: /chart.png returned %d", ErrBadPayload, status)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(body)); err != nil {
		return fmt.Errorf("%w: png: %w", ErrBadPayload, err)
	}
	return nil
}
