package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const MaxImageSize = 8 << 20

var imageClient = &http.Client{Timeout: 30 * time.Second}

// FetchImage downloads an image attachment, refusing anything larger than
// MaxImageSize.
func FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := imageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image exceeds %dMB limit", MaxImageSize>>20)
	}
	return data, nil
}
