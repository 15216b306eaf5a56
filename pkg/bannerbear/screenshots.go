package bannerbear

import (
	"context"
	"fmt"
)

type createScreenshotRequest struct {
	CreateScreenshotParams
	URL string `json:"url"`
}

// GetScreenshot fetches one screenshot by uid.
func (c *Client) GetScreenshot(ctx context.Context, uid string) (*Screenshot, error) {
	var screenshot Screenshot
	if err := c.api.get(ctx, resourcePath("screenshots", uid), &screenshot); err != nil {
		return nil, fmt.Errorf("failed to get screenshot %s: %w", uid, err)
	}
	return &screenshot, nil
}

// ListScreenshots lists screenshots.
func (c *Client) ListScreenshots(ctx context.Context, opts ListOptions) ([]Screenshot, error) {
	var screenshots []Screenshot
	if err := c.api.get(ctx, "/screenshots"+opts.query(), &screenshots); err != nil {
		return nil, fmt.Errorf("failed to list screenshots: %w", err)
	}
	return screenshots, nil
}

// CreateScreenshot captures the page at url.
func (c *Client) CreateScreenshot(ctx context.Context, url string, params CreateScreenshotParams, synchronous bool) (*Screenshot, error) {
	req := createScreenshotRequest{CreateScreenshotParams: params, URL: url}
	var screenshot Screenshot
	if err := c.create(synchronous).post(ctx, "/screenshots", req, &screenshot); err != nil {
		return nil, fmt.Errorf("failed to create screenshot of %s: %w", url, err)
	}
	return &screenshot, nil
}
