package bannerbear

import (
	"context"
	"fmt"
)

type createAnimatedGifRequest struct {
	CreateAnimatedGifParams
	Template string `json:"template"`
}

// GetAnimatedGif fetches one animated gif by uid.
func (c *Client) GetAnimatedGif(ctx context.Context, uid string) (*AnimatedGif, error) {
	var gif AnimatedGif
	if err := c.api.get(ctx, resourcePath("animated_gifs", uid), &gif); err != nil {
		return nil, fmt.Errorf("failed to get animated gif %s: %w", uid, err)
	}
	return &gif, nil
}

// ListAnimatedGifs lists animated gifs.
func (c *Client) ListAnimatedGifs(ctx context.Context, opts ListOptions) ([]AnimatedGif, error) {
	var gifs []AnimatedGif
	if err := c.api.get(ctx, "/animated_gifs"+opts.query(), &gifs); err != nil {
		return nil, fmt.Errorf("failed to list animated gifs: %w", err)
	}
	return gifs, nil
}

// CreateAnimatedGif renders one frame of template uid per entry in params.Frames.
func (c *Client) CreateAnimatedGif(ctx context.Context, uid string, params CreateAnimatedGifParams) (*AnimatedGif, error) {
	req := createAnimatedGifRequest{CreateAnimatedGifParams: params, Template: uid}
	var gif AnimatedGif
	if err := c.api.post(ctx, "/animated_gifs", req, &gif); err != nil {
		return nil, fmt.Errorf("failed to create animated gif from template %s: %w", uid, err)
	}
	return &gif, nil
}
