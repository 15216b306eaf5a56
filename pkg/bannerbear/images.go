package bannerbear

import (
	"context"
	"fmt"
)

type createImageRequest struct {
	CreateImageParams
	Template string `json:"template"`
}

func newCreateImageRequest(uid string, params CreateImageParams) createImageRequest {
	return createImageRequest{CreateImageParams: params, Template: uid}
}

// GetImage fetches one image by uid.
func (c *Client) GetImage(ctx context.Context, uid string) (*Image, error) {
	var image Image
	if err := c.api.get(ctx, resourcePath("images", uid), &image); err != nil {
		return nil, fmt.Errorf("failed to get image %s: %w", uid, err)
	}
	return &image, nil
}

// ListImages lists images, most recent first.
func (c *Client) ListImages(ctx context.Context, opts ListOptions) ([]Image, error) {
	var images []Image
	if err := c.api.get(ctx, "/images"+opts.query(), &images); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// CreateImage renders template uid with params. When synchronous is true the
// request goes to the synchronous host, which answers once rendering is done.
func (c *Client) CreateImage(ctx context.Context, uid string, params CreateImageParams, synchronous bool) (*Image, error) {
	var image Image
	if err := c.create(synchronous).post(ctx, "/images", newCreateImageRequest(uid, params), &image); err != nil {
		return nil, fmt.Errorf("failed to create image from template %s: %w", uid, err)
	}
	return &image, nil
}
