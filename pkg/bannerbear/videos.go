package bannerbear

import (
	"context"
	"fmt"
)

type createVideoRequest struct {
	CreateVideoParams
	VideoTemplate string `json:"video_template"`
}

type updateVideoRequest struct {
	UpdateVideoParams
	UID string `json:"uid"`
}

// GetVideo fetches one video by uid.
func (c *Client) GetVideo(ctx context.Context, uid string) (*Video, error) {
	var video Video
	if err := c.api.get(ctx, resourcePath("videos", uid), &video); err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", uid, err)
	}
	return &video, nil
}

// ListVideos lists videos.
func (c *Client) ListVideos(ctx context.Context, opts ListOptions) ([]Video, error) {
	var videos []Video
	if err := c.api.get(ctx, "/videos"+opts.query(), &videos); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

// CreateVideo renders video template uid with params.
func (c *Client) CreateVideo(ctx context.Context, uid string, params CreateVideoParams) (*Video, error) {
	req := createVideoRequest{CreateVideoParams: params, VideoTemplate: uid}
	var video Video
	if err := c.api.post(ctx, "/videos", req, &video); err != nil {
		return nil, fmt.Errorf("failed to create video from template %s: %w", uid, err)
	}
	return &video, nil
}

// UpdateVideo changes a pending video, e.g. to approve it or fix its transcript.
func (c *Client) UpdateVideo(ctx context.Context, uid string, params UpdateVideoParams) (*Video, error) {
	req := updateVideoRequest{UpdateVideoParams: params, UID: uid}
	var video Video
	if err := c.api.patch(ctx, "/videos", req, &video); err != nil {
		return nil, fmt.Errorf("failed to update video %s: %w", uid, err)
	}
	return &video, nil
}
