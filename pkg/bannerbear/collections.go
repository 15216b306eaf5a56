package bannerbear

import (
	"context"
	"fmt"
)

type createCollectionRequest struct {
	CreateCollectionParams
	TemplateSet string `json:"template_set"`
}

// GetCollection fetches one collection by uid.
func (c *Client) GetCollection(ctx context.Context, uid string) (*Collection, error) {
	var collection Collection
	if err := c.api.get(ctx, resourcePath("collections", uid), &collection); err != nil {
		return nil, fmt.Errorf("failed to get collection %s: %w", uid, err)
	}
	return &collection, nil
}

// ListCollections lists collections.
func (c *Client) ListCollections(ctx context.Context, opts ListOptions) ([]Collection, error) {
	var collections []Collection
	if err := c.api.get(ctx, "/collections"+opts.query(), &collections); err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

// CreateCollection renders every template of template set uid.
func (c *Client) CreateCollection(ctx context.Context, uid string, params CreateCollectionParams, synchronous bool) (*Collection, error) {
	req := createCollectionRequest{CreateCollectionParams: params, TemplateSet: uid}
	var collection Collection
	if err := c.create(synchronous).post(ctx, "/collections", req, &collection); err != nil {
		return nil, fmt.Errorf("failed to create collection from template set %s: %w", uid, err)
	}
	return &collection, nil
}
