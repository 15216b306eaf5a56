package bannerbear

import (
	"context"
	"fmt"
)

// GetTemplate fetches one image template by uid.
func (c *Client) GetTemplate(ctx context.Context, uid string) (*Template, error) {
	var template Template
	if err := c.api.get(ctx, resourcePath("templates", uid), &template); err != nil {
		return nil, fmt.Errorf("failed to get template %s: %w", uid, err)
	}
	return &template, nil
}

// ListTemplates lists image templates, optionally filtered by tag and name.
func (c *Client) ListTemplates(ctx context.Context, opts TemplateListOptions) ([]Template, error) {
	var templates []Template
	if err := c.api.get(ctx, "/templates"+opts.query(), &templates); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// UpdateTemplate changes the name, tags or metadata of template uid.
func (c *Client) UpdateTemplate(ctx context.Context, uid string, params UpdateTemplateParams) (*Template, error) {
	var template Template
	if err := c.api.patch(ctx, resourcePath("templates", uid), params, &template); err != nil {
		return nil, fmt.Errorf("failed to update template %s: %w", uid, err)
	}
	return &template, nil
}

// GetTemplateSet fetches one template set by uid.
func (c *Client) GetTemplateSet(ctx context.Context, uid string) (*TemplateSet, error) {
	var set TemplateSet
	if err := c.api.get(ctx, resourcePath("template_sets", uid), &set); err != nil {
		return nil, fmt.Errorf("failed to get template set %s: %w", uid, err)
	}
	return &set, nil
}

// ListTemplateSets lists template sets.
func (c *Client) ListTemplateSets(ctx context.Context, opts ListOptions) ([]TemplateSet, error) {
	var sets []TemplateSet
	if err := c.api.get(ctx, "/template_sets"+opts.query(), &sets); err != nil {
		return nil, fmt.Errorf("failed to list template sets: %w", err)
	}
	return sets, nil
}

// GetVideoTemplate fetches one video template by uid.
func (c *Client) GetVideoTemplate(ctx context.Context, uid string) (*VideoTemplate, error) {
	var template VideoTemplate
	if err := c.api.get(ctx, resourcePath("video_templates", uid), &template); err != nil {
		return nil, fmt.Errorf("failed to get video template %s: %w", uid, err)
	}
	return &template, nil
}

// ListVideoTemplates lists video templates.
func (c *Client) ListVideoTemplates(ctx context.Context, opts ListOptions) ([]VideoTemplate, error) {
	var templates []VideoTemplate
	if err := c.api.get(ctx, "/video_templates"+opts.query(), &templates); err != nil {
		return nil, fmt.Errorf("failed to list video templates: %w", err)
	}
	return templates, nil
}
