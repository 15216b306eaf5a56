package bannerbear

import (
	"context"
	"fmt"
)

// Account returns quota and usage counters for the authenticated project.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.api.get(ctx, "/account", &account); err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// Fonts lists the font families available to templates.
func (c *Client) Fonts(ctx context.Context) (Fonts, error) {
	var fonts Fonts
	if err := c.api.get(ctx, "/fonts", &fonts); err != nil {
		return nil, fmt.Errorf("failed to list fonts: %w", err)
	}
	return fonts, nil
}

// Effects lists the effects that can be applied to image modifications.
func (c *Client) Effects(ctx context.Context) (Effects, error) {
	var effects Effects
	if err := c.api.get(ctx, "/effects", &effects); err != nil {
		return nil, fmt.Errorf("failed to list effects: %w", err)
	}
	return effects, nil
}
