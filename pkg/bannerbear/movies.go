package bannerbear

import (
	"context"
	"fmt"
)

// GetMovie fetches one movie by uid.
func (c *Client) GetMovie(ctx context.Context, uid string) (*Movie, error) {
	var movie Movie
	if err := c.api.get(ctx, resourcePath("movies", uid), &movie); err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", uid, err)
	}
	return &movie, nil
}

// ListMovies lists movies.
func (c *Client) ListMovies(ctx context.Context, opts ListOptions) ([]Movie, error) {
	var movies []Movie
	if err := c.api.get(ctx, "/movies"+opts.query(), &movies); err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// CreateMovie stitches params.Inputs into one movie. The body is sent as-is.
func (c *Client) CreateMovie(ctx context.Context, params CreateMovieParams) (*Movie, error) {
	var movie Movie
	if err := c.api.post(ctx, "/movies", params, &movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return &movie, nil
}
