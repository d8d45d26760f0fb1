package controltower

import (
	"context"
	"net/url"
	"strconv"
)

// LiveExceptions fetches the live exception feed, most recent first. limit
// caps the feed length (backend default when zero).
func (c *Client) LiveExceptions(ctx context.Context, limit int) ([]LiveException, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var feed []LiveException
	if err := c.getJSON(ctx, "/api/exceptions/live", q, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// ExceptionsByType fetches the per-type exception counts for the
// breakdown chart.
func (c *Client) ExceptionsByType(ctx context.Context) ([]ExceptionTypeCount, error) {
	var counts []ExceptionTypeCount
	if err := c.getJSON(ctx, "/api/exceptions/by-type", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
