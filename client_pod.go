package controltower

import (
	"context"
	"net/url"
)

// SearchPOD searches proof-of-delivery documents by AWB number or
// shipment ID fragment.
func (c *Client) SearchPOD(ctx context.Context, query string) ([]PODShipment, error) {
	q := url.Values{}
	q.Set("q", query)

	var hits []PODShipment
	if err := c.getJSON(ctx, "/api/pod/search", q, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}
