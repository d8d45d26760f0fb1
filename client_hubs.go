package controltower

import "context"

// HubStatuses fetches the hub status board.
func (c *Client) HubStatuses(ctx context.Context) ([]HubStatus, error) {
	var hubs []HubStatus
	if err := c.getJSON(ctx, "/api/hubs/status", nil, &hubs); err != nil {
		return nil, err
	}
	return hubs, nil
}
