package controltower

import (
	"context"
	"errors"
	"fmt"
)

type chatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Ask sends a question to the chat assistant along with the prior turns
// for context, and returns the assistant's reply. The assistant lives at
// its own base URL; when none is configured, or the service cannot be
// reached, the error matches [ErrAssistantUnavailable].
func (c *Client) Ask(ctx context.Context, message string, history []ChatTurn) (string, error) {
	if c.assistantURL == "" {
		return "", ErrAssistantUnavailable
	}
	if c.metrics != nil {
		c.metrics.Inc(MetricAssistantAsk)
	}

	// Assistant replies are slower than REST reads; the service gets its
	// own deadline instead of the backend one.
	if c.assistantTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.assistantTimeout)
		defer cancel()
	}

	// The assistant rejects a null history; send an empty list instead.
	if history == nil {
		history = []ChatTurn{}
	}

	var resp chatResponse
	err := c.do(ctx, "POST", c.assistantURL, "/chat", nil, chatRequest{
		Message: message,
		History: history,
	}, &resp)
	if err != nil {
		if errors.Is(err, ErrBackendUnavailable) {
			return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
		}
		return "", err
	}
	return resp.Reply, nil
}
