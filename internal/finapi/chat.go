package finapi

import (
	"context"
	"net/http"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat sends one user message and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", nil, chatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
