package api

import (
	"context"

	"yuyingbao/internal/models"
)

// LoginComplete exchanges a WeChat login code for a bearer token and the
// user profile in a single round trip.
func (c *Client) LoginComplete(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := c.do(ctx, "POST", "/auth/wechat/login-complete", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
