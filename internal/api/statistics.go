package api

import (
	"context"
	"fmt"

	"yuyingbao/internal/models"
)

// TodayStatistics fetches the server-computed daily summary for a baby
func (c *Client) TodayStatistics(ctx context.Context, babyID int64) (*models.TodayStatistics, error) {
	var stats models.TodayStatistics
	path := fmt.Sprintf("/statistics/babies/%d/today", babyID)
	if err := c.do(ctx, "GET", path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
