package api

import (
	"context"
	"fmt"

	"yuyingbao/internal/models"
)

// ListBabies lists the babies registered in a family
func (c *Client) ListBabies(ctx context.Context, familyID int64) ([]models.Baby, error) {
	var babies []models.Baby
	path := fmt.Sprintf("/families/%d/babies", familyID)
	if err := c.do(ctx, "GET", path, nil, &babies); err != nil {
		return nil, err
	}
	return babies, nil
}

// CreateBaby registers a new baby in a family
func (c *Client) CreateBaby(ctx context.Context, familyID int64, baby models.Baby) (*models.Baby, error) {
	var created models.Baby
	path := fmt.Sprintf("/families/%d/babies", familyID)
	if err := c.do(ctx, "POST", path, baby, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBaby updates a baby's profile
func (c *Client) UpdateBaby(ctx context.Context, familyID int64, baby models.Baby) (*models.Baby, error) {
	var updated models.Baby
	path := fmt.Sprintf("/families/%d/babies/%d", familyID, baby.ID)
	if err := c.do(ctx, "PUT", path, baby, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBaby removes a baby and all of its records
func (c *Client) DeleteBaby(ctx context.Context, familyID, babyID int64) error {
	path := fmt.Sprintf("/families/%d/babies/%d", familyID, babyID)
	return c.do(ctx, "DELETE", path, nil, nil)
}
