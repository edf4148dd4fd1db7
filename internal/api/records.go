package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"yuyingbao/internal/models"
)

// ListRecords fetches all records of a baby. Entries come back raw so
// the repository can normalize each one independently and drop only the
// entries that are unusable.
func (c *Client) ListRecords(ctx context.Context, babyID int64) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	path := fmt.Sprintf("/babies/%d/records", babyID)
	if err := c.do(ctx, "GET", path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FilterRecords fetches a baby's records within a time window
func (c *Client) FilterRecords(ctx context.Context, babyID int64, start, end time.Time) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	query := url.Values{}
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", end.Format(time.RFC3339))
	path := fmt.Sprintf("/babies/%d/records/filter?%s", babyID, query.Encode())
	if err := c.do(ctx, "GET", path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateRecord creates a new care record
func (c *Client) CreateRecord(ctx context.Context, babyID int64, record models.RawRecord) (*models.RawRecord, error) {
	var created models.RawRecord
	path := fmt.Sprintf("/babies/%d/records", babyID)
	if err := c.do(ctx, "POST", path, record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRecord replaces an existing care record
func (c *Client) UpdateRecord(ctx context.Context, babyID int64, record models.RawRecord) (*models.RawRecord, error) {
	var updated models.RawRecord
	path := fmt.Sprintf("/babies/%d/records/%d", babyID, record.ID)
	if err := c.do(ctx, "PUT", path, record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRecord removes a care record
func (c *Client) DeleteRecord(ctx context.Context, babyID, recordID int64) error {
	path := fmt.Sprintf("/babies/%d/records/%d", babyID, recordID)
	return c.do(ctx, "DELETE", path, nil, nil)
}
