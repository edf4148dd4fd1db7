package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"yuyingbao/internal/models"
	"yuyingbao/internal/repository"
	"yuyingbao/internal/session"
	"yuyingbao/internal/stats"
)

// ExportData is the file layout of a record export
type ExportData struct {
	Version    string                  `json:"version"`
	ExportedAt time.Time               `json:"exported_at"`
	Baby       *models.Baby            `json:"baby"`
	Records    []ExportRecord          `json:"records"`
	Feeding    models.FeedingAggregate `json:"feeding_summary"`
}

// ExportRecord is one record in an export file, flattened for reading
// outside the app.
type ExportRecord struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	HappenedAt time.Time `json:"happened_at"`
	Note       string    `json:"note,omitempty"`

	AmountMl    float64 `json:"amount_ml,omitempty"`
	DurationMin int     `json:"duration_min,omitempty"`
	Side        string  `json:"breastfeeding_side,omitempty"`
	Texture     string  `json:"diaper_texture,omitempty"`
	Color       string  `json:"diaper_color,omitempty"`
	HeightCm    float64 `json:"height_cm,omitempty"`
	WeightKg    float64 `json:"weight_kg,omitempty"`
}

// ExportService writes the active baby's records to a JSON file
type ExportService struct {
	records *repository.RecordRepository
	session *session.Store
}

// NewExportService creates a new export service
func NewExportService(records *repository.RecordRepository, sess *session.Store) *ExportService {
	return &ExportService{records: records, session: sess}
}

// Export fetches all records of the active baby and writes them to
// path. The file is written atomically via a temp file and rename.
func (s *ExportService) Export(ctx context.Context, path string, now time.Time) (*ExportData, error) {
	baby, err := s.session.RequireBaby()
	if err != nil {
		return nil, err
	}

	records, err := s.records.FetchAll(ctx, baby.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: now,
		Baby:       baby,
		Records:    make([]ExportRecord, 0, len(records)),
	}
	for _, record := range records {
		data.Records = append(data.Records, flattenRecord(record))
	}
	if len(records) > 0 {
		oldest := records[len(records)-1].HappenedAt
		newest := records[0].HappenedAt
		data.Feeding = stats.AggregateFeeding(records, oldest, newest)
	}

	if err := writeJSONFile(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

// flattenRecord converts a display record into its export row
func flattenRecord(record models.DisplayRecord) ExportRecord {
	row := ExportRecord{
		ID:         record.ID,
		Type:       string(record.Kind),
		Title:      record.Title,
		HappenedAt: record.HappenedAt,
		Note:       record.Note,
	}
	switch {
	case record.Breastfeeding != nil:
		row.DurationMin = record.Breastfeeding.DurationMin
		row.Side = string(record.Breastfeeding.Side)
	case record.BottleFeed != nil:
		row.AmountMl = record.BottleFeed.AmountMl
	case record.DiaperChange != nil:
		row.Texture = string(record.DiaperChange.Texture)
		row.Color = string(record.DiaperChange.Color)
	case record.GrowthMeasure != nil:
		row.HeightCm = record.GrowthMeasure.HeightCm
		row.WeightKg = record.GrowthMeasure.WeightKg
	}
	return row
}

// writeJSONFile writes data as indented JSON with an atomic rename
func writeJSONFile(path string, data interface{}) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize export file: %w", err)
	}
	return nil
}
