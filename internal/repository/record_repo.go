package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"yuyingbao/internal/api"
	"yuyingbao/internal/models"
)

// RecordRepository fetches care records from the backend and normalizes
// them for presentation. The backend copy is authoritative; every write
// is followed by a refetch rather than patching a local cache.
type RecordRepository struct {
	client *api.Client
}

// NewRecordRepository creates a repository over the API client
func NewRecordRepository(client *api.Client) *RecordRepository {
	return &RecordRepository{client: client}
}

// FetchAll returns all of a baby's records, normalized and sorted
// newest first. A malformed response body is treated as an empty list
// so one bad payload never takes the record screen down.
func (r *RecordRepository) FetchAll(ctx context.Context, babyID int64) ([]models.DisplayRecord, error) {
	entries, err := r.client.ListRecords(ctx, babyID)
	if err != nil {
		if errors.Is(err, api.ErrMalformedResponse) {
			log.Printf("record list for baby %d unreadable, showing empty: %v", babyID, err)
			return []models.DisplayRecord{}, nil
		}
		return nil, err
	}
	return r.normalizeAll(entries), nil
}

// FetchRange returns a baby's records within [start, end], normalized
// and sorted newest first.
func (r *RecordRepository) FetchRange(ctx context.Context, babyID int64, start, end time.Time) ([]models.DisplayRecord, error) {
	entries, err := r.client.FilterRecords(ctx, babyID, start, end)
	if err != nil {
		if errors.Is(err, api.ErrMalformedResponse) {
			log.Printf("record range for baby %d unreadable, showing empty: %v", babyID, err)
			return []models.DisplayRecord{}, nil
		}
		return nil, err
	}
	return r.normalizeAll(entries), nil
}

// Create adds a record and returns the refreshed full list
func (r *RecordRepository) Create(ctx context.Context, babyID int64, record models.RawRecord) ([]models.DisplayRecord, error) {
	if _, err := r.client.CreateRecord(ctx, babyID, record); err != nil {
		return nil, err
	}
	return r.FetchAll(ctx, babyID)
}

// Update replaces a record and returns the refreshed full list
func (r *RecordRepository) Update(ctx context.Context, babyID int64, record models.RawRecord) ([]models.DisplayRecord, error) {
	if _, err := r.client.UpdateRecord(ctx, babyID, record); err != nil {
		return nil, err
	}
	return r.FetchAll(ctx, babyID)
}

// Delete removes a record and returns the refreshed full list
func (r *RecordRepository) Delete(ctx context.Context, babyID, recordID int64) ([]models.DisplayRecord, error) {
	if err := r.client.DeleteRecord(ctx, babyID, recordID); err != nil {
		return nil, err
	}
	return r.FetchAll(ctx, babyID)
}

// normalizeAll converts raw entries to display records, dropping the
// unusable ones, and sorts the result newest first.
func (r *RecordRepository) normalizeAll(entries []json.RawMessage) []models.DisplayRecord {
	records := make([]models.DisplayRecord, 0, len(entries))
	for _, entry := range entries {
		record := Normalize(entry)
		if record == nil {
			log.Printf("dropping unusable record entry: %s", truncate(entry, 120))
			continue
		}
		records = append(records, *record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].HappenedAt.After(records[j].HappenedAt)
	})
	return records
}

// Normalize converts one raw backend entry into a display record.
// It returns nil when the entry is not an object, has no kind, or has
// an unreadable timestamp. An unknown kind is kept with the fallback
// icon and title so new server-side kinds degrade instead of vanishing.
func Normalize(entry json.RawMessage) *models.DisplayRecord {
	var raw models.RawRecord
	if err := json.Unmarshal(entry, &raw); err != nil {
		return nil
	}
	if raw.Kind == "" {
		return nil
	}
	if raw.HappenedAt.IsZero() {
		return nil
	}

	record := &models.DisplayRecord{
		ID:         raw.ID,
		Kind:       raw.Kind,
		Icon:       raw.Kind.Icon(),
		Title:      raw.Kind.Title(),
		HappenedAt: raw.HappenedAt,
		Note:       raw.Note,
	}

	switch raw.Kind {
	case models.KindBreastfeeding:
		payload := &models.Breastfeeding{Side: models.SideBoth}
		if raw.DurationMin != nil {
			payload.DurationMin = *raw.DurationMin
		}
		if raw.BreastfeedingSide != nil {
			payload.Side = *raw.BreastfeedingSide
		}
		record.Breastfeeding = payload

	case models.KindBottle, models.KindFormula, models.KindWater:
		payload := &models.BottleFeed{}
		if raw.AmountMl != nil {
			payload.AmountMl = *raw.AmountMl
		}
		record.BottleFeed = payload

	case models.KindSolid:
		record.SolidFood = &models.SolidFood{
			SolidType:   raw.SolidType,
			Ingredients: raw.SolidIngredients,
			Brand:       raw.SolidBrand,
			Origin:      raw.SolidOrigin,
		}

	case models.KindDiaper:
		payload := &models.DiaperChange{}
		if raw.DiaperTexture != nil {
			payload.Texture = *raw.DiaperTexture
		}
		if raw.DiaperColor != nil {
			payload.Color = *raw.DiaperColor
		}
		if raw.HasUrine != nil {
			payload.HasUrine = *raw.HasUrine
		}
		record.DiaperChange = payload

	case models.KindGrowth:
		payload := &models.GrowthMeasure{}
		if raw.HeightCm != nil {
			payload.HeightCm = *raw.HeightCm
		}
		if raw.WeightKg != nil {
			payload.WeightKg = *raw.WeightKg
		}
		record.GrowthMeasure = payload
	}

	return record
}

func truncate(raw []byte, max int) string {
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}
