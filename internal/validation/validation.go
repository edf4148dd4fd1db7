package validation

import (
	"fmt"
	"strings"
	"time"

	"yuyingbao/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateBaby checks a baby profile before it is sent to the backend
func ValidateBaby(baby models.Baby) error {
	name := strings.TrimSpace(baby.Name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	switch baby.Gender {
	case models.GenderBoy, models.GenderGirl, models.GenderUnknown:
	default:
		return ValidationError{Field: "gender", Message: "unknown gender"}
	}
	if baby.BirthDate == "" {
		return ValidationError{Field: "birthDate", Message: "birth date is required"}
	}
	birth, err := time.Parse("2006-01-02", baby.BirthDate)
	if err != nil {
		return ValidationError{Field: "birthDate", Message: "birth date must be yyyy-mm-dd"}
	}
	if birth.After(time.Now()) {
		return ValidationError{Field: "birthDate", Message: "birth date is in the future"}
	}
	if baby.BirthHeightCm < 0 || baby.BirthWeightKg < 0 {
		return ValidationError{Field: "birthMeasurements", Message: "measurements must not be negative"}
	}
	return nil
}

// ValidateFamilyName checks a family name before creation
func ValidateFamilyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "family name is required"}
	}
	return nil
}

// ValidateInviteCode checks an invite code before it goes to the server
func ValidateInviteCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ValidationError{Field: "inviteCode", Message: "invite code is required"}
	}
	if len(code) < 4 {
		return ValidationError{Field: "inviteCode", Message: "invite code is too short"}
	}
	return nil
}

// ValidateRecord checks a care record form by kind. Each kind has its
// own required fields; a failure names the field that is missing.
func ValidateRecord(record models.RawRecord) error {
	if record.Kind == "" {
		return ValidationError{Field: "type", Message: "record type is required"}
	}
	if record.HappenedAt.IsZero() {
		return ValidationError{Field: "happenedAt", Message: "time is required"}
	}
	if record.HappenedAt.After(time.Now().Add(time.Minute)) {
		return ValidationError{Field: "happenedAt", Message: "time is in the future"}
	}

	switch record.Kind {
	case models.KindBreastfeeding:
		if record.DurationMin == nil || *record.DurationMin <= 0 {
			return ValidationError{Field: "durationMin", Message: "duration is required"}
		}
		if record.BreastfeedingSide != nil {
			switch *record.BreastfeedingSide {
			case models.SideLeft, models.SideRight, models.SideBoth:
			default:
				return ValidationError{Field: "breastfeedingSide", Message: "unknown side"}
			}
		}

	case models.KindBottle, models.KindFormula, models.KindWater:
		if record.AmountMl == nil || *record.AmountMl <= 0 {
			return ValidationError{Field: "amountMl", Message: "amount is required"}
		}

	case models.KindSolid:
		if strings.TrimSpace(record.SolidType) == "" && strings.TrimSpace(record.Note) == "" {
			return ValidationError{Field: "solidType", Message: "food type or note is required"}
		}

	case models.KindDiaper:
		if record.DiaperTexture == nil {
			return ValidationError{Field: "diaperTexture", Message: "texture is required"}
		}
		switch *record.DiaperTexture {
		case models.TextureWatery, models.TextureSoft, models.TextureNormal, models.TextureHard:
		default:
			return ValidationError{Field: "diaperTexture", Message: "unknown texture"}
		}
		if record.DiaperColor != nil {
			switch *record.DiaperColor {
			case models.ColorYellow, models.ColorGreen, models.ColorBrown,
				models.ColorBlack, models.ColorRed, models.ColorWhite:
			default:
				return ValidationError{Field: "diaperColor", Message: "unknown color"}
			}
		}

	case models.KindGrowth:
		hasHeight := record.HeightCm != nil && *record.HeightCm > 0
		hasWeight := record.WeightKg != nil && *record.WeightKg > 0
		if !hasHeight && !hasWeight {
			return ValidationError{Field: "measurements", Message: "height or weight is required"}
		}

	default:
		return ValidationError{Field: "type", Message: fmt.Sprintf("unknown record type %s", record.Kind)}
	}

	return nil
}
