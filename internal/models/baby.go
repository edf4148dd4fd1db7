package models

import (
	"fmt"
	"math"
	"time"
)

// Gender enumerates baby genders as the backend encodes them
type Gender string

const (
	GenderBoy     Gender = "BOY"
	GenderGirl    Gender = "GIRL"
	GenderUnknown Gender = "UNKNOWN"
)

// Baby represents a tracked child profile owned by a family
type Baby struct {
	ID            int64   `json:"id"`
	FamilyID      int64   `json:"familyId,omitempty"`
	Name          string  `json:"name"`
	Gender        Gender  `json:"gender"`
	BirthDate     string  `json:"birthDate"` // yyyy-mm-dd
	AvatarURL     string  `json:"avatarUrl,omitempty"`
	BirthHeightCm float64 `json:"birthHeightCm,omitempty"`
	BirthWeightKg float64 `json:"birthWeightKg,omitempty"`
}

// daysPerMonth is the average month length used for age display.
const daysPerMonth = 30.44

// AgeText renders the baby's age at the given instant as "N天", "M个月"
// or "M个月零N天". The age is derived on every read and never stored.
func (b Baby) AgeText(now time.Time) string {
	months, days, ok := b.ageParts(now)
	if !ok {
		return "0个月"
	}
	switch {
	case months == 0:
		return fmt.Sprintf("%d天", days)
	case days == 0:
		return fmt.Sprintf("%d个月", months)
	default:
		return fmt.Sprintf("%d个月零%d天", months, days)
	}
}

// AgeInMonths returns the whole-month age used for recommendation lookups.
func (b Baby) AgeInMonths(now time.Time) int {
	months, _, ok := b.ageParts(now)
	if !ok {
		return 0
	}
	return months
}

func (b Baby) ageParts(now time.Time) (months, days int, ok bool) {
	if b.BirthDate == "" {
		return 0, 0, false
	}
	birth, err := time.Parse("2006-01-02", b.BirthDate)
	if err != nil {
		return 0, 0, false
	}
	diff := now.Sub(birth)
	if diff < 0 {
		diff = -diff
	}
	totalDays := math.Ceil(diff.Hours() / 24)
	months = int(math.Floor(totalDays / daysPerMonth))
	days = int(math.Floor(math.Mod(totalDays, daysPerMonth)))
	return months, days, true
}

// AvatarRef returns the avatar URL, falling back to the gender default image.
func (b Baby) AvatarRef() string {
	if b.AvatarURL != "" {
		return b.AvatarURL
	}
	if b.Gender == GenderBoy {
		return "/images/baby-boy.png"
	}
	return "/images/baby-girl.png"
}
