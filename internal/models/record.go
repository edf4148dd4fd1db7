package models

import "time"

// RecordKind enumerates the care record categories the backend accepts
type RecordKind string

const (
	KindBreastfeeding RecordKind = "BREASTFEEDING"
	KindBottle        RecordKind = "BOTTLE"
	KindFormula       RecordKind = "FORMULA"
	KindSolid         RecordKind = "SOLID"
	KindDiaper        RecordKind = "DIAPER"
	KindGrowth        RecordKind = "GROWTH"
	KindWater         RecordKind = "WATER"
)

// BreastSide enumerates which breast a nursing session used
type BreastSide string

const (
	SideLeft  BreastSide = "LEFT"
	SideRight BreastSide = "RIGHT"
	SideBoth  BreastSide = "BOTH"
)

// DiaperTexture enumerates stool consistency values
type DiaperTexture string

const (
	TextureWatery DiaperTexture = "WATERY"
	TextureSoft   DiaperTexture = "SOFT"
	TextureNormal DiaperTexture = "NORMAL"
	TextureHard   DiaperTexture = "HARD"
)

// DiaperColor enumerates stool color values
type DiaperColor string

const (
	ColorYellow DiaperColor = "YELLOW"
	ColorGreen  DiaperColor = "GREEN"
	ColorBrown  DiaperColor = "BROWN"
	ColorBlack  DiaperColor = "BLACK"
	ColorRed    DiaperColor = "RED"
	ColorWhite  DiaperColor = "WHITE"
)

// RawRecord is the wire shape of a care record. Optional fields are pointers
// so absent and zero values stay distinguishable across round trips.
type RawRecord struct {
	ID                int64          `json:"id,omitempty"`
	FamilyID          int64          `json:"familyId,omitempty"`
	UserID            int64          `json:"userId,omitempty"`
	BabyID            int64          `json:"babyId,omitempty"`
	Kind              RecordKind     `json:"type"`
	HappenedAt        time.Time      `json:"happenedAt"`
	Note              string         `json:"note,omitempty"`
	AmountMl          *float64       `json:"amountMl,omitempty"`
	DurationMin       *int           `json:"durationMin,omitempty"`
	BreastfeedingSide *BreastSide    `json:"breastfeedingSide,omitempty"`
	SolidType         string         `json:"solidType,omitempty"`
	SolidIngredients  string         `json:"solidIngredients,omitempty"`
	SolidBrand        string         `json:"solidBrand,omitempty"`
	SolidOrigin       string         `json:"solidOrigin,omitempty"`
	DiaperTexture     *DiaperTexture `json:"diaperTexture,omitempty"`
	DiaperColor       *DiaperColor   `json:"diaperColor,omitempty"`
	HasUrine          *bool          `json:"hasUrine,omitempty"`
	HeightCm          *float64       `json:"heightCm,omitempty"`
	WeightKg          *float64       `json:"weightKg,omitempty"`
}

// Breastfeeding is the detail payload of a direct-nursing record
type Breastfeeding struct {
	DurationMin int
	Side        BreastSide
}

// BottleFeed is the detail payload of a bottle, formula or water record
type BottleFeed struct {
	AmountMl float64
}

// SolidFood is the detail payload of a solid-food record
type SolidFood struct {
	SolidType   string
	Ingredients string
	Brand       string
	Origin      string
}

// DiaperChange is the detail payload of a diaper record
type DiaperChange struct {
	Texture  DiaperTexture
	Color    DiaperColor
	HasUrine bool
}

// GrowthMeasure is the detail payload of a growth record
type GrowthMeasure struct {
	HeightCm float64
	WeightKg float64
}

// DisplayRecord is a normalized record ready for presentation. Exactly one
// of the payload pointers is set, matching Kind; an unknown kind carries
// none and falls back to the generic icon and title.
type DisplayRecord struct {
	ID         int64
	Kind       RecordKind
	Icon       string
	Title      string
	HappenedAt time.Time
	Note       string

	Breastfeeding *Breastfeeding
	BottleFeed    *BottleFeed
	SolidFood     *SolidFood
	DiaperChange  *DiaperChange
	GrowthMeasure *GrowthMeasure
}

// Presentation fallbacks for kinds this build does not know yet.
const (
	FallbackIcon  = "📝"
	FallbackTitle = "记录"
)

var kindIcons = map[RecordKind]string{
	KindBreastfeeding: "🤱",
	KindBottle:        "🍼",
	KindFormula:       "🥛",
	KindSolid:         "🥣",
	KindDiaper:        "💩",
	KindGrowth:        "📏",
	KindWater:         "💧",
}

var kindTitles = map[RecordKind]string{
	KindBreastfeeding: "母乳亲喂",
	KindBottle:        "瓶喂",
	KindFormula:       "配方奶",
	KindSolid:         "辅食",
	KindDiaper:        "大便",
	KindGrowth:        "成长记录",
	KindWater:         "喂水",
}

var sideNames = map[BreastSide]string{
	SideLeft:  "左侧",
	SideRight: "右侧",
	SideBoth:  "两侧",
}

var textureNames = map[DiaperTexture]string{
	TextureWatery: "稀",
	TextureSoft:   "软",
	TextureNormal: "成形",
	TextureHard:   "干硬",
}

var colorNames = map[DiaperColor]string{
	ColorYellow: "黄",
	ColorGreen:  "绿",
	ColorBrown:  "棕",
	ColorBlack:  "黑",
	ColorRed:    "红",
	ColorWhite:  "白",
}

// Icon returns the emoji for a record kind, or the generic fallback
func (k RecordKind) Icon() string {
	if icon, ok := kindIcons[k]; ok {
		return icon
	}
	return FallbackIcon
}

// Title returns the Chinese label for a record kind, or the generic fallback
func (k RecordKind) Title() string {
	if title, ok := kindTitles[k]; ok {
		return title
	}
	return FallbackTitle
}

// DisplayName returns the Chinese side label, falling back to the raw code
func (s BreastSide) DisplayName() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return string(s)
}

// DisplayName returns the Chinese texture label, falling back to the raw code
func (t DiaperTexture) DisplayName() string {
	if name, ok := textureNames[t]; ok {
		return name
	}
	return string(t)
}

// DisplayName returns the Chinese color label, falling back to the raw code
func (c DiaperColor) DisplayName() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return string(c)
}

// IsFeeding reports whether the kind counts toward feeding statistics.
// Solid food counts as a feeding event even though it carries no volume.
func (k RecordKind) IsFeeding() bool {
	switch k {
	case KindBreastfeeding, KindBottle, KindFormula, KindSolid, KindWater:
		return true
	}
	return false
}
