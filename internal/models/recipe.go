package models

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a custom type for handling string arrays in JSONB
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// RatingMap maps a rater's user id to the rating they gave. One entry per
// rater; the recipe's own creator never appears as a key.
type RatingMap map[string]float64

// Value implements the driver.Valuer interface
func (m RatingMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *RatingMap) Scan(value interface{}) error {
	if value == nil {
		*m = RatingMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Recipe is the persisted recipe document. An unpersisted recipe (fresh from
// generation, still sitting in a batch) has an empty ID and an empty UserID.
type Recipe struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title        string      `gorm:"size:255;not null" json:"title"`
	Description  string      `gorm:"type:text" json:"description"`
	Categories   StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"categories"`
	Ingredients  StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`

	// Timing fields are minutes and optional: zero means "not provided" and
	// is omitted from responses.
	PrepTime int `json:"estimatedPrepTime,omitempty"`
	CookTime int `json:"estimatedCookingTime,omitempty"`
	Servings int `json:"servings"`

	UserID string `gorm:"type:varchar(36);index" json:"userId,omitempty"`
	Public bool   `gorm:"not null;default:false" json:"public"`
	Image  string `gorm:"size:255" json:"image"`

	// Aggregate rating fields. Invariants:
	//   NumOfRatings == len(RatingList)
	//   TotalSumRatings == sum(RatingList values)
	//   Rating == round(TotalSumRatings/NumOfRatings, 1) when NumOfRatings > 0
	Rating          float64   `json:"rating"`
	NumOfRatings    int       `json:"numOfRatings"`
	TotalSumRatings float64   `json:"totalSumRatings"`
	RatingList      RatingMap `gorm:"type:jsonb;not null;default:'{}'" json:"ratingList,omitempty"`

	// UserRating is the current viewer's own rating, computed on read from
	// RatingList. Never stored.
	UserRating *float64 `gorm:"-" json:"userRating,omitempty"`
}

// BeforeCreate assigns a fresh id so creation works on every dialect.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// RoundRating rounds an average rating to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// RecomputeRating refreshes the rounded mean from the running sum and count.
func (r *Recipe) RecomputeRating() {
	if r.NumOfRatings > 0 {
		r.Rating = RoundRating(r.TotalSumRatings / float64(r.NumOfRatings))
	} else {
		r.Rating = 0.0
	}
}
