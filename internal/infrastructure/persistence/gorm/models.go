// Package gorm provides GORM model definitions and repositories
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ProfileModel stores the partial profile document a user has written.
// Keys the user never set are absent from Data.
type ProfileModel struct {
	UserID    string    `gorm:"type:varchar(128);primaryKey"`
	Data      JSONField `gorm:"type:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for ProfileModel
func (ProfileModel) TableName() string {
	return "user_profiles"
}

// Models lists every model AutoMigrate manages
func Models() []any {
	return []any{&ProfileModel{}}
}

// JSONField is a JSON object column
type JSONField map[string]any

// Scan implements the sql.Scanner interface
func (j *JSONField) Scan(value any) error {
	if value == nil {
		*j = JSONField{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
