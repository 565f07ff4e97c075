package models

// Setting is a runtime-tunable key/value knob (service fees, delivery
// costs). Values are stored as strings and coerced by the reader.
type Setting struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key         string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string `gorm:"size:255;not null" json:"value"`
	Description string `gorm:"size:255" json:"description"`
}
