package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for most models.
// Section and IncomePool use the user ID as primary key,
// their timestamps are managed in the Timestamps struct.
type DefaultModel struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"` // UUID for the resource
	Timestamps
}

// Timestamps only contains the timestamps that gorm sets automatically to enable other
// primary keys than ID.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2024-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" example:"2024-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Timestamps) AfterFind(_ *gorm.DB) (err error) {
	t.CreatedAt = t.CreatedAt.In(time.UTC)
	t.UpdatedAt = t.UpdatedAt.In(time.UTC)

	return nil
}

// BeforeCreate generates a time ordered UUID for the resource
// unless one has been set already.
//
// Version 7 UUIDs sort by creation time, which keeps "id descending"
// a chronological tie-break for records created in the same instant.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID != uuid.Nil {
		return nil
	}

	m.ID, err = uuid.NewV7()
	return err
}
