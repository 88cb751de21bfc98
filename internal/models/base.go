package models

import "github.com/google/uuid"

// newID fills a zero primary key before insert.
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
