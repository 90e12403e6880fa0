package helpers

import "github.com/google/uuid"

// NullUUID converts a uuid to a nullable column value.
// uuid.Nil is stored as NULL.
func NullUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
