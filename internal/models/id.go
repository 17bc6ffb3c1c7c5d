package models

import "github.com/google/uuid"

// assignID gives a row its primary key on insert when the caller did not.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
