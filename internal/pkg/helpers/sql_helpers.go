package helpers

import (
	"database/sql"
	"time"
)

// TimePtr returns a pointer for a valid NullTime, nil otherwise.
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
