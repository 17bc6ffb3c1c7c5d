package handlers

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

// parseAppointmentDate accepts RFC 3339 or a wall-clock "2006-01-02 15:04"
// read in the company's timezone.
func parseAppointmentDate(company *models.Company, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	tz := ""
	if company != nil {
		tz = company.Settings.Timezone
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, timezone.Location(tz))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
