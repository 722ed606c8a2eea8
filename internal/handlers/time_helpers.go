package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// resolve o fuso oficial do negócio
func locationFromBusiness(biz *models.Business) *time.Location {
	return timezone.Location(biz.Timezone)
}

func parseDateInBusiness(biz *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBusiness(biz),
	)
}
