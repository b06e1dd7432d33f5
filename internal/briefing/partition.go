package briefing

import "github.com/bobmcallan/briefing-portal/internal/models"

// Partition splits events into those dated exactly today and the rest,
// keeping input order within each half. Both results are non-nil.
func Partition(events []models.EconomicEvent, today string) (todayEvents, otherEvents []models.EconomicEvent) {
	todayEvents = []models.EconomicEvent{}
	otherEvents = []models.EconomicEvent{}
	for _, e := range events {
		if e.Date == today {
			todayEvents = append(todayEvents, e)
		} else {
			otherEvents = append(otherEvents, e)
		}
	}
	return todayEvents, otherEvents
}
