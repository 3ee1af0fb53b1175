package jobs

import (
	"log"

	"homestock.GO/config"
	"homestock.GO/cron"
	metricsService "homestock.GO/service/metrics"
)

func init() {
	cron.Register("expiryreport", "0 6 * * *", ExpiryReportJob)
}

// ExpiryReportJob logs a daily summary of expiring and expired stock.
// Read-only: it reuses the dashboard aggregation and mutates nothing.
func ExpiryReportJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("expiry report: database connection failed: %v", err)
		return
	}

	d, err := metricsService.NewService(db).Dashboard()
	if err != nil {
		log.Printf("expiry report: %v", err)
		return
	}

	log.Printf("expiry report: %d items expiring within 3 days, %d expired; %d medicines expiring within 30 days, %d expired",
		len(d.ExpiringSoon), len(d.Expired), len(d.MedicineExpiring), len(d.MedicineExpired))
	for _, it := range d.Expired {
		if it.ExpiryDate != nil {
			log.Printf("expiry report: expired item %q (%s)", it.Name, *it.ExpiryDate)
		}
	}
}
