package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds statically configured jobs. Packages under cron/jobs
// register themselves via cron.Register instead, which keeps this map
// free of imports back into the job implementations.
var CronJobs = map[string]CronJob{}
