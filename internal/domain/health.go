package domain

// HealthStatus is the outcome of one doctor check.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is a single diagnostic line of `vibegen doctor`.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates checks in the order they ran.
type HealthReport struct {
	Checks []HealthCheck
}

// Problems returns the names of checks that ended in HealthError.
func (r HealthReport) Problems() []string {
	var names []string
	for _, check := range r.Checks {
		if check.Status == HealthError {
			names = append(names, check.Name)
		}
	}
	return names
}
