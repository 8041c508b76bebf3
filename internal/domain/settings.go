package domain

// Settings are process-wide operational flags. They are read fresh from the
// store on every request that consults them so that a flag flip takes effect
// immediately across all instances.
type Settings struct {
	MaintenanceMode   bool `json:"maintenance_mode"`
	RegistrationsOpen bool `json:"registrations_open"`
}
