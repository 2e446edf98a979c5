package models

// Settings represents application-wide settings
type Settings struct {
	Timezone    string `json:"timezone"`     // IANA timezone name, or "Local" for the system timezone
	DefaultYear int    `json:"default_year"` // year commands operate on when no --year flag is given
}
