// Package timezone keeps the application location used for metadata timestamps
// and stay dates.
//
// Call Init once at start-up with an IANA name ("UTC", "Asia/Jakarta",
// "America/New_York"). Until then every helper falls back to UTC.
//
//	timezone.Init(cfg.App.Timezone)
//	now := timezone.Now()
//	day, err := timezone.Parse(constant.StayDateFormat, "2025-03-14")
package timezone
