package signature

// AppType describes a companion app that can take over a login.
type AppType struct {
	Name        string
	PackageName string
	// MinimumVersion is the oldest build that supports SSO at all.
	MinimumVersion int
	// MinimumRedirectVersion is the oldest build that returns results via
	// the redirect URI rather than the legacy result payload.
	MinimumRedirectVersion int
}

var (
	UberApp = AppType{
		Name:                   "UBER",
		PackageName:            "com.ubercab",
		MinimumVersion:         31302,
		MinimumRedirectVersion: 35757,
	}
	EatsApp = AppType{
		Name:                   "UBER_EATS",
		PackageName:            "com.ubercab.eats",
		MinimumVersion:         2488,
		MinimumRedirectVersion: 2488,
	}
)

// SupportedApps lists the companion apps in order of preference.
func SupportedApps() []AppType {
	return []AppType{UberApp, EatsApp}
}
