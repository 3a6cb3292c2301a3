package analytics

import "strings"

// Platform privilege classification. Cloud platforms carry the highest
// base privilege, then database engines, then SSH-reachable hosts.
var (
	cloudPlatforms = map[string]bool{
		"aws": true, "azure": true, "gcp": true, "cloud": true,
	}
	databasePlatforms = map[string]bool{
		"oracle": true, "mysql": true, "postgres": true, "postgresql": true,
		"mssql": true, "db2": true, "mongodb": true, "database": true,
	}
	sshPlatforms = map[string]bool{
		"ssh": true, "unix": true, "linux": true,
	}
)

// Known shared superuser account names, scored at the privilege cap.
var superuserNames = map[string]bool{
	"root": true, "admin": true, "administrator": true,
	"sa": true, "sys": true, "system": true, "oracle": true, "postgres": true,
}

// isHighPrivilegePlatform reports whether the platform is in scope for
// over-privilege detection.
func isHighPrivilegePlatform(platform string) bool {
	p := strings.ToLower(platform)
	return cloudPlatforms[p] || databasePlatforms[p] || sshPlatforms[p]
}

// platformBaseScore is the over-privilege base score per platform kind.
func platformBaseScore(platform string) int {
	p := strings.ToLower(platform)
	switch {
	case cloudPlatforms[p]:
		return 90
	case databasePlatforms[p]:
		return 80
	case sshPlatforms[p]:
		return 75
	default:
		return 0
	}
}

// privilegeFactorScore is the 0-25 privilege contribution to the risk
// score. Known superuser names always score at the cap.
func privilegeFactorScore(platform, username string) int {
	if superuserNames[strings.ToLower(username)] {
		return privilegeFactorMax
	}
	p := strings.ToLower(platform)
	switch {
	case cloudPlatforms[p]:
		return 20
	case databasePlatforms[p], sshPlatforms[p]:
		return 15
	default:
		return 5
	}
}
