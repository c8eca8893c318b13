// Package buildinfo carries the values stamped in with
// -ldflags "-X longan/internal/buildinfo.Version=...".
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the release version if there is one, else the commit, else "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	default:
		return "dev"
	}
}

// String is the full stamp for -version output.
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
