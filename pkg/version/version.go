// Package version carries build metadata stamped in with ldflags, e.g.
// go build -ldflags "-X github.com/shishobooks/catalog/pkg/version.Version=1.0.0".
package version

var (
	Version = "dev"
	Commit  = "unknown"
)

// String renders "<version> (<commit>)".
func String() string {
	return Version + " (" + Commit + ")"
}
