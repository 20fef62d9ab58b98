// Package version is stamped at build time:
//
//	go build -ldflags "-X bizarre-bazaar/internal/version.Version=v1.2.0 \
//	  -X bizarre-bazaar/internal/version.Commit=$(git rev-parse --short HEAD) \
//	  -X bizarre-bazaar/internal/version.BuildTime=$(date -u +%FT%TZ)"
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)
