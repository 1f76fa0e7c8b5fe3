package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/talss89/envtmpl/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/talss89/envtmpl/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/talss89/envtmpl/internal/version.Date={{.Date}}
)
