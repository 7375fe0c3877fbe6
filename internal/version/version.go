package version

// Version is overridden at build time with -ldflags "-X trackview/internal/version.Version=...".
var Version = "dev"
