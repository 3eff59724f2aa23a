package version

// Version is overridden at build time with -ldflags "-X edusp-proxy/internal/version.Version=...".
var Version = "dev"
