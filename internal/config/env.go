package config

import (
	"os"
	"strings"
)

// EnsureURL normalises an input into a URL, applying a default scheme when necessary.
func EnsureURL(v, defaultScheme string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	if defaultScheme == "" {
		defaultScheme = "https"
	}
	return defaultScheme + "://" + v
}

// Runtime names the platform the process is running on.
func Runtime() string {
	switch {
	case os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "":
		return "lambda"
	case os.Getenv("VERCEL") != "":
		return "vercel"
	default:
		return "server"
	}
}

// DerivePublicURL builds the URL the gateway is reachable on, for log output.
// An explicit PUBLIC_URL wins, then VERCEL_URL, then the bind address.
func (c *Config) DerivePublicURL() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	if u := EnsureURL(os.Getenv("VERCEL_URL"), "https"); u != "" {
		return u
	}

	h, p := c.Addr, ""
	if i := strings.LastIndex(c.Addr, ":"); i != -1 {
		h, p = c.Addr[:i], c.Addr[i+1:]
	}
	if h == "0.0.0.0" || h == "::" || h == "[::]" || h == "" {
		h = "localhost"
	}
	if p == "" {
		p = "8080"
	}
	return "http://" + h + ":" + p
}
