package auth

import "strings"

// parseUserAgent extracts coarse browser and OS names from a User-Agent
// string for the session summary view. This is intentionally rough: the
// summaries only need "Chrome on Windows" level detail so a user can
// recognize their own sessions. Unrecognized agents report "Unknown".
func parseUserAgent(ua string) (browser, os string) {
	browser, os = "Unknown", "Unknown"
	if ua == "" {
		return browser, os
	}

	// Order matters: Edge and Opera embed "Chrome", Chrome embeds "Safari".
	switch {
	case strings.Contains(ua, "Edg/"):
		browser = "Edge"
	case strings.Contains(ua, "OPR/"):
		browser = "Opera"
	case strings.Contains(ua, "Chrome/"):
		browser = "Chrome"
	case strings.Contains(ua, "Firefox/"):
		browser = "Firefox"
	case strings.Contains(ua, "Safari/"):
		browser = "Safari"
	}

	switch {
	case strings.Contains(ua, "Windows"):
		os = "Windows"
	case strings.Contains(ua, "Android"):
		os = "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		os = "iOS"
	case strings.Contains(ua, "Mac OS X"):
		os = "macOS"
	case strings.Contains(ua, "Linux"):
		os = "Linux"
	}

	return browser, os
}
