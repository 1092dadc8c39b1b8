package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ToMobileURL rewrites a desktop post URL onto the source site's mobile host
// ("https://{host}/{community}/{post}" -> "https://m.{host}/{community}/{post}").
// Only URLs on sourceHost with at least two path segments qualify; anything
// else returns ok=false and the caller skips the mobile fallback.
func ToMobileURL(rawURL, sourceHost string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if !strings.EqualFold(u.Hostname(), sourceHost) {
		return "", false
	}

	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", false
	}

	return fmt.Sprintf("https://m.%s/%s/%s", sourceHost, parts[0], parts[1]), true
}

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}

// DedupeStrings removes repeated values, keeping the first occurrence's position.
func DedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
