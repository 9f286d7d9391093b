package sosa

import "strings"

// Placeholder is served in place of a missing image.
const Placeholder = "/placeholder.svg"

// ImageURL resolves a storage path to an absolute URL on base.
// Absolute URLs and placeholder paths pass through unchanged.
func ImageURL(base, path string) string {
	if path == "" {
		return Placeholder
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "/placeholder") {
		return path
	}
	return strings.TrimRight(base, "/") + "/storage/" + strings.TrimLeft(path, "/")
}

// ImageURLs maps ImageURL over paths; an empty list yields the placeholder alone.
func ImageURLs(base string, paths []string) []string {
	if len(paths) == 0 {
		return []string{Placeholder}
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = ImageURL(base, p)
	}
	return out
}

func (c *Client) ImageURL(path string) string { return ImageURL(c.base, path) }

func (c *Client) ImageURLs(paths []string) []string { return ImageURLs(c.base, paths) }
