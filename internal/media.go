package internal

import "strings"

// ResolveMediaURL normalizes a media path coming from the backend.
// Absolute URLs pass through untouched. Relative Cloudinary-style paths
// ("image/upload/...") are joined onto the configured media base URL.
// Anything else is returned as-is; empty input yields empty output.
func ResolveMediaURL(raw, base string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if base != "" && (strings.HasPrefix(raw, "image/") || strings.HasPrefix(raw, "/image/")) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return base + strings.TrimPrefix(raw, "/")
	}
	return raw
}

// BookCoverURL resolves the cover image for a raw book record, preferring
// portada_url over portada.
func BookCoverURL(book map[string]any, base string) string {
	if book == nil {
		return ""
	}
	raw, _ := book["portada_url"].(string)
	if raw == "" {
		raw, _ = book["portada"].(string)
	}
	return ResolveMediaURL(raw, base)
}
