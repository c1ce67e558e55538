package intelapi

import "encoding/base64"

// URLID derives the opaque identifier the intel API uses to address a URL's
// report: the URL-safe base64 encoding of the raw URL bytes, without padding.
// Deterministic, so the same URL always maps to the same upstream resource.
func URLID(rawURL string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(rawURL))
}
