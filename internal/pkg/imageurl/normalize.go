// Package imageurl rewrites NFT metadata image references into fetchable HTTPS URLs.
package imageurl

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	IPFSGateway    = "https://ipfs.io/ipfs/"
	ArweaveGateway = "https://arweave.net/"
)

// Normalize returns a canonical HTTPS form of raw. An empty input yields "".
// Unrecognized inputs are returned trimmed but otherwise unchanged.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	url := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(url, "ipfs://"):
		return IPFSGateway + strings.TrimPrefix(url, "ipfs://")
	case strings.HasPrefix(url, "ar://"):
		return ArweaveGateway + strings.TrimPrefix(url, "ar://")
	case strings.HasPrefix(url, "http://"):
		return "https://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "//"):
		return "https:" + url
	}

	if strings.HasPrefix(url, "{") && strings.HasSuffix(url, "}") {
		if inner, ok := embeddedURL(url); ok {
			return Normalize(inner)
		}
	}

	return url
}

// embeddedURL extracts the "image" (preferred) or "url" string field from a JSON object.
func embeddedURL(doc string) (string, bool) {
	var fields map[string]any
	if err := json.UnmarshalFromString(doc, &fields); err != nil {
		return "", false
	}
	for _, key := range []string{"image", "url"} {
		if v, ok := fields[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
