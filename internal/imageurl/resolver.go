// Package imageurl turns whatever the listings API returns for a picture
// into an absolute URL the browser can load.
package imageurl

import (
	"strings"
)

type Config struct {
	Host           string // canonical scheme+host, e.g. https://pets.sweb.ru
	BasePath       string // where bare file names live, e.g. /images/
	StoragePrefix  string // storage path the API leaks, e.g. /storage/
	PlaceholderURL string
}

type Resolver struct {
	host          string
	basePath      string
	storagePrefix string
	placeholder   string
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		host:          strings.TrimRight(cfg.Host, "/"),
		basePath:      "/" + strings.Trim(cfg.BasePath, "/") + "/",
		storagePrefix: strings.Trim(cfg.StoragePrefix, "/"),
		placeholder:   cfg.PlaceholderURL,
	}
}

// Placeholder is returned for listings without any usable picture.
func (r *Resolver) Placeholder() string {
	return r.placeholder
}

// Resolve is idempotent: anything it returns resolves to itself.
func (r *Resolver) Resolve(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return r.placeholder
	}
	if isAbsolute(p) {
		return p
	}
	if strings.HasPrefix(p, "//") {
		return "https:" + p
	}

	trimmed := strings.TrimLeft(p, "/")
	if r.storagePrefix != "" && (trimmed == r.storagePrefix || strings.HasPrefix(trimmed, r.storagePrefix+"/")) {
		return r.host + "/" + trimmed
	}
	if !strings.Contains(trimmed, "/") {
		return r.host + r.basePath + trimmed
	}
	return r.host + "/" + trimmed
}

// ResolvePet picks the cover image for a listing and normalizes every photo.
// The cover is the explicit image if present, else the first photo, else the placeholder.
func (r *Resolver) ResolvePet(image string, photos []string) (string, []string) {
	resolved := make([]string, 0, len(photos))
	for _, ph := range photos {
		if strings.TrimSpace(ph) == "" {
			continue
		}
		resolved = append(resolved, r.Resolve(ph))
	}

	switch {
	case strings.TrimSpace(image) != "":
		return r.Resolve(image), resolved
	case len(resolved) > 0:
		return resolved[0], resolved
	default:
		return r.placeholder, resolved
	}
}

func isAbsolute(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "blob:")
}
