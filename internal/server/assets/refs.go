package assets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/profilesync/internal/common"
)

var errBadKey = errors.New("invalid asset key")

// ValidateKey rejects keys that cannot be stored or served: empty keys,
// absolute paths and "." or ".." segments.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("%w %q", errBadKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w %q", errBadKey, key)
		}
	}
	return nil
}

// RefBuilder turns keys into durable references served by the asset
// gateway and back. References never expire; they stay valid for as long
// as an object exists under the key.
type RefBuilder struct {
	BaseURL string
}

// Ref returns BaseURL/<key> with every key segment path-escaped.
func (b RefBuilder) Ref(key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(b.BaseURL, "/") + "/" + strings.Join(segs, "/")
}

// Key recovers the key from a reference built by Ref.
func (b RefBuilder) Key(ref string) (string, error) {
	prefix := strings.TrimRight(b.BaseURL, "/") + "/"
	rest, ok := strings.CutPrefix(ref, prefix)
	if !ok {
		return "", fmt.Errorf("reference %q is outside %q: %w", ref, b.BaseURL, common.ErrNotFound)
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", err
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// MountPath is the URL path references are served under, without a
// trailing slash. It is empty when BaseURL has no path.
func (b RefBuilder) MountPath() string {
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return ""
	}
	return strings.TrimRight(u.Path, "/")
}
