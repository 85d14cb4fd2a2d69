package helper

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	helpers "sekolahku_backend/internals/helpers"
)

const TrashPrefix = "trash"

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// BuildObjectKey: <prefix>/<dir>/<slug>_<yyyymmdd_hhmmss>_<rand><ext>
func BuildObjectKey(prefix, dir, filename, forceExt string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if forceExt != "" {
		ext = forceExt
	}
	name := fmt.Sprintf("%s_%s_%s%s", helpers.Slugify(base, 60), now.Format("20060102_150405"), randHex(3), ext)

	parts := []string{}
	for _, p := range []string{prefix, dir} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, name)
	return path.Join(parts...)
}

// PublicURLFor: pakai base publik (CDN) kalau ada, else virtual-host OSS.
func PublicURLFor(publicBase, endpoint, bucket, key string) string {
	if key == "" {
		return ""
	}
	if publicBase = strings.TrimRight(strings.TrimSpace(publicBase), "/"); publicBase != "" {
		return publicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucket, end, key)
}

func KeyFromPublicURL(publicURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(publicURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("empty key from URL")
	}
	return key, nil
}

// TrashKey: trash/YYYY/MM/DD/HHMMSS__basename
func TrashKey(srcKey string, now time.Time) string {
	return path.Join(
		TrashPrefix,
		now.Format("2006"), now.Format("01"), now.Format("02"),
		fmt.Sprintf("%s__%s", now.Format("150405"), path.Base(srcKey)),
	)
}
