package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify: teks bebas → [a-z0-9-], diakritik dibuang (é → e), fallback "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	out := reNonAlnum.ReplaceAllString(b.String(), "-")
	out = strings.Trim(reHyphen.ReplaceAllString(out, "-"), "-")
	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	if out == "" {
		return "item"
	}
	return out
}

// ScopeFn menambah WHERE (mis. tenant) saat cek keunikan slug.
type ScopeFn func(*gorm.DB) *gorm.DB

// EnsureUniqueSlugCI: cari slug unik (case-insensitive) dengan suffix -2, -3, ...
// lalu fallback suffix hex berbasis waktu.
func EnsureUniqueSlugCI(
	ctx context.Context,
	db *gorm.DB,
	table, column, base string,
	scope ScopeFn,
	maxLen int,
) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}
	candidate := base

	for i := 2; i <= 26; i++ {
		q := db.WithContext(ctx).Table(table)
		if scope != nil {
			q = scope(q)
		}
		var n int64
		if err := q.Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(candidate)).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = withSuffix(base, fmt.Sprintf("-%d", i), maxLen)
	}

	return withSuffix(base, fmt.Sprintf("-%x", time.Now().UnixNano()&0xffff), maxLen), nil
}

// UniqueSlugFrom: Slugify(preferred atau fallback) lalu EnsureUniqueSlugCI.
func UniqueSlugFrom(
	ctx context.Context,
	db *gorm.DB,
	table, column string,
	preferred *string,
	fallback string,
	scope ScopeFn,
) (string, error) {
	src := fallback
	if preferred != nil && strings.TrimSpace(*preferred) != "" {
		src = *preferred
	}
	return EnsureUniqueSlugCI(ctx, db, table, column, Slugify(src, DefaultSlugMaxLen), scope, DefaultSlugMaxLen)
}

// withSuffix memotong base supaya base+suffix <= maxLen.
func withSuffix(base, suffix string, maxLen int) string {
	keep := maxLen - len(suffix)
	if keep < 1 {
		return "x" + suffix
	}
	if len(base) > keep {
		base = base[:keep]
	}
	base = strings.Trim(base, "-")
	if base == "" {
		base = "x"
	}
	return base + suffix
}
