package services

import (
	"strconv"
	"strings"

	"github.com/kenjikellens/ivids-core/internal/models"
)

// legacyVersions are placeholder version names shipped by early builds; any
// published release counts as newer than them.
var legacyVersions = map[string]struct{}{
	"1.0":   {},
	"1.0.0": {},
}

// VersionChecker compares the installed version with the latest published one,
// reporting the comparing-versions status first.
type VersionChecker struct {
	notify func(models.Status)
}

func NewVersionChecker(notify func(models.Status)) *VersionChecker {
	return &VersionChecker{notify: notify}
}

// IsNewer reports whether latest is strictly newer than current.
func (v *VersionChecker) IsNewer(current, latest string) bool {
	if v.notify != nil {
		v.notify(models.StatusComparingVersions)
	}
	return CompareVersions(current, latest)
}

// CompareVersions reports whether latest is strictly newer than current.
//
// Both sides lose one leading "v" and are split on "."; every part keeps only
// its digits ("3rc1" reads as 31) and missing parts count as 0. The first
// differing part decides. When a part cannot be read as a number the result
// is plain inequality of the two inputs.
func CompareVersions(current, latest string) bool {
	if _, ok := legacyVersions[current]; ok {
		return true
	}

	c := splitVersion(current)
	l := splitVersion(latest)

	n := max(len(c), len(l))
	for i := 0; i < n; i++ {
		cp, err := versionPart(c, i)
		if err != nil {
			return current != latest
		}
		lp, err := versionPart(l, i)
		if err != nil {
			return current != latest
		}

		if lp > cp {
			return true
		}
		if cp > lp {
			return false
		}
	}
	return false
}

// splitVersion drops trailing empty parts, so "1.2." has two parts and "."
// has none. A string without any "." stays a single part, even when empty.
func splitVersion(v string) []string {
	v = strings.TrimPrefix(v, "v")
	parts := strings.Split(v, ".")
	if len(parts) == 1 {
		return parts
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func versionPart(parts []string, i int) (int64, error) {
	if i >= len(parts) {
		return 0, nil
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, parts[i])
	return strconv.ParseInt(digits, 10, 32)
}
