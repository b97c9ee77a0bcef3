package pom

import (
	"fmt"
	"strings"
	"unicode"
)

// Version is a Maven version split into comparable items. "1.0.0.Final"
// and "1" compare equal; qualifiers order alpha < beta < milestone < rc <
// snapshot < release < sp.
type Version struct {
	Raw   string
	items []versionItem
}

type versionItem struct {
	value     string
	numeric   bool
	separator byte
}

func ParseVersion(s string) *Version {
	s = strings.TrimSpace(s)
	return &Version{Raw: s, items: trimReleaseItems(splitVersion(s))}
}

func (v *Version) String() string {
	return v.Raw
}

func splitVersion(s string) []versionItem {
	var (
		items []versionItem
		cur   strings.Builder
		num   bool
		sep   byte
	)
	emit := func() {
		if cur.Len() > 0 {
			items = append(items, versionItem{value: cur.String(), numeric: num, separator: sep})
			cur.Reset()
			sep = 0
		}
	}
	for _, r := range s {
		switch {
		case r == '.' || r == '-' || r == '_':
			emit()
			sep = byte(r)
		case unicode.IsDigit(r):
			if cur.Len() > 0 && !num {
				emit()
			}
			num = true
			cur.WriteRune(r)
		default:
			if cur.Len() > 0 && num {
				emit()
			}
			num = false
			cur.WriteRune(r)
		}
	}
	emit()
	return items
}

func isReleaseItem(it versionItem) bool {
	if it.numeric {
		return strings.Trim(it.value, "0") == ""
	}
	switch strings.ToLower(it.value) {
	case "", "final", "ga", "release":
		return true
	}
	return false
}

func trimReleaseItems(items []versionItem) []versionItem {
	for len(items) > 0 && isReleaseItem(items[len(items)-1]) {
		items = items[:len(items)-1]
	}
	return items
}

const releaseRank = 6

func qualifierRank(q string) int {
	switch strings.ToLower(q) {
	case "alpha", "a":
		return 1
	case "beta", "b":
		return 2
	case "milestone", "m":
		return 3
	case "rc", "cr":
		return 4
	case "snapshot":
		return 5
	case "sp":
		return 7
	default:
		return releaseRank
	}
}

func separatorRank(b byte) int {
	switch b {
	case '-':
		return 1
	case '.':
		return 2
	default:
		return 0
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := compareInts(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareItem compares two items; nil stands for a missing trailing item.
func compareItem(a, b *versionItem) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -compareItem(b, nil)
	case b == nil:
		if a.numeric {
			if isReleaseItem(*a) {
				return 0
			}
			return 1
		}
		if qualifierRank(a.value) < releaseRank {
			return -1
		}
		return 1
	case a.numeric && b.numeric:
		if c := compareNumeric(a.value, b.value); c != 0 {
			return c
		}
	case a.numeric:
		return 1
	case b.numeric:
		return -1
	default:
		if c := compareInts(qualifierRank(a.value), qualifierRank(b.value)); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a.value), strings.ToLower(b.value)); c != 0 {
			return c
		}
	}
	return compareInts(separatorRank(a.separator), separatorRank(b.separator))
}

// Compare returns -1, 0 or 1 as v is older, equal to or newer than o.
func (v *Version) Compare(o *Version) int {
	n := max(len(v.items), len(o.items))
	for i := 0; i < n; i++ {
		var a, b *versionItem
		if i < len(v.items) {
			a = &v.items[i]
		}
		if i < len(o.items) {
			b = &o.items[i]
		}
		if c := compareItem(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// CompareVersions compares two version strings.
func CompareVersions(a, b string) int {
	return ParseVersion(a).Compare(ParseVersion(b))
}

// ParseCoordinate parses groupId:artifactId, groupId:artifactId:version or
// groupId:artifactId:classifier:version.
func ParseCoordinate(coord string) (Dependency, error) {
	parts := strings.Split(strings.TrimSpace(coord), ":")
	for _, p := range parts {
		if p == "" {
			return Dependency{}, fmt.Errorf("invalid Maven coordinate: %q has an empty part", coord)
		}
	}
	switch len(parts) {
	case 2:
		return Dependency{GroupID: parts[0], ArtifactID: parts[1]}, nil
	case 3:
		return Dependency{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}, nil
	case 4:
		return Dependency{GroupID: parts[0], ArtifactID: parts[1], Classifier: parts[2], Version: parts[3]}, nil
	default:
		return Dependency{}, fmt.Errorf("invalid Maven coordinate: %q (expected groupId:artifactId[:classifier]:version)", coord)
	}
}

// MergeDependencies appends extra to base. A dependency whose
// groupId:artifactId is already present replaces the earlier one only when
// it has a newer version, or when the earlier one has none. Positions of
// the first occurrence are kept.
func MergeDependencies(base, extra []Dependency) []Dependency {
	out := make([]Dependency, 0, len(base)+len(extra))
	index := make(map[string]int, len(base)+len(extra))
	add := func(d Dependency) {
		i, ok := index[d.Key()]
		if !ok {
			index[d.Key()] = len(out)
			out = append(out, d)
			return
		}
		cur := out[i]
		switch {
		case d.Version == "":
		case cur.Version == "" || CompareVersions(d.Version, cur.Version) > 0:
			out[i] = d
		}
	}
	for _, d := range base {
		add(d)
	}
	for _, d := range extra {
		add(d)
	}
	return out
}
