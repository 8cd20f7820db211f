package terreno

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Collection rules.
const (
	// MaxPrice is the price ceiling, in euros.
	MaxPrice = 120000

	// MinBuildableArea is the smallest accepted buildable area, in m².
	MinBuildableArea = 70

	// NonDevelopableLandType is the land classification that forbids building.
	NonDevelopableLandType = "Não urbanizável"

	// PrivateSeller is the professional-name text shown for private sellers.
	PrivateSeller = "Particular"

	// BuildableAreaLabel prefixes the buildable area feature line.
	BuildableAreaLabel = "Superfície edificável"
)

// referenceMarker precedes the listing reference in property URLs.
const referenceMarker = "imovel/"

// IsNonDevelopable reports whether the land type names the
// non-developable classification.
func IsNonDevelopable(landType string) bool {
	return strings.Contains(landType, NonDevelopableLandType)
}

// ParsePrice parses listing price text such as "95.000€/mês" into whole
// euros. Everything from the currency sign onward is dropped and thousands
// separators are removed before the integer parse.
func ParsePrice(text string) (int, error) {
	s, _, _ := strings.Cut(text, "€")
	s = strings.Map(func(r rune) rune {
		if r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, Errorf(EPARSE, "empty price in %q", text)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, Errorf(EPARSE, "invalid price %q", text)
	}
	return n, nil
}

// ParseArea parses an area such as "70 m²", "1.200 m²" or "70,5 m²".
// A label ending in ':' or the buildable area label may precede the value.
//
// A comma is the decimal separator and dots are thousands separators.
// Without a comma, a dot followed by exactly three digits is read as a
// thousands separator and any other dot as a decimal point.
func ParseArea(text string) (float64, error) {
	s := text
	if _, after, ok := strings.Cut(s, BuildableAreaLabel); ok {
		s = after
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	s = BeforeUnit(s, "m²")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, Errorf(EPARSE, "empty area in %q", text)
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if i := strings.LastIndex(s, "."); i >= 0 && len(s)-i-1 == 3 {
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Errorf(EPARSE, "invalid area %q", text)
	}
	return v, nil
}

// ParseReference extracts the listing reference from a property URL,
// the path segment following "imovel/".
func ParseReference(url string) (string, error) {
	_, rest, ok := strings.Cut(url, referenceMarker)
	if !ok {
		return "", Errorf(EPARSE, "no listing reference in %q", url)
	}
	ref, _, _ := strings.Cut(rest, "/")
	ref, _, _ = strings.Cut(ref, "?")
	if ref == "" {
		return "", Errorf(EPARSE, "empty listing reference in %q", url)
	}
	return ref, nil
}

// BeforeUnit returns the trimmed text preceding the first occurrence of unit.
func BeforeUnit(text, unit string) string {
	s, _, _ := strings.Cut(text, unit)
	return strings.TrimSpace(s)
}
