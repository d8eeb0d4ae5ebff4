package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// AllCountriesSentinel is the user-facing value that lifts the country restriction.
const AllCountriesSentinel = "all"

// Bounds of the level and session rank range offered by the surface.
const (
	MinRangeBound = 1
	MaxRangeBound = 20
)

// DefaultRetentionCountries is the initial country selection for the retention section.
var DefaultRetentionCountries = []string{"IN", "US", "RU", "MX", "BR"}

// CountrySelection is either AllCountries or SpecificCountries.
// The zero value selects no country.
type CountrySelection struct {
	all   bool
	codes []string
}

// AllCountries selects every row regardless of country.
func AllCountries() CountrySelection {
	return CountrySelection{all: true}
}

// SpecificCountries selects rows whose country is one of codes.
// Codes are upper-cased, de-duplicated and sorted.
func SpecificCountries(codes ...string) CountrySelection {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	slices.Sort(out)
	return CountrySelection{codes: out}
}

// ParseCountrySelection resolves raw multi-select values into a selection.
// The "all" sentinel is dropped when explicit codes are present and only
// means "no restriction" when it is the single remaining value.
func ParseCountrySelection(values []string) CountrySelection {
	var codes []string
	sawAll := false
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			part = strings.TrimSpace(part)
			switch {
			case part == "":
			case strings.EqualFold(part, AllCountriesSentinel):
				sawAll = true
			default:
				codes = append(codes, part)
			}
		}
	}
	if len(codes) == 0 && sawAll {
		return AllCountries()
	}
	return SpecificCountries(codes...)
}

// IsAll reports whether the selection has no country restriction.
func (s CountrySelection) IsAll() bool {
	return s.all
}

// Codes returns a copy of the selected country codes.
func (s CountrySelection) Codes() []string {
	return slices.Clone(s.codes)
}

// Matches reports whether a row with the given country passes the selection.
// Rows without a country only pass AllCountries.
func (s CountrySelection) Matches(country string) bool {
	if s.all {
		return true
	}
	if country == "" {
		return false
	}
	_, found := slices.BinarySearch(s.codes, strings.ToUpper(country))
	return found
}

// String renders the selection the way a user would type it.
func (s CountrySelection) String() string {
	if s.all {
		return AllCountriesSentinel
	}
	return strings.Join(s.codes, ",")
}

// MarshalText encodes the selection for JSON output.
func (s CountrySelection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a selection written by MarshalText.
func (s *CountrySelection) UnmarshalText(text []byte) error {
	*s = ParseCountrySelection([]string{string(text)})
	return nil
}

// LevelRange is an inclusive range over level numbers or session ranks.
type LevelRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// NewLevelRange builds a range with each bound clamped to [MinRangeBound, MaxRangeBound].
// The bounds are not reordered: an inverted range stays inverted and matches nothing.
func NewLevelRange(lo, hi int) LevelRange {
	return LevelRange{Min: clampBound(lo), Max: clampBound(hi)}
}

// DefaultLevelRange is the initial range for every ranged section.
func DefaultLevelRange() LevelRange {
	return LevelRange{Min: 1, Max: 10}
}

// Contains reports whether v falls within the range, inclusive.
func (r LevelRange) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

func clampBound(v int) int {
	return min(max(v, MinRangeBound), MaxRangeBound)
}

// RatingDepth is how many guns per level the popularity report shows.
type RatingDepth int

// All rating depths offered by the surface.
const (
	Top1  RatingDepth = 1
	Top3  RatingDepth = 3 // default
	Top5  RatingDepth = 5
	Top10 RatingDepth = 10
)

// ValidRatingDepths lists all valid rating depths.
var ValidRatingDepths = map[RatingDepth]struct{}{
	Top1:  {},
	Top3:  {},
	Top5:  {},
	Top10: {},
}

// ParseRatingDepth accepts "Top-3", "top3" or "3".
func ParseRatingDepth(s string) (RatingDepth, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	trimmed = strings.TrimPrefix(trimmed, "top")
	trimmed = strings.TrimPrefix(trimmed, "-")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid rating depth '%s': expected Top-1, Top-3, Top-5 or Top-10", s)
	}
	depth := RatingDepth(n)
	if _, ok := ValidRatingDepths[depth]; !ok {
		return 0, fmt.Errorf("invalid rating depth '%s': expected Top-1, Top-3, Top-5 or Top-10", s)
	}
	return depth, nil
}

// K returns the number of entries to select.
func (d RatingDepth) K() int {
	return int(d)
}

// String renders the depth as shown in the selector.
func (d RatingDepth) String() string {
	return fmt.Sprintf("Top-%d", int(d))
}

// Selection is the immutable set of filter values for one report section.
type Selection struct {
	Countries CountrySelection `json:"countries"`
	Range     LevelRange       `json:"range"`
	Rating    RatingDepth      `json:"rating,omitempty"`
}

// DefaultSelection returns the initial selection of a report section.
func DefaultSelection(report ReportName) Selection {
	sel := Selection{
		Countries: AllCountries(),
		Range:     DefaultLevelRange(),
	}
	switch report {
	case RetentionReport:
		sel.Countries = SpecificCountries(DefaultRetentionCountries...)
	case GunPopularityReport:
		sel.Rating = Top3
	}
	return sel
}
