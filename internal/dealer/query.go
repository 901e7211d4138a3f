package dealer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidParam marks a query parameter that could not be parsed.
var ErrInvalidParam = errors.New("invalid query parameter")

// Category is the capability facet applied on top of text search.
type Category string

const (
	CategoryAll Category = "all"
	CategoryAI  Category = "ai"
	CategoryAPI Category = "api"
)

// SortKey names the field a result is ordered by.
type SortKey string

const (
	SortByState SortKey = "state"
	SortByCity  SortKey = "city"
	SortByName  SortKey = "name"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Params describes one query against a dealer set.
// The zero value matches everything, sorted by state ascending.
type Params struct {
	Search    string
	Category  Category
	Sort      SortKey
	Direction Direction
}

// DefaultParams returns the parameters of an untouched list view.
func DefaultParams() Params {
	return Params{
		Category:  CategoryAll,
		Sort:      SortByState,
		Direction: Ascending,
	}
}

// Query returns the dealers matching p.Search and p.Category, ordered by
// p.Sort in p.Direction. The input slice is left untouched.
//
// Search is a case-insensitive substring match against name, city, state and
// contact. Sorting compares raw string bytes, not locale collation, and is
// stable: dealers with equal keys keep their input order.
func Query(dealers []Dealer, p Params) []Dealer {
	needle := strings.ToLower(p.Search)

	out := make([]Dealer, 0, len(dealers))
	for _, d := range dealers {
		if !matchesSearch(d, needle) || !matchesCategory(d, p.Category) {
			continue
		}
		out = append(out, d)
	}

	SortDealers(out, p.Sort, p.Direction)
	return out
}

// FilterCategory returns the dealers admitted by cat, in input order.
func FilterCategory(dealers []Dealer, cat Category) []Dealer {
	out := make([]Dealer, 0, len(dealers))
	for _, d := range dealers {
		if matchesCategory(d, cat) {
			out = append(out, d)
		}
	}
	return out
}

// SortDealers stable-sorts dealers in place.
func SortDealers(dealers []Dealer, key SortKey, dir Direction) {
	field := sortField(key)
	desc := dir == Descending

	sort.SliceStable(dealers, func(i, j int) bool {
		a, b := field(dealers[i]), field(dealers[j])
		if desc {
			return a > b
		}
		return a < b
	})
}

func sortField(key SortKey) func(Dealer) string {
	switch key {
	case SortByCity:
		return func(d Dealer) string { return d.City }
	case SortByName:
		return func(d Dealer) string { return d.Name }
	default:
		return func(d Dealer) string { return d.State }
	}
}

func matchesSearch(d Dealer, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Name), needle) ||
		strings.Contains(strings.ToLower(d.City), needle) ||
		strings.Contains(strings.ToLower(d.State), needle) ||
		strings.Contains(strings.ToLower(d.Contact), needle)
}

func matchesCategory(d Dealer, cat Category) bool {
	switch cat {
	case CategoryAI:
		return d.AIDealer
	case CategoryAPI:
		return d.APIDealer
	default:
		return true
	}
}

// ParseCategory parses "all", "ai" or "api". An empty string means all.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryAI:
		return CategoryAI, nil
	case CategoryAPI:
		return CategoryAPI, nil
	}
	return "", fmt.Errorf("%w: category %q must be one of all, ai, api", ErrInvalidParam, s)
}

// ParseSortKey parses "state", "city" or "name". An empty string means state.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByState:
		return SortByState, nil
	case SortByCity:
		return SortByCity, nil
	case SortByName:
		return SortByName, nil
	}
	return "", fmt.Errorf("%w: sort key %q must be one of state, city, name", ErrInvalidParam, s)
}

// ParseDirection parses "ascending"/"asc" or "descending"/"desc".
// An empty string means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", string(Ascending):
		return Ascending, nil
	case "desc", string(Descending):
		return Descending, nil
	}
	return "", fmt.Errorf("%w: sort direction %q must be ascending or descending", ErrInvalidParam, s)
}

// ParseSort parses the combined "key-direction" token, e.g. "city-descending".
// A bare key sorts ascending.
func ParseSort(s string) (SortKey, Direction, error) {
	keyStr, dirStr, _ := strings.Cut(s, "-")
	key, err := ParseSortKey(keyStr)
	if err != nil {
		return "", "", err
	}
	dir, err := ParseDirection(dirStr)
	if err != nil {
		return "", "", err
	}
	return key, dir, nil
}

// SortToken is the inverse of ParseSort.
func SortToken(key SortKey, dir Direction) string {
	return string(key) + "-" + string(dir)
}
