package dealer

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ErrNotFound is returned by Repository.Get when no dealer has the requested id.
var ErrNotFound = errors.New("dealer not found")

// Repository holds the admitted dealers of one load.
// It has no mutating methods; a reload builds a new Repository.
type Repository struct {
	dealers    []Dealer
	byID       map[string]int
	duplicates []string
}

// NewRepository builds a repository over dealers, keeping their order.
// The slice is copied, so later changes by the caller are not observed.
//
// Identifiers are not required to be unique. When two dealers share an id,
// Lookup resolves to the first one and the id is listed by Duplicates.
func NewRepository(dealers []Dealer) *Repository {
	r := &Repository{
		dealers: make([]Dealer, len(dealers)),
		byID:    make(map[string]int, len(dealers)),
	}
	copy(r.dealers, dealers)

	seen := sets.NewString()
	dup := sets.NewString()
	for i, d := range r.dealers {
		key := NormalizeID(d.ID)
		if seen.Has(key) {
			dup.Insert(key)
			continue
		}
		seen.Insert(key)
		r.byID[key] = i
	}
	r.duplicates = dup.List()

	return r
}

// Empty returns a repository with no dealers.
func Empty() *Repository {
	return NewRepository(nil)
}

// All returns every admitted dealer in ingestion order.
func (r *Repository) All() []Dealer {
	out := make([]Dealer, len(r.dealers))
	copy(out, r.dealers)
	return out
}

// Len returns the number of admitted dealers.
func (r *Repository) Len() int {
	return len(r.dealers)
}

// Lookup returns the dealer whose id equals id once both are normalized
// to their string form. So Lookup(7) and Lookup("7") find the same dealer.
func (r *Repository) Lookup(id any) (Dealer, bool) {
	i, ok := r.byID[NormalizeID(id)]
	if !ok {
		return Dealer{}, false
	}
	return r.dealers[i], true
}

// Get is Lookup with an error instead of a boolean.
func (r *Repository) Get(id any) (Dealer, error) {
	d, ok := r.Lookup(id)
	if !ok {
		return Dealer{}, fmt.Errorf("%w: id %q", ErrNotFound, NormalizeID(id))
	}
	return d, nil
}

// Duplicates returns the ids held by more than one dealer, sorted.
func (r *Repository) Duplicates() []string {
	out := make([]string, len(r.duplicates))
	copy(out, r.duplicates)
	return out
}

// NormalizeID converts an identifier to the string form used for
// comparisons. Numbers are rendered in base 10; floats with an integral
// value drop their fraction so that 7.0 and "7" compare equal.
func NormalizeID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
