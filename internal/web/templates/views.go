// Package templates holds the HTML views of the dealer locator. The views are
// written in .templ files; run `templ generate` after editing them.
package templates

import (
	"net/url"
	"strconv"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
)

// ListPage is the data of the dealer list.
type ListPage struct {
	Dealers  []dealer.Dealer
	Coverage dealer.Coverage
	Params   dealer.Params

	// Notice is shown above the list, e.g. when the last load failed.
	Notice string
}

var sortOptions = []struct {
	token string
	label string
}{
	{"state-ascending", "State (A-Z)"},
	{"state-descending", "State (Z-A)"},
	{"city-ascending", "City (A-Z)"},
	{"city-descending", "City (Z-A)"},
	{"name-ascending", "Name (A-Z)"},
	{"name-descending", "Name (Z-A)"},
}

var categoryOptions = []struct {
	cat   dealer.Category
	label string
}{
	{dealer.CategoryAll, "All"},
	{dealer.CategoryAI, "AI Only"},
	{dealer.CategoryAPI, "API Only"},
}

// DealerPath is the detail URL of a dealer id. Handlers unescape the path
// segment before lookup.
func DealerPath(id string) string {
	return "/dealer/" + url.PathEscape(id)
}

func sortToken(p dealer.Params) string {
	return dealer.SortToken(p.Sort, p.Direction)
}

// place joins city and state, dropping the comma when either is blank.
func place(d dealer.Dealer) string {
	switch {
	case d.City == "":
		return d.State
	case d.State == "":
		return d.City
	}
	return d.City + ", " + d.State
}

func activeLabel(n int) string {
	if n == 1 {
		return "1 Active Dealer"
	}
	return strconv.Itoa(n) + " Active Dealers"
}
