package dealer

// regions is the canonical aggregation domain: India's states and union
// territories as spelled in the dealer sheet. Kept unexported so it cannot be
// modified; callers get copies from Regions.
var regions = [...]string{
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chhattisgarh",
	"Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jammu and Kashmir",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
}

// Regions returns the canonical region list in display order.
func Regions() []string {
	out := make([]string, len(regions))
	copy(out, regions[:])
	return out
}

// RegionCount is the number of dealers in one region.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// Coverage is the per-region dealer count over a dealer subset.
type Coverage struct {
	Regions []RegionCount `json:"regions"`

	// Unmatched counts dealers whose state is not a canonical region name.
	// Such states never become keys of the coverage.
	Unmatched int `json:"unmatched"`
}

// Aggregate counts dealers per exact state value over the given region list.
// Every region appears once, in the order given, with zero when no dealer
// matches. Matching is exact: "kerala" does not count towards "Kerala".
func Aggregate(dealers []Dealer, regionList []string) Coverage {
	counts := make(map[string]int, len(dealers))
	for _, d := range dealers {
		counts[d.State]++
	}

	cov := Coverage{Regions: make([]RegionCount, 0, len(regionList))}
	matched := 0
	seen := make(map[string]bool, len(regionList))
	for _, name := range regionList {
		n := counts[name]
		cov.Regions = append(cov.Regions, RegionCount{Region: name, Count: n})
		if !seen[name] {
			seen[name] = true
			matched += n
		}
	}
	cov.Unmatched = len(dealers) - matched

	return cov
}

// AggregateCanonical is Aggregate over Regions().
func AggregateCanonical(dealers []Dealer) Coverage {
	return Aggregate(dealers, regions[:])
}

// Count returns the count for region, or zero if it is not part of the coverage.
func (c Coverage) Count(region string) int {
	for _, rc := range c.Regions {
		if rc.Region == region {
			return rc.Count
		}
	}
	return 0
}

// Map returns the coverage as a region → count map.
func (c Coverage) Map() map[string]int {
	m := make(map[string]int, len(c.Regions))
	for _, rc := range c.Regions {
		m[rc.Region] = rc.Count
	}
	return m
}

// Total returns the number of dealers counted towards a region.
func (c Coverage) Total() int {
	total := 0
	for _, rc := range c.Regions {
		total += rc.Count
	}
	return total
}

// Active returns the regions with at least one dealer.
func (c Coverage) Active() []RegionCount {
	var out []RegionCount
	for _, rc := range c.Regions {
		if rc.Count > 0 {
			out = append(out, rc)
		}
	}
	return out
}

// Potential returns the regions without any dealer.
func (c Coverage) Potential() []string {
	var out []string
	for _, rc := range c.Regions {
		if rc.Count == 0 {
			out = append(out, rc.Region)
		}
	}
	return out
}
