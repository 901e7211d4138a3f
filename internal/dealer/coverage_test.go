package dealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegions(t *testing.T) {
	got := Regions()
	require.Len(t, got, 30)
	assert.Equal(t, "Andhra Pradesh", got[0])
	assert.Equal(t, "West Bengal", got[29])
	assert.Contains(t, got, "Jammu and Kashmir")
	assert.Contains(t, got, "Delhi")

	got[0] = "Atlantis"
	assert.Equal(t, "Andhra Pradesh", Regions()[0], "Regions must return a copy")
}

func TestAggregate(t *testing.T) {
	dealers := []Dealer{
		{ID: "1", State: "Kerala"},
		{ID: "2", State: "Kerala"},
		{ID: "3", State: "Goa"},
		{ID: "4", State: "kerala"},
		{ID: "5", State: "Dubai"},
	}

	cov := AggregateCanonical(dealers)

	require.Len(t, cov.Regions, 30)
	assert.Equal(t, 2, cov.Count("Kerala"))
	assert.Equal(t, 1, cov.Count("Goa"))
	assert.Equal(t, 0, cov.Count("Assam"))
	assert.Equal(t, 0, cov.Count("Dubai"))
	assert.Equal(t, 2, cov.Unmatched)
	assert.Equal(t, 3, cov.Total())

	m := cov.Map()
	assert.Len(t, m, 30)
	_, ok := m["Dubai"]
	assert.False(t, ok, "unknown states must not become keys")
	_, ok = m["kerala"]
	assert.False(t, ok)
}

func TestAggregate_KeepsRegionOrder(t *testing.T) {
	regionList := []string{"Goa", "Assam", "Kerala"}
	cov := Aggregate([]Dealer{{State: "Kerala"}}, regionList)

	assert.Equal(t, []RegionCount{
		{Region: "Goa", Count: 0},
		{Region: "Assam", Count: 0},
		{Region: "Kerala", Count: 1},
	}, cov.Regions)
}

func TestAggregate_Empty(t *testing.T) {
	cov := AggregateCanonical(nil)
	require.Len(t, cov.Regions, 30)
	assert.Equal(t, 0, cov.Total())
	assert.Equal(t, 0, cov.Unmatched)
	assert.Empty(t, cov.Active())
	assert.Len(t, cov.Potential(), 30)
}

func TestAggregate_SumMatchesCanonicalDealers(t *testing.T) {
	dealers := sampleDealers()
	dealers = append(dealers, Dealer{State: "Nowhere"}, Dealer{State: ""})

	cov := AggregateCanonical(dealers)

	canonical := map[string]bool{}
	for _, r := range Regions() {
		canonical[r] = true
	}
	want := 0
	for _, d := range dealers {
		if canonical[d.State] {
			want++
		}
	}
	assert.Equal(t, want, cov.Total())
	assert.Equal(t, len(dealers)-want, cov.Unmatched)
}

func TestCoverage_ActiveAndPotential(t *testing.T) {
	cov := Aggregate([]Dealer{{State: "Goa"}, {State: "Goa"}}, []string{"Assam", "Goa", "Bihar"})

	assert.Equal(t, []RegionCount{{Region: "Goa", Count: 2}}, cov.Active())
	assert.Equal(t, []string{"Assam", "Bihar"}, cov.Potential())
}

func TestAggregate_AfterCategoryFilter(t *testing.T) {
	cov := AggregateCanonical(FilterCategory(sampleDealers(), CategoryAI))

	assert.Equal(t, 1, cov.Count("Kerala"))
	assert.Equal(t, 1, cov.Count("Goa"))
	assert.Equal(t, 0, cov.Count("Maharashtra"))
	assert.Equal(t, 2, cov.Total())
}
