package dealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDealers() []Dealer {
	return []Dealer{
		{ID: "1", Name: "Zenith Auto", City: "Kochi", State: "Kerala", Contact: "0484-111", AIDealer: true},
		{ID: "2", Name: "Bharat Wheels", City: "Pune", State: "Maharashtra", Contact: "020-222", APIDealer: true},
		{ID: "3", Name: "Coastal Cars", City: "Panaji", State: "Goa", Contact: "0832-333", AIDealer: true, APIDealer: true},
		{ID: "4", Name: "apex motors", City: "Mumbai", State: "Maharashtra", Contact: "022-444"},
		{ID: "5", Name: "Delta Drives", City: "Chennai", State: "Tamil Nadu", Contact: "044-555"},
	}
}

func ids(dealers []Dealer) []string {
	out := make([]string, len(dealers))
	for i, d := range dealers {
		out[i] = d.ID
	}
	return out
}

func TestQuery_SearchIsCaseInsensitive(t *testing.T) {
	for _, term := range []string{"kochi", "KOCHI", "KoChI", "och"} {
		t.Run(term, func(t *testing.T) {
			got := Query(sampleDealers(), Params{Search: term, Category: CategoryAll, Sort: SortByName, Direction: Ascending})
			assert.Equal(t, []string{"1"}, ids(got))
		})
	}
}

func TestQuery_SearchFields(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by name", "wheels", []string{"2"}},
		{"by city", "panaji", []string{"3"}},
		{"by state", "maharashtra", []string{"2", "4"}},
		{"by contact", "044", []string{"5"}},
		{"no match", "delhi", []string{}},
		{"address is not searched", "MG Road", []string{}},
	}

	dealers := sampleDealers()
	dealers[0].Address = "MG Road"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(dealers, Params{Search: tt.search, Sort: SortByState})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestQuery_Category(t *testing.T) {
	tests := []struct {
		cat  Category
		want []string
	}{
		{CategoryAll, []string{"3", "1", "2", "4", "5"}},
		{CategoryAI, []string{"3", "1"}},
		{CategoryAPI, []string{"3", "2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			got := Query(sampleDealers(), Params{Category: tt.cat, Sort: SortByState, Direction: Ascending})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestQuery_SearchAndCategoryCompose(t *testing.T) {
	got := Query(sampleDealers(), Params{Search: "a", Category: CategoryAPI, Sort: SortByName})
	assert.Equal(t, []string{"2", "3"}, ids(got))

	got = Query(sampleDealers(), Params{Search: "pune", Category: CategoryAI})
	assert.Empty(t, got)
}

func TestQuery_Sort(t *testing.T) {
	tests := []struct {
		key  SortKey
		dir  Direction
		want []string
	}{
		{SortByName, Ascending, []string{"2", "3", "5", "1", "4"}},
		{SortByName, Descending, []string{"4", "1", "5", "3", "2"}},
		{SortByCity, Ascending, []string{"5", "1", "4", "3", "2"}},
		{SortByCity, Descending, []string{"2", "3", "4", "1", "5"}},
		{SortByState, Ascending, []string{"3", "1", "2", "4", "5"}},
		{SortByState, Descending, []string{"5", "2", "4", "1", "3"}},
	}

	for _, tt := range tests {
		t.Run(SortToken(tt.key, tt.dir), func(t *testing.T) {
			got := Query(sampleDealers(), Params{Category: CategoryAll, Sort: tt.key, Direction: tt.dir})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestQuery_EmptySearchIsPermutation(t *testing.T) {
	in := sampleDealers()
	for _, key := range []SortKey{SortByState, SortByCity, SortByName} {
		for _, dir := range []Direction{Ascending, Descending} {
			got := Query(in, Params{Category: CategoryAll, Sort: key, Direction: dir})
			assert.ElementsMatch(t, in, got)
		}
	}
}

func TestQuery_SortIsIdempotent(t *testing.T) {
	for _, key := range []SortKey{SortByState, SortByCity, SortByName} {
		for _, dir := range []Direction{Ascending, Descending} {
			once := Query(sampleDealers(), Params{Sort: key, Direction: dir})
			twice := Query(once, Params{Sort: key, Direction: dir})
			assert.Equal(t, once, twice)
		}
	}
}

func TestQuery_DoesNotModifyInput(t *testing.T) {
	in := sampleDealers()
	_ = Query(in, Params{Sort: SortByName, Direction: Descending})
	assert.Equal(t, sampleDealers(), in)
}

func TestQuery_TiesKeepInputOrder(t *testing.T) {
	in := []Dealer{
		{ID: "a", State: "Goa"},
		{ID: "b", State: "Assam"},
		{ID: "c", State: "Goa"},
		{ID: "d", State: "Goa"},
	}
	got := Query(in, Params{Sort: SortByState, Direction: Ascending})
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(got))

	got = Query(in, Params{Sort: SortByState, Direction: Descending})
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(got))
}

func TestQuery_ByteOrderNotLocale(t *testing.T) {
	in := []Dealer{
		{ID: "lower", Name: "alpha"},
		{ID: "upper", Name: "Beta"},
	}
	got := Query(in, Params{Sort: SortByName, Direction: Ascending})
	assert.Equal(t, []string{"upper", "lower"}, ids(got))
}

func TestFilterCategory(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(FilterCategory(sampleDealers(), CategoryAI)))
	assert.Equal(t, []string{"2", "3"}, ids(FilterCategory(sampleDealers(), CategoryAPI)))
	assert.Len(t, FilterCategory(sampleDealers(), CategoryAll), 5)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in      string
		key     SortKey
		dir     Direction
		wantErr bool
	}{
		{"", SortByState, Ascending, false},
		{"state-ascending", SortByState, Ascending, false},
		{"city-descending", SortByCity, Descending, false},
		{"name", SortByName, Ascending, false},
		{"name-desc", SortByName, Descending, false},
		{"NAME-ASC", SortByName, Ascending, false},
		{"zip-ascending", "", "", true},
		{"name-sideways", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, dir, err := ParseSort(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.dir, dir)
		})
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"": CategoryAll, "all": CategoryAll, "AI": CategoryAI, " api ": CategoryAPI} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("dealer")
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, CategoryAll, p.Category)
	assert.Equal(t, SortByState, p.Sort)
	assert.Equal(t, Ascending, p.Direction)
	assert.Equal(t, "state-ascending", SortToken(p.Sort, p.Direction))
}
