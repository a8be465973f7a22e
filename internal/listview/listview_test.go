package listview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-admin/internal/domain"
)

var meds = []domain.Medicine{
	{ID: 1, Name: "Paracetamol 500mg", Price: 2000, Stock: 120, Unit: domain.Unit{Name: "Viên"}},
	{ID: 2, Name: "Amoxicillin 250mg", Price: 3500, Stock: 40, Unit: domain.Unit{Name: "Viên"}},
	{ID: 3, Name: "Siro ho Prospan", Price: 65000, Stock: 12, Unit: domain.Unit{Name: "Chai"}},
	{ID: 4, Name: "Vitamin C", Price: 1500, Stock: 0, Unit: domain.Unit{Name: "Viên"}},
}

func medName(m domain.Medicine) string { return m.Name }

func TestApply_ZeroOptionsIsIdentity(t *testing.T) {
	got := Apply(meds, Options[domain.Medicine]{})
	require.Equal(t, meds, got)
	// Fresh slice, not an alias.
	got[0].Name = "mutated"
	require.Equal(t, "Paracetamol 500mg", meds[0].Name)
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	got := Apply(meds, Options[domain.Medicine]{
		Search:   "  PARA ",
		SearchIn: []func(domain.Medicine) string{medName},
	})
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
}

func TestApply_FiltersAreANDed(t *testing.T) {
	got := Apply(meds, Options[domain.Medicine]{
		Filters: []func(domain.Medicine) bool{
			func(m domain.Medicine) bool { return m.Unit.Name == "Viên" },
			func(m domain.Medicine) bool { return m.Stock > 0 },
		},
	})
	require.Len(t, got, 2)
	for _, m := range got {
		require.Equal(t, "Viên", m.Unit.Name)
		require.Greater(t, m.Stock, 0)
	}
}

func TestApply_WithoutLessIsSubsequence(t *testing.T) {
	got := Apply(meds, Options[domain.Medicine]{
		Filters: []func(domain.Medicine) bool{func(m domain.Medicine) bool { return m.Price < 10000 }},
	})
	// Relative order of survivors matches the source.
	idx := -1
	for _, g := range got {
		found := -1
		for i, m := range meds {
			if m.ID == g.ID {
				found = i
			}
		}
		require.Greater(t, found, idx, "order broken at id %d", g.ID)
		idx = found
	}
}

func TestApply_SortIsStable(t *testing.T) {
	byUnit := Options[domain.Medicine]{
		Less: func(a, b domain.Medicine) bool { return a.Unit.Name < b.Unit.Name },
	}
	got := Apply(meds, byUnit)
	// "Chai" first, then the three "Viên" rows in fetch order.
	require.Equal(t, []int64{3, 1, 2, 4}, []int64{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
}

func TestApply_SearchThenSort(t *testing.T) {
	got := Apply(meds, Options[domain.Medicine]{
		Search:   "i",
		SearchIn: []func(domain.Medicine) string{medName},
		Less:     func(a, b domain.Medicine) bool { return a.Price < b.Price },
	})
	require.Len(t, got, 3)
	require.True(t, got[0].Price <= got[1].Price && got[1].Price <= got[2].Price)
}
