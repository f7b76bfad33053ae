package countries_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfontes/pousada-checkin/internal/countries"
)

func TestCode_KnownCountry(t *testing.T) {
	assert.Equal(t, "55", countries.Code("brasil"))
}

func TestCode_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "55", countries.Code("Brasil"))
	assert.Equal(t, "1", countries.Code("ESTADOS UNIDOS"))
}

func TestCode_Unknown(t *testing.T) {
	assert.Equal(t, "", countries.Code("atlantida"))
}

func TestCode_Empty(t *testing.T) {
	assert.Equal(t, "", countries.Code(""))
}

func TestAll_SortedAndComplete(t *testing.T) {
	all := countries.All()

	require.NotEmpty(t, all)
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool {
		return all[i].Pais < all[j].Pais
	}), "All() should be sorted by country name")

	// Every listed country must resolve through Code.
	for _, c := range all {
		assert.Equal(t, c.CodigoPais, countries.Code(c.Pais))
	}
}
