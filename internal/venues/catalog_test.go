package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 6)
	assert.Equal(t, "UTD Soccer Field 1", all[0].Name)
	assert.Equal(t, "UTD Tennis Courts", all[5].Name)
	assert.InDelta(t, 32.9828, all[5].Latitude, 1e-9)
}

func TestSearch(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	got := c.Search("tennis")
	require.Len(t, got, 1)
	assert.Equal(t, "UTD Tennis Courts", got[0].Name)

	assert.Len(t, c.Search("soccer field"), 5)
	assert.Empty(t, c.Search(""))
}

func TestGet(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	v, err := c.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "UTD Soccer Field 3", v.Name)

	_, err = c.Get(99)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte(`
venues:
  - {id: 1, name: A}
  - {id: 1, name: B}
`))
	assert.Error(t, err)
}

func TestNearbyOrdersByDistance(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	// standing on the tennis courts
	got := c.Nearby(32.9828, -96.7502, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "UTD Tennis Courts", got[0].Name)
	assert.InDelta(t, 0, got[0].DistanceMeters, 0.01)
	assert.Equal(t, "UTD Soccer Field 1", got[1].Name)
	assert.Less(t, got[0].DistanceMeters, got[1].DistanceMeters)
}

func TestDistance(t *testing.T) {
	// one thousandth of a degree of latitude is about 111 m
	d := Distance(32.9820, -96.7518, 32.9830, -96.7518)
	assert.InDelta(t, 111.2, d, 0.5)
}

func TestRegionFor(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	v, err := c.Get(6)
	require.NoError(t, err)

	r := RegionFor(v)

	assert.Equal(t, v.Latitude, r.Latitude)
	assert.Equal(t, RegionDelta, r.LatitudeDelta)
	assert.Equal(t, RegionDelta, r.LongitudeDelta)
}
