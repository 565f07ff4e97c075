package partcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgentGrom/autoshop/apperrors"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"brake", "disc"}, Tokenize("  brake  disc "))
	assert.Equal(t, []string{"мм"}, Tokenize("мм a b c"), "short tokens drop, two-rune cyrillic stays")
	assert.Nil(t, Tokenize("a 1"))
	assert.Nil(t, Tokenize(""))
}

func TestParseSpecsFilter(t *testing.T) {
	filter, err := ParseSpecsFilter(`{"Type":"vented","Material":["steel","carbon"],"Diameter":{"min":290,"max":310}}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"vented"}, filter["Type"].Values)
	assert.Equal(t, []string{"steel", "carbon"}, filter["Material"].Values)
	require.NotNil(t, filter["Diameter"].Min)
	require.NotNil(t, filter["Diameter"].Max)
	assert.Equal(t, 290.0, *filter["Diameter"].Min)
	assert.Equal(t, 310.0, *filter["Diameter"].Max)

	halfOpen, err := ParseSpecsFilter(`{"Diameter":{"min":290}}`)
	require.NoError(t, err)
	assert.Nil(t, halfOpen["Diameter"].Max)

	empty, err := ParseSpecsFilter("")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestParseSpecsFilterMalformed(t *testing.T) {
	for _, raw := range []string{
		`{"Type":`,
		`{"Type":[]}`,
		`{"Diameter":{"min":310,"max":290}}`,
		`{"Diameter":{}}`,
		`{"Diameter":42}`,
	} {
		_, err := ParseSpecsFilter(raw)
		require.Error(t, err, "input %s", raw)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err), "input %s", raw)
	}
}

func TestSearchPartsCategoryScopeIncludesDescendants(t *testing.T) {
	db := newTestDB(t)
	root := seedLeafCategory(t, db, "Brakes", nil)
	discs := seedLeafCategory(t, db, "Brake discs", &root.ID)
	pads := seedLeafCategory(t, db, "Brake pads", &root.ID)
	other := seedLeafCategory(t, db, "Filters", nil)

	seedPartWithSpecs(t, db, discs.ID, "front disc")
	seedPartWithSpecs(t, db, pads.ID, "front pads")
	seedPartWithSpecs(t, db, other.ID, "oil filter")

	parts, hasMore, err := SearchParts(db, SearchParams{CategoryID: &root.ID})
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, parts, 2)
	for _, p := range parts {
		assert.NotEqual(t, "oil filter", p.Name)
	}
}

func TestSearchPartsTextQuery(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)
	byName := seedPartWithSpecs(t, db, leaf.ID, "front brake disc")
	byMaker := seedPartWithSpecs(t, db, leaf.ID, "rotor")
	require.NoError(t, db.Model(&byMaker).Update("manufacturer", "Bosch").Error)
	bySpec := seedPartWithSpecs(t, db, leaf.ID, "sport rotor",
		specSeed{name: "Type", value: "vented"})
	seedPartWithSpecs(t, db, leaf.ID, "oil filter")

	parts, _, err := SearchParts(db, SearchParams{Query: "BOSCH"})
	require.NoError(t, err)
	require.Len(t, parts, 1, "manufacturer matching ignores case")
	assert.Equal(t, byMaker.ID, parts[0].ID)

	parts, _, err = SearchParts(db, SearchParams{Query: "vented"})
	require.NoError(t, err)
	require.Len(t, parts, 1, "specification values are searchable")
	assert.Equal(t, bySpec.ID, parts[0].ID)

	parts, _, err = SearchParts(db, SearchParams{Query: "disc bosch"})
	require.NoError(t, err)
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []uint{byName.ID, byMaker.ID}, ids, "tokens widen the match")
}

func TestSearchPartsOptionsFilter(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)
	seedPartWithSpecs(t, db, leaf.ID, "vented disc",
		specSeed{name: "Type", value: "vented"})
	seedPartWithSpecs(t, db, leaf.ID, "solid disc",
		specSeed{name: "Type", value: "solid"})

	parts, _, err := SearchParts(db, SearchParams{
		CategoryID: &leaf.ID,
		Specs:      SpecsFilter{"Type": {Values: []string{"vented"}}},
	})
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "vented disc", parts[0].Name)
}

func TestSearchPartsRangeFilter(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)
	seedPartWithSpecs(t, db, leaf.ID, "small disc",
		specSeed{name: "Diameter", value: "280 мм", unit: "мм"})
	inBand := seedPartWithSpecs(t, db, leaf.ID, "medium disc",
		specSeed{name: "Diameter", value: "300 мм", unit: "мм"})
	seedPartWithSpecs(t, db, leaf.ID, "big disc",
		specSeed{name: "Diameter", value: "330 мм", unit: "мм"})
	seedPartWithSpecs(t, db, leaf.ID, "odd disc",
		specSeed{name: "Diameter", value: "n/a"})

	min, max := 290.0, 310.0
	parts, _, err := SearchParts(db, SearchParams{
		CategoryID: &leaf.ID,
		Specs:      SpecsFilter{"Diameter": {Min: &min, Max: &max}},
	})
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, inBand.ID, parts[0].ID)
}

func TestSearchPartsRangeFilterNoMatches(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)
	seedPartWithSpecs(t, db, leaf.ID, "small disc",
		specSeed{name: "Diameter", value: "280 мм", unit: "мм"})

	min := 900.0
	parts, hasMore, err := SearchParts(db, SearchParams{
		Specs: SpecsFilter{"Diameter": {Min: &min}},
	})
	require.NoError(t, err)
	assert.Empty(t, parts)
	assert.False(t, hasMore)
}

func TestSearchPartsCombinedFiltersIntersect(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)
	match := seedPartWithSpecs(t, db, leaf.ID, "vented 300",
		specSeed{name: "Type", value: "vented"},
		specSeed{name: "Diameter", value: "300", unit: "мм"})
	seedPartWithSpecs(t, db, leaf.ID, "vented 280",
		specSeed{name: "Type", value: "vented"},
		specSeed{name: "Diameter", value: "280", unit: "мм"})
	seedPartWithSpecs(t, db, leaf.ID, "solid 300",
		specSeed{name: "Type", value: "solid"},
		specSeed{name: "Diameter", value: "300", unit: "мм"})

	min := 290.0
	parts, _, err := SearchParts(db, SearchParams{
		Specs: SpecsFilter{
			"Type":     {Values: []string{"vented"}},
			"Diameter": {Min: &min},
		},
	})
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, match.ID, parts[0].ID)
}

func TestSearchPartsPagination(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Bulbs", nil)
	for i := 0; i < 5; i++ {
		seedPartWithSpecs(t, db, leaf.ID, "bulb")
	}

	page1, hasMore, err := SearchParts(db, SearchParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.True(t, hasMore)

	page3, hasMore, err := SearchParts(db, SearchParams{Offset: 4, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.False(t, hasMore)

	beyond, hasMore, err := SearchParts(db, SearchParams{Offset: 50, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.False(t, hasMore)
}

func TestSearchPartsLimitClamping(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Bulbs", nil)
	for i := 0; i < DefaultLimit+1; i++ {
		seedPartWithSpecs(t, db, leaf.ID, "bulb")
	}

	parts, hasMore, err := SearchParts(db, SearchParams{})
	require.NoError(t, err)
	assert.Len(t, parts, DefaultLimit)
	assert.True(t, hasMore)

	parts, _, err = SearchParts(db, SearchParams{Limit: 10000})
	require.NoError(t, err)
	assert.Len(t, parts, DefaultLimit+1, "oversized limit clamps to the cap, not to zero")
}
