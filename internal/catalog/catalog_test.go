package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestLoadEmbeddedMenu(t *testing.T) {
	c := mustLoad(t)

	assert.Len(t, c.ListAll(), 18)
	assert.Len(t, c.Categories(), 9)
}

func TestGetByID(t *testing.T) {
	c := mustLoad(t)

	item, ok := c.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, "Margherita Pizza", item.Name)
	assert.Equal(t, "12.99", item.Price.StringFixed(2))
	assert.True(t, item.IsVeg)

	_, ok = c.GetByID(9999)
	assert.False(t, ok)
}

func TestListByCategory(t *testing.T) {
	c := mustLoad(t)

	pizzas := c.ListByCategory("pizza")
	require.Len(t, pizzas, 3)
	for _, p := range pizzas {
		assert.Equal(t, "pizza", p.Category)
	}

	// "all" and the empty category return the full menu.
	assert.Len(t, c.ListByCategory("all"), 18)
	assert.Len(t, c.ListByCategory(""), 18)
	assert.Empty(t, c.ListByCategory("sushi"))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	c := mustLoad(t)

	byName := c.Search("MARGHERITA")
	require.Len(t, byName, 1)
	assert.Equal(t, 1, byName[0].ID)

	// Matches descriptions too.
	byDescription := c.Search("freshly squeezed")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Fresh Orange Juice", byDescription[0].Name)

	// And categories.
	byCategory := c.Search("burgers")
	assert.Len(t, byCategory, 3)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	c := mustLoad(t)

	assert.Len(t, c.Search(""), 18)
	assert.Len(t, c.Search("   "), 18)
}

func TestSearchPreservesCatalogOrder(t *testing.T) {
	c := mustLoad(t)

	results := c.Search("pizza")
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i-1].ID, results[i].ID)
	}
}

func TestPopularCapsAtSixHighRatedItems(t *testing.T) {
	c := mustLoad(t)

	popular := c.Popular()
	require.Len(t, popular, 6)
	for _, p := range popular {
		assert.GreaterOrEqual(t, p.Rating, 4.5)
	}
}

func TestLookupsReturnDetachedCopies(t *testing.T) {
	c := mustLoad(t)

	item, ok := c.GetByID(1)
	require.True(t, ok)
	item.Ingredients[0] = "Pineapple"
	item.Name = "Mutated"

	fresh, _ := c.GetByID(1)
	assert.Equal(t, "Margherita Pizza", fresh.Name)
	assert.Equal(t, "Tomatoes", fresh.Ingredients[0])
}

func TestLoadRejectsBadMenu(t *testing.T) {
	_, err := load([]byte("items:\n  - id: 1\n    price: \"not-a-number\"\n"))
	assert.Error(t, err)

	_, err = load([]byte("items:\n  - id: 1\n    price: \"1.00\"\n  - id: 1\n    price: \"2.00\"\n"))
	assert.Error(t, err)

	_, err = load([]byte("items:\n  - id: 1\n    price: \"-1.00\"\n"))
	assert.Error(t, err)
}
