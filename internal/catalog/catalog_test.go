package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	for _, raw := range []string{"EACH", "each", " Each "} {
		unit, err := ParseUnit(raw)
		require.NoError(t, err)
		require.Equal(t, UnitEach, unit)
	}

	unit, err := ParseUnit("kilo")
	require.NoError(t, err)
	require.Equal(t, UnitKilo, unit)

	_, err = ParseUnit("LITRE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "LITRE")
}

func TestStoreUnitPrice(t *testing.T) {
	store := NewStore()
	rice := Product{Name: "rice", Unit: UnitEach}
	store.AddProduct(rice, 2.49)

	price, err := store.UnitPrice(rice)
	require.NoError(t, err)
	require.Equal(t, 2.49, price)

	// same name, different unit, different product
	_, err = store.UnitPrice(Product{Name: "rice", Unit: UnitKilo})
	require.ErrorIs(t, err, ErrProductNotFound)
	require.Contains(t, err.Error(), "rice")
}

func TestStoreReplacesPrice(t *testing.T) {
	store := NewStore()
	apples := Product{Name: "apples", Unit: UnitKilo}
	store.AddProduct(apples, 1.99)
	store.AddProduct(apples, 1.49)

	price, err := store.UnitPrice(apples)
	require.NoError(t, err)
	require.Equal(t, 1.49, price)
	require.Equal(t, 1, store.Len())
}

func TestStoreEntriesSorted(t *testing.T) {
	store := NewStore()
	store.AddProduct(Product{Name: "toothpaste", Unit: UnitEach}, 1.79)
	store.AddProduct(Product{Name: "apples", Unit: UnitKilo}, 1.99)
	store.AddProduct(Product{Name: "apples", Unit: UnitEach}, 0.5)

	entries := store.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, Product{Name: "apples", Unit: UnitEach}, entries[0].Product)
	require.Equal(t, Product{Name: "apples", Unit: UnitKilo}, entries[1].Product)
	require.Equal(t, "toothpaste", entries[2].Product.Name)
}
