package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/skbags/storefront/internal/catalog"
	"github.com/skbags/storefront/pkg/types"
)

func bag(id string, price float64) catalog.Product {
	return catalog.Product{
		ID:    types.FlexID(id),
		Name:  "bag " + id,
		Price: decimal.NewFromFloat(price),
	}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	store := NewStore()
	store.Add(bag("1", 100))
	store.Add(bag("2", 50))
	store.Add(bag("1", 100))

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].Product.ID != "1" || items[0].Quantity != 2 {
		t.Fatalf("unexpected first line %+v", items[0])
	}
	if items[1].Product.ID != "2" || items[1].Quantity != 1 {
		t.Fatalf("unexpected second line %+v", items[1])
	}
	if store.Count() != 3 {
		t.Fatalf("expected count 3, got %d", store.Count())
	}
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore()
	store.Add(bag("1", 100))

	store.UpdateQuantity("1", 5)
	if items := store.Items(); items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}

	store.UpdateQuantity("missing", 3)
	if store.Count() != 5 {
		t.Fatalf("unknown id should be ignored, count %d", store.Count())
	}
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	store := NewStore()
	store.Add(bag("1", 100))
	store.Add(bag("2", 50))

	store.UpdateQuantity("1", 0)
	items := store.Items()
	if len(items) != 1 || items[0].Product.ID != "2" {
		t.Fatalf("expected only product 2 left, got %+v", items)
	}

	store.UpdateQuantity("2", -1)
	if len(store.Items()) != 0 {
		t.Fatal("negative quantity should remove the line")
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	store := NewStore()
	store.Add(bag("1", 100))

	store.Remove("missing")
	if len(store.Items()) != 1 {
		t.Fatal("removing an absent id should not change the cart")
	}

	store.Remove("1")
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart")
	}
}

func TestTotalAndDeposit(t *testing.T) {
	store := NewStore()
	if !store.Total().Equal(decimal.Zero) {
		t.Fatalf("empty cart should total zero, got %s", store.Total())
	}

	store.Add(bag("1", 299.99))
	store.Add(bag("1", 299.99))
	store.Add(bag("2", 100))

	want := decimal.NewFromFloat(699.98)
	if !store.Total().Equal(want) {
		t.Fatalf("expected total %s, got %s", want, store.Total())
	}
	if !store.Deposit().Equal(decimal.NewFromFloat(349.99)) {
		t.Fatalf("unexpected deposit %s", store.Deposit())
	}
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Add(bag("1", 100))
	store.Clear()

	if store.Count() != 0 || len(store.Items()) != 0 {
		t.Fatal("expected cleared cart")
	}
}

func TestItemsReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.Add(bag("1", 100))

	items := store.Items()
	items[0].Quantity = 99

	if store.Items()[0].Quantity != 1 {
		t.Fatal("mutating the snapshot must not touch the store")
	}
}
