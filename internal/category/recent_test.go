package category_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func names(cats []ledger.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Name
	}

	return out
}

func TestTouch(t *testing.T) {
	food := ledger.Category{Name: "Food"}
	rent := ledger.Category{Name: "Rent"}

	list := category.Touch(food, nil)
	list = category.Touch(rent, list)
	list = category.Touch(ledger.Category{Name: " food "}, list)
	list = category.Touch(ledger.Category{Name: " food "}, list)

	assert.Equal(t, []string{" food ", "Rent"}, names(list))
}

func TestTouch_DoesNotMutateInput(t *testing.T) {
	in := []ledger.Category{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	out := category.Touch(ledger.Category{Name: "C"}, in)

	assert.Equal(t, []string{"C", "A", "B"}, names(out))
	assert.Equal(t, []string{"A", "B", "C"}, names(in))
}

func TestTouch_Cap(t *testing.T) {
	var list []ledger.Category

	for i := range 11 {
		list = category.Touch(ledger.Category{Name: fmt.Sprintf("cat-%02d", i)}, list)
	}

	require.Len(t, list, category.RecentCap)
	assert.Equal(t, "cat-10", list[0].Name)
	assert.Equal(t, "cat-01", list[9].Name)

	for _, c := range list {
		assert.NotEqual(t, "cat-00", c.Name)
	}
}

func TestRecent_Order(t *testing.T) {
	all := []*ledger.Category{
		{ID: uuid.New(), Name: "Travel"},
		{ID: uuid.New(), Name: "bills"},
		{ID: uuid.New(), Name: "Food"},
		{ID: uuid.New(), Name: "Entertainment"},
	}

	var r category.Recent
	r.Touch(ledger.Category{Name: "Food"})
	r.Touch(ledger.Category{Name: "Deleted"})
	r.Touch(ledger.Category{Name: "TRAVEL"})

	got := r.Order(all)

	want := []string{"Travel", "Food", "bills", "Entertainment"}
	require.Len(t, got, len(want))

	for i, c := range got {
		assert.Equal(t, want[i], c.Name)
	}

	assert.Len(t, r.List(), 3)
}
