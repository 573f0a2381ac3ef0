// Package view derives what the inventory screen shows from the raw item list:
// text search, low-stock filter, sort order and the summary figures.
package view

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iudanet/stockkeeper/internal/models"
)

// View is the derived, read-only projection of an item list.
type View struct {
	// Items видимые товары в порядке сортировки
	Items []models.Item
	// TotalValue сумма qty*cost по всем товарам, без учёта фильтров
	TotalValue float64
	// LowCount число товаров с низким остатком, без учёта фильтров
	LowCount int
	// ItemCount общее число товаров
	ItemCount int
}

// VisibleCount returns the number of items passing the filters.
func (v View) VisibleCount() int {
	return len(v.Items)
}

// Derive filters, sorts and summarizes items. The input slice is not modified.
// Names are compared with coll; a nil collator uses the root locale.
func Derive(items []models.Item, opts Options, coll *collate.Collator) View {
	if coll == nil {
		coll = collate.New(language.Und)
	}

	v := View{ItemCount: len(items), Items: make([]models.Item, 0, len(items))}
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	for _, it := range items {
		v.TotalValue += it.Value()
		if it.IsLow() {
			v.LowCount++
		}

		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}
		if !matchFilter(it, opts.Filter) {
			continue
		}
		v.Items = append(v.Items, it)
	}

	slices.SortStableFunc(v.Items, compareBy(opts.Sort, coll))
	return v
}

func matchFilter(it models.Item, f Filter) bool {
	switch f {
	case FilterLow:
		return it.IsLow()
	case FilterIn:
		return !it.IsLow()
	default:
		return true
	}
}

func compareBy(key SortKey, coll *collate.Collator) func(a, b models.Item) int {
	switch key {
	case SortQty:
		return func(a, b models.Item) int { return cmp.Compare(b.Qty, a.Qty) }
	case SortCost:
		return func(a, b models.Item) int { return cmp.Compare(b.Cost, a.Cost) }
	case SortValue:
		return func(a, b models.Item) int { return cmp.Compare(b.Value(), a.Value()) }
	default:
		return func(a, b models.Item) int { return coll.CompareString(a.Name, b.Name) }
	}
}
