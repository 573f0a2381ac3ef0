package view

import (
	"errors"
	"fmt"
	"strings"
)

// Filter выбирает категорию товаров по остатку
type Filter string

// SortKey задаёт порядок списка
type SortKey string

const (
	FilterAll Filter = "all"
	FilterLow Filter = "low" // qty <= lowAt
	FilterIn  Filter = "in"  // qty > lowAt
)

const (
	SortName  SortKey = "name"  // по имени, по возрастанию
	SortQty   SortKey = "qty"   // по количеству, по убыванию
	SortCost  SortKey = "cost"  // по цене, по убыванию
	SortValue SortKey = "value" // по qty*cost, по убыванию
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrUnknownSort   = errors.New("unknown sort key")
)

// ParseFilter parses a user-supplied filter name.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterLow, FilterIn:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (want all, low or in)", ErrUnknownFilter, s)
	}
}

// ParseSortKey parses a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortName, SortQty, SortCost, SortValue:
		return k, nil
	default:
		return "", fmt.Errorf("%w %q (want name, qty, cost or value)", ErrUnknownSort, s)
	}
}

// Options are the view preferences: text query, category filter and sort key.
type Options struct {
	Query  string
	Filter Filter
	Sort   SortKey
}

// DefaultOptions returns an empty query, all items, sorted by name.
func DefaultOptions() Options {
	return Options{Filter: FilterAll, Sort: SortName}
}

// OptionsFrom builds Options from persisted raw values.
// Unknown filter or sort values fall back to the defaults.
func OptionsFrom(query, filter, sort string) Options {
	opts := DefaultOptions()
	opts.Query = query
	if f, err := ParseFilter(filter); err == nil {
		opts.Filter = f
	}
	if k, err := ParseSortKey(sort); err == nil {
		opts.Sort = k
	}
	return opts
}
