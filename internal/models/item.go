package models

import (
	"strings"
	"time"
)

// Item представляет одну складскую позицию, принадлежащую аккаунту.
// OwnerID и временные метки не сериализуются: клиент видит только
// {id, name, qty, unit, cost, lowAt}.
type Item struct {
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	ID        string    `json:"id"`    // UUID, назначается хранилищем
	OwnerID   string    `json:"-"`     // ID аккаунта-владельца
	Name      string    `json:"name"`  // название товара
	Unit      string    `json:"unit"`  // единица измерения (свободный текст)
	Cost      float64   `json:"cost"`  // себестоимость за единицу
	Qty       int       `json:"qty"`   // остаток
	LowAt     int       `json:"lowAt"` // порог "заканчивается"
}

// IsLow reports whether the item is at or below its alert threshold.
func (i Item) IsLow() bool {
	return i.Qty <= i.LowAt
}

// IsOut reports whether the item is out of stock.
func (i Item) IsOut() bool {
	return i.Qty == 0
}

// Value returns qty × cost.
func (i Item) Value() float64 {
	return float64(i.Qty) * i.Cost
}

// Normalize обрезает пробелы в текстовых полях и приводит
// числовые поля к неотрицательным значениям.
func (i *Item) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Unit = strings.TrimSpace(i.Unit)
	i.Qty = max(0, i.Qty)
	i.Cost = max(0, i.Cost)
	i.LowAt = max(0, i.LowAt)
}

// ItemFields is a partial set of item fields. A nil pointer means the field
// was not supplied. It is used both as the create body and as a patch.
type ItemFields struct {
	Name  *string  `json:"name,omitempty"`
	Qty   *int     `json:"qty,omitempty"`
	Unit  *string  `json:"unit,omitempty"`
	Cost  *float64 `json:"cost,omitempty"`
	LowAt *int     `json:"lowAt,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (f ItemFields) IsEmpty() bool {
	return f.Name == nil && f.Qty == nil && f.Unit == nil && f.Cost == nil && f.LowAt == nil
}

// Normalize applies the same trimming and clamping as Item.Normalize
// to the supplied fields only.
func (f *ItemFields) Normalize() {
	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		f.Name = &name
	}
	if f.Unit != nil {
		unit := strings.TrimSpace(*f.Unit)
		f.Unit = &unit
	}
	if f.Qty != nil {
		qty := max(0, *f.Qty)
		f.Qty = &qty
	}
	if f.Cost != nil {
		cost := max(0, *f.Cost)
		f.Cost = &cost
	}
	if f.LowAt != nil {
		lowAt := max(0, *f.LowAt)
		f.LowAt = &lowAt
	}
}

// Apply copies the supplied fields onto item.
func (f ItemFields) Apply(item *Item) {
	if f.Name != nil {
		item.Name = *f.Name
	}
	if f.Qty != nil {
		item.Qty = *f.Qty
	}
	if f.Unit != nil {
		item.Unit = *f.Unit
	}
	if f.Cost != nil {
		item.Cost = *f.Cost
	}
	if f.LowAt != nil {
		item.LowAt = *f.LowAt
	}
}

// FieldsOf returns a fully populated ItemFields for item.
func FieldsOf(item Item) ItemFields {
	return ItemFields{
		Name:  &item.Name,
		Qty:   &item.Qty,
		Unit:  &item.Unit,
		Cost:  &item.Cost,
		LowAt: &item.LowAt,
	}
}
