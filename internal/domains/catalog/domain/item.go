package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the item variants stored in the catalog.
type Kind string

const (
	KindBook  Kind = "BOOK"
	KindAlbum Kind = "ALBUM"
	KindMovie Kind = "MOVIE"
)

var (
	ErrEmptyName       = errors.New("item name is required")
	ErrInvalidPrice    = errors.New("item price must not be negative")
	ErrInvalidKind     = errors.New("item kind must be BOOK, ALBUM or MOVIE")
	ErrInvalidQuantity = errors.New("stock quantity must be greater than zero")
	ErrNotEnoughStock  = errors.New("not enough stock")
)

// Attributes holds the kind-specific descriptive fields. They carry no behaviour.
type Attributes struct {
	Author   string
	ISBN     string
	Artist   string
	Etc      string
	Director string
	Actor    string
}

// Item is a sellable catalog entry with a stock counter.
type Item struct {
	ID            int64
	Kind          Kind
	Name          string
	Price         int
	StockQuantity int
	Attributes    Attributes
}

// NewItem validates and constructs a catalog item.
func NewItem(kind Kind, name string, price, stock int, attrs Attributes) (*Item, error) {
	item := &Item{
		Kind:          Kind(strings.ToUpper(strings.TrimSpace(string(kind)))),
		Name:          strings.TrimSpace(name),
		Price:         price,
		StockQuantity: stock,
		Attributes:    attrs,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate enforces invariants on the aggregate.
func (i *Item) Validate() error {
	switch i.Kind {
	case KindBook, KindAlbum, KindMovie:
	default:
		return ErrInvalidKind
	}
	if i.Name == "" {
		return ErrEmptyName
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	if i.StockQuantity < 0 {
		return ErrNotEnoughStock
	}
	return nil
}

// AddStock increases the stock by quantity.
func (i *Item) AddStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.StockQuantity += quantity
	return nil
}

// RemoveStock decreases the stock, refusing to go below zero.
func (i *Item) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return fmt.Errorf("%w: item %d has %d, requested %d", ErrNotEnoughStock, i.ID, i.StockQuantity, quantity)
	}
	i.StockQuantity = rest
	return nil
}
