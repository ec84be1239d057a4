package mapper

import (
	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
)

// Item is the transport shape of a catalog item. Kind-specific fields are
// omitted when empty.
type Item struct {
	ID            int64  `json:"id"`
	Kind          string `json:"kind" binding:"required,oneof=BOOK ALBUM MOVIE"`
	Name          string `json:"name" binding:"required"`
	Price         int    `json:"price" binding:"gte=0"`
	StockQuantity int    `json:"stockQuantity" binding:"gte=0"`
	Author        string `json:"author,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
	Artist        string `json:"artist,omitempty"`
	Etc           string `json:"etc,omitempty"`
	Director      string `json:"director,omitempty"`
	Actor         string `json:"actor,omitempty"`
}

// ToDomainItem builds a new catalog item from a request body. The ID is ignored.
func ToDomainItem(item Item) (*catalogdomain.Item, error) {
	return catalogdomain.NewItem(
		catalogdomain.Kind(item.Kind),
		item.Name,
		item.Price,
		item.StockQuantity,
		catalogdomain.Attributes{
			Author:   item.Author,
			ISBN:     item.ISBN,
			Artist:   item.Artist,
			Etc:      item.Etc,
			Director: item.Director,
			Actor:    item.Actor,
		},
	)
}

// FromDomainItem converts a domain item to the transport representation.
func FromDomainItem(item *catalogdomain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{
		ID:            item.ID,
		Kind:          string(item.Kind),
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
		Author:        item.Attributes.Author,
		ISBN:          item.Attributes.ISBN,
		Artist:        item.Attributes.Artist,
		Etc:           item.Attributes.Etc,
		Director:      item.Attributes.Director,
		Actor:         item.Attributes.Actor,
	}
}

// FromDomainItems converts a list of items.
func FromDomainItems(items []*catalogdomain.Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}
