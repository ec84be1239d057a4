// Package seed loads the sample shop data: two members, four books and one
// order per member.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	memberapp "github.com/Apurer/go-gin-shop-api/internal/domains/members/application"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

type book struct {
	name  string
	price int
	stock int
	count int
}

type customer struct {
	name    string
	address address.Address
	books   []book
}

var customers = []customer{
	{
		name:    "userA",
		address: address.New("Seoul", "1", "1111"),
		books: []book{
			{name: "JPA1 BOOK", price: 10000, stock: 100, count: 1},
			{name: "JPA2 BOOK", price: 20000, stock: 100, count: 2},
		},
	},
	{
		name:    "userB",
		address: address.New("Busan", "2", "2222"),
		books: []book{
			{name: "SPRING1 BOOK", price: 20000, stock: 200, count: 3},
			{name: "SPRING2 BOOK", price: 40000, stock: 300, count: 4},
		},
	},
}

// Loader writes the sample data through the application services so stock and
// delivery rules apply exactly as they do for API traffic.
type Loader struct {
	members memberports.Service
	items   catalogports.Service
	orders  orderports.Service
	logger  *slog.Logger
}

func NewLoader(members memberports.Service, items catalogports.Service, orders orderports.Service, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{members: members, items: items, orders: orders, logger: logger}
}

// Load creates every sample customer that does not exist yet. Running it
// twice leaves the data unchanged.
func (l *Loader) Load(ctx context.Context) error {
	for _, c := range customers {
		orderID, err := l.loadCustomer(ctx, c)
		if errors.Is(err, memberapp.ErrDuplicateName) {
			l.logger.LogAttrs(ctx, slog.LevelInfo, "sample member already present", slog.String("member.name", c.name))
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", c.name, err)
		}
		l.logger.LogAttrs(ctx, slog.LevelInfo, "sample order placed",
			slog.String("member.name", c.name),
			slog.Int64("order.id", orderID),
		)
	}
	return nil
}

func (l *Loader) loadCustomer(ctx context.Context, c customer) (int64, error) {
	memberID, err := l.members.Join(ctx, c.name, c.address)
	if err != nil {
		return 0, err
	}
	input := ordertypes.PlaceOrderInput{MemberID: memberID}
	for _, b := range c.books {
		item, err := catalogdomain.NewItem(catalogdomain.KindBook, b.name, b.price, b.stock, catalogdomain.Attributes{})
		if err != nil {
			return 0, err
		}
		saved, err := l.items.SaveItem(ctx, item)
		if err != nil {
			return 0, fmt.Errorf("save item %q: %w", b.name, err)
		}
		input.Lines = append(input.Lines, ordertypes.PlaceOrderLine{ItemID: saved.ID, Count: b.count})
	}
	return l.orders.PlaceOrder(ctx, input)
}
