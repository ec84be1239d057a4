package postgres

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

// DefaultBatchFetchSize bounds the order ids sent in one IN/ANY query.
const DefaultBatchFetchSize = 100

var _ ports.QueryRepository = (*QueryRepository)(nil)

// QueryRepository implements the order listing strategies with hand-written joins.
type QueryRepository struct {
	db        *gorm.DB
	batchSize int
}

type QueryOption func(*QueryRepository)

// WithBatchFetchSize sets how many orders share one item query in the paged strategy.
func WithBatchFetchSize(n int) QueryOption {
	return func(q *QueryRepository) {
		if n > 0 {
			q.batchSize = n
		}
	}
}

func NewQueryRepository(db *gorm.DB, opts ...QueryOption) *QueryRepository {
	q := &QueryRepository{db: db, batchSize: DefaultBatchFetchSize}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

const headerColumns = "o.id AS order_id, o.member_id AS member_id, o.order_date AS order_date, o.status AS order_status, " +
	"m.name AS member_name, m.city AS member_city, m.street AS member_street, m.zipcode AS member_zipcode, " +
	"d.id AS delivery_id, d.status AS delivery_status, d.city AS city, d.street AS street, d.zipcode AS zipcode"

const lineColumns = "oi.id AS order_item_id, oi.order_id AS order_id, oi.item_id AS item_id, " +
	"oi.order_price AS order_price, oi.count AS count, " +
	"i.name AS item_name, i.price AS item_price, i.stock_quantity AS item_stock_quantity"

// headerRow is one order joined with its member and delivery.
type headerRow struct {
	OrderID        int64     `gorm:"column:order_id"`
	MemberID       int64     `gorm:"column:member_id"`
	OrderDate      time.Time `gorm:"column:order_date"`
	OrderStatus    string    `gorm:"column:order_status"`
	MemberName     string    `gorm:"column:member_name"`
	MemberCity     string    `gorm:"column:member_city"`
	MemberStreet   string    `gorm:"column:member_street"`
	MemberZipcode  string    `gorm:"column:member_zipcode"`
	DeliveryID     int64     `gorm:"column:delivery_id"`
	DeliveryStatus string    `gorm:"column:delivery_status"`
	City           string    `gorm:"column:city"`
	Street         string    `gorm:"column:street"`
	Zipcode        string    `gorm:"column:zipcode"`
}

// lineRow is one order item joined with its catalog item.
type lineRow struct {
	OrderItemID       int64  `gorm:"column:order_item_id"`
	OrderID           int64  `gorm:"column:order_id"`
	ItemID            int64  `gorm:"column:item_id"`
	OrderPrice        int    `gorm:"column:order_price"`
	Count             int    `gorm:"column:count"`
	ItemName          string `gorm:"column:item_name"`
	ItemPrice         int    `gorm:"column:item_price"`
	ItemStockQuantity int    `gorm:"column:item_stock_quantity"`
}

// joinedRow is a header with an optional line from the LEFT JOIN fetch.
type joinedRow struct {
	Header            headerRow `gorm:"embedded"`
	OrderItemID       *int64    `gorm:"column:order_item_id"`
	ItemID            *int64    `gorm:"column:item_id"`
	OrderPrice        *int      `gorm:"column:order_price"`
	Count             *int      `gorm:"column:count"`
	ItemName          *string   `gorm:"column:item_name"`
	ItemPrice         *int      `gorm:"column:item_price"`
	ItemStockQuantity *int      `gorm:"column:item_stock_quantity"`
}

// flatRow is a header repeated for one of its lines.
type flatRow struct {
	Header     headerRow `gorm:"embedded"`
	ItemName   string    `gorm:"column:item_name"`
	OrderPrice int       `gorm:"column:order_price"`
	Count      int       `gorm:"column:count"`
}

// FindGraphsNaive issues one query for the orders and then separate lookups
// for every association of every order.
func (q *QueryRepository) FindGraphsNaive(ctx context.Context, search types.OrderSearch, fetch types.Fetch) ([]types.OrderGraph, error) {
	if err := q.ensureDB(); err != nil {
		return nil, err
	}
	var orders []orderRecord
	if err := q.filtered(ctx, search).
		Select("o.id, o.member_id, o.delivery_id, o.order_date, o.status").
		Order("o.id").
		Limit(types.NaiveResultLimit).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	db := platformpostgres.Conn(ctx, q.db)
	graphs := make([]types.OrderGraph, 0, len(orders))
	for _, order := range orders {
		var member memberRecord
		if err := db.First(&member, "id = ?", order.MemberID).Error; err != nil {
			return nil, err
		}
		var delivery deliveryRecord
		if err := db.First(&delivery, "id = ?", order.DeliveryID).Error; err != nil {
			return nil, err
		}
		graph := types.OrderGraph{
			Order:  order.toDomain(delivery.toDomain(), nil),
			Member: types.MemberView{ID: member.ID, Name: member.Name, Address: member.Address},
		}
		if fetch.Items {
			var items []orderItemRecord
			if err := db.Where("order_id = ?", order.ID).Order("id").Find(&items).Error; err != nil {
				return nil, err
			}
			for _, oi := range items {
				var item itemRecord
				if err := db.First(&item, "id = ?", oi.ItemID).Error; err != nil {
					return nil, err
				}
				graph.Lines = append(graph.Lines, types.OrderLine{
					OrderItem: oi.toDomain(),
					Item:      types.ItemView{ID: item.ID, Name: item.Name, Price: item.Price, StockQuantity: item.StockQuantity},
				})
			}
		}
		graphs = append(graphs, graph)
	}
	return graphs, nil
}

// FindGraphsWithItems loads everything in one joined query. Orders repeat once
// per line and are folded back by id.
func (q *QueryRepository) FindGraphsWithItems(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	if err := q.ensureDB(); err != nil {
		return nil, err
	}
	var rows []joinedRow
	if err := q.filtered(ctx, search).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Joins("LEFT JOIN items i ON i.id = oi.item_id").
		Select(headerColumns + ", " + lineColumns).
		Order("o.id, oi.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	graphs := make([]types.OrderGraph, 0)
	for _, row := range rows {
		if len(graphs) == 0 || graphs[len(graphs)-1].Order.ID != row.Header.OrderID {
			graphs = append(graphs, row.Header.graph())
		}
		if row.OrderItemID == nil {
			continue
		}
		current := &graphs[len(graphs)-1]
		current.Lines = append(current.Lines, lineRow{
			OrderItemID:       *row.OrderItemID,
			OrderID:           row.Header.OrderID,
			ItemID:            deref(row.ItemID),
			OrderPrice:        deref(row.OrderPrice),
			Count:             deref(row.Count),
			ItemName:          deref(row.ItemName),
			ItemPrice:         deref(row.ItemPrice),
			ItemStockQuantity: deref(row.ItemStockQuantity),
		}.line())
	}
	return graphs, nil
}

// FindGraphsWithMemberDelivery pages over the to-one joins and then loads
// lines for the page in batches of order ids.
func (q *QueryRepository) FindGraphsWithMemberDelivery(ctx context.Context, search types.OrderSearch, page types.Page, fetch types.Fetch) ([]types.OrderGraph, error) {
	if err := q.ensureDB(); err != nil {
		return nil, err
	}
	query := q.filtered(ctx, search).Select(headerColumns).Order("o.id")
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	var headers []headerRow
	if err := query.Scan(&headers).Error; err != nil {
		return nil, err
	}

	graphs := make([]types.OrderGraph, 0, len(headers))
	index := make(map[int64]int, len(headers))
	ids := make([]int64, 0, len(headers))
	for _, header := range headers {
		index[header.OrderID] = len(graphs)
		graphs = append(graphs, header.graph())
		ids = append(ids, header.OrderID)
	}
	if !fetch.Items {
		return graphs, nil
	}
	for batch := range slices.Chunk(ids, q.batchSize) {
		lines, err := q.lines(ctx, batch)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			pos := index[line.OrderID]
			graphs[pos].Lines = append(graphs[pos].Lines, line.line())
		}
	}
	return graphs, nil
}

// FindOrderQueryDtos projects the headers and then runs one item query per order.
func (q *QueryRepository) FindOrderQueryDtos(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	dtos, err := q.headerDtos(ctx, search)
	if err != nil {
		return nil, err
	}
	for i := range dtos {
		lines, err := q.lines(ctx, []int64{dtos[i].OrderID})
		if err != nil {
			return nil, err
		}
		dtos[i].OrderItems = itemDtos(lines)
	}
	return dtos, nil
}

// FindOrderQueryDtosBatched projects the headers and then loads every item with one IN query.
func (q *QueryRepository) FindOrderQueryDtosBatched(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	dtos, err := q.headerDtos(ctx, search)
	if err != nil || len(dtos) == 0 {
		return dtos, err
	}
	ids := make([]int64, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.OrderID)
	}
	lines, err := q.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]lineRow, len(dtos))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	for i := range dtos {
		dtos[i].OrderItems = itemDtos(byOrder[dtos[i].OrderID])
	}
	return dtos, nil
}

// FindOrderFlats returns one row per order item with the header repeated.
func (q *QueryRepository) FindOrderFlats(ctx context.Context, search types.OrderSearch) ([]types.OrderFlatDto, error) {
	if err := q.ensureDB(); err != nil {
		return nil, err
	}
	var rows []flatRow
	if err := q.filtered(ctx, search).
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("JOIN items i ON i.id = oi.item_id").
		Select(headerColumns + ", i.name AS item_name, oi.order_price AS order_price, oi.count AS count").
		Order("o.id, oi.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	flats := make([]types.OrderFlatDto, 0, len(rows))
	for _, row := range rows {
		flats = append(flats, types.OrderFlatDto{
			OrderID:     row.Header.OrderID,
			Name:        row.Header.MemberName,
			OrderDate:   row.Header.OrderDate,
			OrderStatus: domain.Status(row.Header.OrderStatus),
			Address:     row.Header.deliveryAddress(),
			ItemName:    row.ItemName,
			OrderPrice:  row.OrderPrice,
			Count:       row.Count,
		})
	}
	return flats, nil
}

// FindSimpleOrderDtos projects order headers without items.
func (q *QueryRepository) FindSimpleOrderDtos(ctx context.Context, search types.OrderSearch) ([]types.SimpleOrderQueryDto, error) {
	if err := q.ensureDB(); err != nil {
		return nil, err
	}
	var headers []headerRow
	if err := q.filtered(ctx, search).Select(headerColumns).Order("o.id").Scan(&headers).Error; err != nil {
		return nil, err
	}
	dtos := make([]types.SimpleOrderQueryDto, 0, len(headers))
	for _, header := range headers {
		dtos = append(dtos, types.SimpleOrderQueryDto{
			OrderID:     header.OrderID,
			Name:        header.MemberName,
			OrderDate:   header.OrderDate,
			OrderStatus: domain.Status(header.OrderStatus),
			Address:     header.deliveryAddress(),
		})
	}
	return dtos, nil
}

// filtered starts from orders joined with member and delivery and applies the search.
func (q *QueryRepository) filtered(ctx context.Context, search types.OrderSearch) *gorm.DB {
	query := platformpostgres.Conn(ctx, q.db).
		Table("orders AS o").
		Joins("JOIN members m ON m.id = o.member_id").
		Joins("JOIN deliveries d ON d.id = o.delivery_id")
	if search.Status != "" {
		query = query.Where("o.status = ?", string(search.Status))
	}
	if search.MemberName != "" {
		query = query.Where(`LOWER(m.name) LIKE LOWER(?) ESCAPE '\'`, likePattern(search.MemberName))
	}
	return query
}

func (q *QueryRepository) headerDtos(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	simple, err := q.FindSimpleOrderDtos(ctx, search)
	if err != nil {
		return nil, err
	}
	dtos := make([]types.OrderQueryDto, 0, len(simple))
	for _, header := range simple {
		dtos = append(dtos, types.OrderQueryDto{
			OrderID:     header.OrderID,
			Name:        header.Name,
			OrderDate:   header.OrderDate,
			OrderStatus: header.OrderStatus,
			Address:     header.Address,
		})
	}
	return dtos, nil
}

// lines loads order items with their catalog items for the given orders,
// ordered by order id then order item id.
func (q *QueryRepository) lines(ctx context.Context, orderIDs []int64) ([]lineRow, error) {
	query := platformpostgres.Conn(ctx, q.db).
		Table("order_items AS oi").
		Joins("JOIN items i ON i.id = oi.item_id").
		Select(lineColumns)
	if len(orderIDs) == 1 {
		query = query.Where("oi.order_id = ?", orderIDs[0])
	} else if platformpostgres.IsPostgres(q.db) {
		query = query.Where("oi.order_id = ANY(?)", pq.Array(orderIDs))
	} else {
		query = query.Where("oi.order_id IN ?", orderIDs)
	}
	var rows []lineRow
	if err := query.Order("oi.order_id, oi.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (q *QueryRepository) ensureDB() error {
	if q == nil || q.db == nil {
		return errors.New("postgres order query repository not configured")
	}
	return nil
}

func (h headerRow) deliveryAddress() address.Address {
	return address.Address{City: h.City, Street: h.Street, Zipcode: h.Zipcode}
}

func (h headerRow) graph() types.OrderGraph {
	return types.OrderGraph{
		Order: &domain.Order{
			ID:       h.OrderID,
			MemberID: h.MemberID,
			Delivery: &domain.Delivery{
				ID:      h.DeliveryID,
				Address: h.deliveryAddress(),
				Status:  domain.DeliveryStatus(h.DeliveryStatus),
			},
			OrderDate: h.OrderDate,
			Status:    domain.Status(h.OrderStatus),
		},
		Member: types.MemberView{
			ID:      h.MemberID,
			Name:    h.MemberName,
			Address: address.Address{City: h.MemberCity, Street: h.MemberStreet, Zipcode: h.MemberZipcode},
		},
	}
}

func (l lineRow) line() types.OrderLine {
	return types.OrderLine{
		OrderItem: &domain.OrderItem{
			ID:         l.OrderItemID,
			OrderID:    l.OrderID,
			ItemID:     l.ItemID,
			OrderPrice: l.OrderPrice,
			Count:      l.Count,
		},
		Item: types.ItemView{
			ID:            l.ItemID,
			Name:          l.ItemName,
			Price:         l.ItemPrice,
			StockQuantity: l.ItemStockQuantity,
		},
	}
}

func itemDtos(lines []lineRow) []types.OrderItemQueryDto {
	dtos := make([]types.OrderItemQueryDto, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, types.OrderItemQueryDto{
			OrderID:    line.OrderID,
			ItemName:   line.ItemName,
			OrderPrice: line.OrderPrice,
			Count:      line.Count,
		})
	}
	return dtos
}

func likePattern(name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(name)
	return "%" + escaped + "%"
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
