package shopserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

// IdempotencyKeyHeader deduplicates retried order placements.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI serves the order listings plus placement and cancellation.
type OrderAPI struct {
	service   orderports.Service
	queries   orderports.QueryService
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI. A nil orchestrator places orders through the service directly.
func NewOrderAPI(service orderports.Service, queries orderports.QueryService, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, queries: queries, workflows: workflows}
}

// Get /api/v1/orders
// Lists orders with the whole loaded graph, one lookup per association
func (api *OrderAPI) OrdersV1(c *gin.Context) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	graphs, err := api.queries.OrdersNaive(c.Request.Context(), search.ToSearch())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.ToOrderEntities(graphs))
}

// Get /api/v2/orders
// Lists order DTOs, one lookup per association
func (api *OrderAPI) OrdersV2(c *gin.Context) {
	api.respondGraphs(c, api.queries.OrdersNaive)
}

// Get /api/v3/orders
// Lists order DTOs from a single joined query
func (api *OrderAPI) OrdersV3(c *gin.Context) {
	api.respondGraphs(c, api.queries.OrdersFetchJoin)
}

// Get /api/v3.1/orders
// Pages order DTOs and batch-loads their items
func (api *OrderAPI) OrdersV3Page(c *gin.Context) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	graphs, err := api.queries.OrdersPaged(c.Request.Context(), search.ToSearch(), search.ToPage())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderGraphs(graphs))
}

// Get /api/v4/orders
// Lists projected order DTOs, one item query per order
func (api *OrderAPI) OrdersV4(c *gin.Context) {
	api.respondDtos(c, api.queries.OrderDtos)
}

// Get /api/v5/orders
// Lists projected order DTOs, items loaded with one IN query
func (api *OrderAPI) OrdersV5(c *gin.Context) {
	api.respondDtos(c, api.queries.OrderDtosBatched)
}

// Get /api/v6/orders
// Lists order DTOs regrouped from one flat join
func (api *OrderAPI) OrdersV6(c *gin.Context) {
	api.respondDtos(c, api.queries.OrderDtosFlat)
}

// Post /api/v1/orders
// Places an order for a member
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload orderhttpmapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := orderhttpmapper.ToPlaceOrderInput(payload, strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)))
	id, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.PlaceOrderResponse{OrderID: id})
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /api/v1/orders/:orderId
// Finds an order aggregate by id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.ToOrderAggregate(order))
}

// Post /api/v1/orders/:orderId/cancel
// Cancels an order and restocks its items
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.CancelOrderResponse{OrderID: order.ID, OrderStatus: string(order.Status)})
}

type graphQuery func(context.Context, ordertypes.OrderSearch) ([]ordertypes.OrderGraph, error)

type dtoQuery func(context.Context, ordertypes.OrderSearch) ([]ordertypes.OrderQueryDto, error)

func (api *OrderAPI) respondGraphs(c *gin.Context, query graphQuery) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	graphs, err := query(c.Request.Context(), search.ToSearch())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderGraphs(graphs))
}

func (api *OrderAPI) respondDtos(c *gin.Context, query dtoQuery) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	dtos, err := query(c.Request.Context(), search.ToSearch())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderQueryDtos(dtos))
}

func bindSearch(c *gin.Context) (orderhttpmapper.OrderSearchQuery, bool) {
	var search orderhttpmapper.OrderSearchQuery
	if err := c.ShouldBindQuery(&search); err != nil {
		respondBindError(c, err)
		return search, false
	}
	return search, true
}
