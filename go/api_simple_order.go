package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

// SimpleOrderAPI serves order headers (member and delivery, no items).
type SimpleOrderAPI struct {
	queries orderports.QueryService
}

func NewSimpleOrderAPI(queries orderports.QueryService) SimpleOrderAPI {
	return SimpleOrderAPI{queries: queries}
}

// Get /api/v1/simple-orders
func (api *SimpleOrderAPI) SimpleOrdersV1(c *gin.Context) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	graphs, err := api.queries.SimpleOrdersNaive(c.Request.Context(), search.ToSearch())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.ToSimpleOrderEntities(graphs))
}

// Get /api/v2/simple-orders
func (api *SimpleOrderAPI) SimpleOrdersV2(c *gin.Context) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	graphs, err := api.queries.SimpleOrdersNaive(c.Request.Context(), search.ToSearch())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromSimpleGraphs(graphs))
}

// Get /api/v3/simple-orders
func (api *SimpleOrderAPI) SimpleOrdersV3(c *gin.Context) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	graphs, err := api.queries.SimpleOrdersFetchJoin(c.Request.Context(), search.ToSearch())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromSimpleGraphs(graphs))
}

// Get /api/v4/simple-orders
func (api *SimpleOrderAPI) SimpleOrdersV4(c *gin.Context) {
	search, ok := bindSearch(c)
	if !ok {
		return
	}
	dtos, err := api.queries.SimpleOrderDtos(c.Request.Context(), search.ToSearch())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromSimpleQueryDtos(dtos))
}
