package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	registerJSONFieldNames()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the MemberAPI part of the API
	MemberAPI MemberAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
	// Routes for the SimpleOrderAPI part of the API
	SimpleOrderAPI SimpleOrderAPI
	// Routes for the ItemAPI part of the API
	ItemAPI ItemAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"MembersV1", http.MethodGet, "/api/v1/members", handleFunctions.MemberAPI.MembersV1},
		{"SaveMemberV1", http.MethodPost, "/api/v1/members", handleFunctions.MemberAPI.SaveMemberV1},
		{"MembersV2", http.MethodGet, "/api/v2/members", handleFunctions.MemberAPI.MembersV2},
		{"SaveMemberV2", http.MethodPost, "/api/v2/members", handleFunctions.MemberAPI.SaveMemberV2},
		{"GetMemberV2", http.MethodGet, "/api/v2/members/:id", handleFunctions.MemberAPI.GetMemberV2},
		{"UpdateMemberV2", http.MethodPut, "/api/v2/members/:id", handleFunctions.MemberAPI.UpdateMemberV2},

		{"OrdersV1", http.MethodGet, "/api/v1/orders", handleFunctions.OrderAPI.OrdersV1},
		{"OrdersV2", http.MethodGet, "/api/v2/orders", handleFunctions.OrderAPI.OrdersV2},
		{"OrdersV3", http.MethodGet, "/api/v3/orders", handleFunctions.OrderAPI.OrdersV3},
		{"OrdersV3Page", http.MethodGet, "/api/v3.1/orders", handleFunctions.OrderAPI.OrdersV3Page},
		{"OrdersV4", http.MethodGet, "/api/v4/orders", handleFunctions.OrderAPI.OrdersV4},
		{"OrdersV5", http.MethodGet, "/api/v5/orders", handleFunctions.OrderAPI.OrdersV5},
		{"OrdersV6", http.MethodGet, "/api/v6/orders", handleFunctions.OrderAPI.OrdersV6},
		{"PlaceOrder", http.MethodPost, "/api/v1/orders", handleFunctions.OrderAPI.PlaceOrder},
		{"GetOrder", http.MethodGet, "/api/v1/orders/:orderId", handleFunctions.OrderAPI.GetOrder},
		{"CancelOrder", http.MethodPost, "/api/v1/orders/:orderId/cancel", handleFunctions.OrderAPI.CancelOrder},

		{"SimpleOrdersV1", http.MethodGet, "/api/v1/simple-orders", handleFunctions.SimpleOrderAPI.SimpleOrdersV1},
		{"SimpleOrdersV2", http.MethodGet, "/api/v2/simple-orders", handleFunctions.SimpleOrderAPI.SimpleOrdersV2},
		{"SimpleOrdersV3", http.MethodGet, "/api/v3/simple-orders", handleFunctions.SimpleOrderAPI.SimpleOrdersV3},
		{"SimpleOrdersV4", http.MethodGet, "/api/v4/simple-orders", handleFunctions.SimpleOrderAPI.SimpleOrdersV4},

		{"ListItems", http.MethodGet, "/api/v1/items", handleFunctions.ItemAPI.ListItems},
		{"CreateItem", http.MethodPost, "/api/v1/items", handleFunctions.ItemAPI.CreateItem},
	}
}
