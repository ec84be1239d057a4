package shopserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/app/bootstrap"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres/dbtest"
	apierrors "github.com/Apurer/go-gin-shop-api/internal/shared/errors"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newRouterOver(t, bootstrap.Memory())
}

// newGormTestRouter serves the GORM adapters over a private SQLite database.
func newGormTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newRouterOver(t, bootstrap.Postgres(dbtest.Open(t), 1))
}

func newRouterOver(t *testing.T, repos bootstrap.Repositories) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	services := bootstrap.NewServices(repos, nil, bootstrap.Settings{})
	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		MemberAPI:      NewMemberAPI(services.Members),
		OrderAPI:       NewOrderAPI(services.Orders, services.Queries, nil),
		SimpleOrderAPI: NewSimpleOrderAPI(services.Queries),
		ItemAPI:        NewItemAPI(services.Items),
	})
}

func do(t *testing.T, router *gin.Engine, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder, field string) int64 {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	id, ok := body[field].(float64)
	require.True(t, ok, "%s missing from %s", field, rec.Body.String())
	return int64(id)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

// seedOrders registers userA with two books and places one order for both.
func seedOrders(t *testing.T, router *gin.Engine) int64 {
	t.Helper()
	memberID := decodeID(t, do(t, router, http.MethodPost, "/api/v1/members", map[string]any{
		"name":    "userA",
		"address": map[string]string{"city": "Seoul", "street": "1", "zipcode": "1111"},
	}), "id")
	var itemIDs []int64
	for _, name := range []string{"JPA1 BOOK", "JPA2 BOOK"} {
		itemIDs = append(itemIDs, decodeID(t, do(t, router, http.MethodPost, "/api/v1/items", map[string]any{
			"kind": "BOOK", "name": name, "price": 10000, "stockQuantity": 100,
		}), "id"))
	}
	return decodeID(t, do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"memberId": memberID,
		"itemId":   itemIDs[0],
		"count":    1,
		"items":    []map[string]any{{"itemId": itemIDs[1], "count": 2}},
	}), "orderId")
}

// seedSecondOrder places a one-line order for userB in Busan.
func seedSecondOrder(t *testing.T, router *gin.Engine) int64 {
	t.Helper()
	memberID := decodeID(t, do(t, router, http.MethodPost, "/api/v1/members", map[string]any{
		"name":    "userB",
		"address": map[string]string{"city": "Busan", "street": "2", "zipcode": "2222"},
	}), "id")
	itemID := decodeID(t, do(t, router, http.MethodPost, "/api/v1/items", map[string]any{
		"kind": "BOOK", "name": "SPRING1 BOOK", "price": 20000, "stockQuantity": 200,
	}), "id")
	return decodeID(t, do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"memberId": memberID,
		"itemId":   itemID,
		"count":    3,
	}), "orderId")
}

func TestMemberAPI_V2ListShape(t *testing.T) {
	router := newTestRouter(t)

	id := decodeID(t, do(t, router, http.MethodPost, "/api/v2/members", map[string]string{"name": "userA"}), "id")
	assert.Equal(t, int64(1), id)

	rec := do(t, router, http.MethodGet, "/api/v2/members", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1,"data":[{"name":"userA","address":null}]}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/members", nil)
	assert.JSONEq(t, `[{"id":1,"name":"userA","address":null}]`, rec.Body.String())
}

func TestMemberAPI_DuplicateAndValidation(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v2/members", map[string]string{"name": "userA"})

	rec := do(t, router, http.MethodPost, "/api/v2/members", map[string]string{"name": "userA"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.TypeConflict, decodeProblem(t, rec).Type)

	rec = do(t, router, http.MethodPost, "/api/v2/members", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	assert.Equal(t, map[string]any{"name": "required"}, problem.Extensions["fields"])
}

func TestMemberAPI_GetAndUpdate(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v2/members", map[string]string{"name": "userA"})

	rec := do(t, router, http.MethodPut, "/api/v2/members/1", map[string]string{"name": "userB"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"userB"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v2/members/1", nil)
	assert.JSONEq(t, `{"id":1,"name":"userB","address":null}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v2/members/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v2/members/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderAPI_ListingsAgree(t *testing.T) {
	backends := map[string]func(*testing.T) *gin.Engine{
		"memory": newTestRouter,
		"gorm":   newGormTestRouter,
	}
	for name, newRouter := range backends {
		t.Run(name, func(t *testing.T) {
			router := newRouter(t)
			seedOrders(t, router)
			seedSecondOrder(t, router)

			var want []map[string]any
			rec := do(t, router, http.MethodGet, "/api/v2/orders", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &want))
			require.Len(t, want, 2)
			assert.Equal(t, "userA", want[0]["name"])
			assert.Equal(t, "userB", want[1]["name"])
			assert.NotEqual(t, want[0]["orderId"], want[1]["orderId"])
			assert.Len(t, want[0]["orderItems"], 2)
			assert.Len(t, want[1]["orderItems"], 1)

			for _, path := range []string{"/api/v3/orders", "/api/v3.1/orders?offset=0&limit=100", "/api/v4/orders", "/api/v5/orders", "/api/v6/orders"} {
				rec := do(t, router, http.MethodGet, path, nil)
				require.Equal(t, http.StatusOK, rec.Code, path)
				var got []map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, want, got, path)
			}

			rec = do(t, router, http.MethodGet, "/api/v1/orders", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			var entities []map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entities))
			require.Len(t, entities, 2)
			assert.Contains(t, entities[0], "member")
			assert.Contains(t, entities[0], "delivery")

			for _, path := range []string{"/api/v2/simple-orders", "/api/v3/simple-orders", "/api/v4/simple-orders"} {
				rec := do(t, router, http.MethodGet, path, nil)
				require.Equal(t, http.StatusOK, rec.Code, path)
				var got []map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				require.Len(t, got, 2, path)
				assert.NotContains(t, got[0], "orderItems", path)
				assert.Equal(t, want[0]["address"], got[0]["address"], path)
				assert.Equal(t, want[1]["orderDate"], got[1]["orderDate"], path)
			}
		})
	}
}

func TestOrderAPI_SearchValidation(t *testing.T) {
	router := newTestRouter(t)
	seedOrders(t, router)

	rec := do(t, router, http.MethodGet, "/api/v4/orders?memberName=nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v2/orders?status=SHIPPED", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v3.1/orders?offset=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderAPI_PlaceGetCancel(t *testing.T) {
	router := newTestRouter(t)
	orderID := seedOrders(t, router)

	rec := do(t, router, http.MethodGet, "/api/v1/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var aggregate map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aggregate))
	assert.EqualValues(t, 30000, aggregate["totalPrice"])
	assert.Equal(t, "ORDERED", aggregate["orderStatus"])

	rec = do(t, router, http.MethodPost, "/api/v1/orders/1/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orderId":1,"orderStatus":"CANCELLED"}`, rec.Body.String())
	assert.Equal(t, int64(1), orderID)

	rec = do(t, router, http.MethodPost, "/api/v1/orders/1/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/orders/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v2/orders?status=cancelled", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cancelled []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancelled))
	assert.Len(t, cancelled, 1)
}

func TestOrderAPI_PlaceOrderErrors(t *testing.T) {
	router := newTestRouter(t)
	seedOrders(t, router)

	rec := do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{"memberId": 1, "itemId": 1, "count": 1000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{"memberId": 9, "itemId": 1, "count": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{"memberId": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{"itemId": 1, "count": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"memberId": "required"}, decodeProblem(t, rec).Extensions["fields"])
}

func TestOrderAPI_PlaceOrderIdempotencyKey(t *testing.T) {
	router := newTestRouter(t)
	seedOrders(t, router)
	body := map[string]any{"memberId": 1, "itemId": 1, "count": 1}

	first := decodeID(t, do(t, router, http.MethodPost, "/api/v1/orders", body, IdempotencyKeyHeader, "checkout-42"), "orderId")
	second := decodeID(t, do(t, router, http.MethodPost, "/api/v1/orders", body, IdempotencyKeyHeader, "checkout-42"), "orderId")
	assert.Equal(t, first, second)

	body["count"] = 3
	rec := do(t, router, http.MethodPost, "/api/v1/orders", body, IdempotencyKeyHeader, "checkout-42")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/items", nil)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.EqualValues(t, 98, items[0]["stockQuantity"])
}

func TestItemAPI_CreateAndList(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/items", map[string]any{"kind": "ALBUM", "name": "Blue", "price": 15000, "stockQuantity": 3, "artist": "Miles"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/items", nil)
	assert.JSONEq(t, `[{"id":1,"kind":"ALBUM","name":"Blue","price":15000,"stockQuantity":3,"artist":"Miles"}]`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/v1/items", map[string]any{"kind": "TOY", "name": "Robot"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
