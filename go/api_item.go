package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	itemhttpmapper "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
)

// ItemAPI exposes the catalog so orders can reference items.
type ItemAPI struct {
	service catalogports.Service
}

func NewItemAPI(service catalogports.Service) ItemAPI {
	return ItemAPI{service: service}
}

// Get /api/v1/items
// Lists catalog items
func (api *ItemAPI) ListItems(c *gin.Context) {
	items, err := api.service.FindItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemhttpmapper.FromDomainItems(items))
}

// Post /api/v1/items
// Adds a catalog item
func (api *ItemAPI) CreateItem(c *gin.Context) {
	var payload itemhttpmapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := itemhttpmapper.ToDomainItem(payload)
	if err != nil {
		problems.BadRequest(c, err.Error())
		return
	}
	saved, err := api.service.SaveItem(c.Request.Context(), item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemhttpmapper.FromDomainItem(saved))
}
