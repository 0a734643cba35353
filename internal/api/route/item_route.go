package route

import (
	"time"

	"github.com/bassista/go_items/internal/api/controller"
	"github.com/bassista/go_items/internal/api/middleware"
	"github.com/bassista/go_items/internal/config"
	"github.com/gin-gonic/gin"
)

func NewItemRouter(timeout time.Duration, group *gin.RouterGroup, store controller.ItemStore, data config.DataConfig) {
	ic := controller.NewItemController(store, data.DefaultPageLimit, data.MaxPageLimit)
	items := group.Group("items", middleware.RequestTimeout(timeout))

	items.GET("", ic.ListItems)
	items.GET(":id", ic.GetItem)
	items.POST("", ic.CreateItem)
}
