package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bassista/go_items/internal/logger"
	"github.com/bassista/go_items/internal/query"
	"github.com/bassista/go_items/internal/repository"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
)

// ItemStore is the item store API needed by item handlers.
type ItemStore interface {
	repository.Reader
	FindByID(ctx context.Context, id int64) (repository.Item, error)
	Append(ctx context.Context, in repository.ItemInput) (repository.Item, error)
}

// ItemController handles the /items endpoints.
type ItemController struct {
	store        ItemStore
	defaultLimit int
	maxLimit     int
}

// NewItemController creates an ItemController. maxLimit 0 leaves page size unbounded.
func NewItemController(store ItemStore, defaultLimit, maxLimit int) *ItemController {
	return &ItemController{store: store, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// ListItems handles GET /items?q=&page=&limit=.
func (ic *ItemController) ListItems(c *gin.Context) {
	items, err := ic.store.LoadAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, "list items", err)
		return
	}

	params := query.ParseParams(c.Query("q"), c.Query("page"), c.Query("limit"), ic.defaultLimit, ic.maxLimit)
	logger.WithComponent("item-controller").Debugf("GET /items q=%q page=%d limit=%d", params.Q, params.Page, params.Limit)

	c.JSON(http.StatusOK, query.Apply(items, params))
}

// GetItem handles GET /items/:id.
func (ic *ItemController) GetItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	item, err := ic.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "get item", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /items.
func (ic *ItemController) CreateItem(c *gin.Context) {
	var in repository.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logger.WithComponent("item-controller").Debugf("create item: invalid payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item data."})
		return
	}

	item, err := ic.store.Append(c.Request.Context(), in)
	if err != nil {
		respondStoreError(c, "create item", err)
		return
	}

	logger.WithComponent("item-controller").Infof("item %d created", item.ID)
	c.JSON(http.StatusCreated, item)
}

// respondStoreError maps item store errors onto HTTP responses.
// When the request context has expired nothing is written, so the timeout
// middleware can answer with a 504.
func respondStoreError(c *gin.Context, op string, err error) {
	log := logger.WithComponent("item-controller")
	switch {
	case c.Request.Context().Err() != nil:
		log.Debugf("%s: request context done: %v", op, err)
	case errdefs.IsInvalidArgument(err):
		log.Debugf("%s: %v", op, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item data."})
	case errdefs.IsNotFound(err):
		log.Debugf("%s: %v", op, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errdefs.IsUnavailable(err):
		log.Errorf("%s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading items data."})
	default:
		log.Errorf("%s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
