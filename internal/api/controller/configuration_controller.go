package controller

import (
	"net/http"

	"github.com/bassista/go_items/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse is the configuration exposed to front-ends.
type ConfigurationResponse struct {
	DefaultPageLimit int `json:"defaultPageLimit"`
	MaxPageLimit     int `json:"maxPageLimit"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(cfg *config.Config) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
	}
}

// GetConfiguration returns the paging configuration for the frontend.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigurationResponse{
		DefaultPageLimit: cc.config.Data.DefaultPageLimit,
		MaxPageLimit:     cc.config.Data.MaxPageLimit,
	})
}
