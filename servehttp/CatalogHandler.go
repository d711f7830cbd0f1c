package servehttp

import (
	"net/http"

	"inventech/domain/catalog"

	"github.com/gin-gonic/gin"
)

func RegisterCatalogHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/catalog", middleWares...)

	handler := &catalogHandler{}

	g.GET("", handler.handleLoad)
	g.POST("refresh", handler.handleRefresh)
}

type catalogHandler struct {
}

func (h *catalogHandler) handleLoad(c *gin.Context) {
	loaded, err := catalog.LoadCatalogFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, loaded)
}

func (h *catalogHandler) handleRefresh(c *gin.Context) {
	catalog.InvalidateCatalog()
	loaded, err := catalog.LoadCatalogFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, loaded)
}
