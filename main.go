package main

import (
	"net/http"

	"inventech/bizerror"
	"inventech/client/cmms"
	"inventech/common"
	"inventech/infra/tracing"
	"inventech/servehttp"

	"github.com/gin-gonic/gin"
)

func main() {
	common.Log.Info("service start")

	closer, err := tracing.Bootstrap(common.GetServiceName())
	if err != nil {
		common.Log.Warnf("tracing bootstrap failed: %v", err)
	} else {
		defer closer.Close()
	}

	cmms.CreateClientFromEnv()

	engine := gin.New()
	engine.Use(gin.Logger(), bizerror.ErrorHandling(), tracing.TracingIngress(), servehttp.RateLimiting(50, 100))
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "inventech")
	})

	servehttp.RegisterCatalogHandler(engine)
	servehttp.RegisterOrderFormHandler(engine)
	servehttp.RegisterWorkOrderHandler(engine)

	servehttp.StartHTTPServer(engine)
}
