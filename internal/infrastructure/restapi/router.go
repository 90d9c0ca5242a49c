package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions controls the optional parts of the router.
type RouterOptions struct {
	SwaggerEnabled  bool
	SwaggerSpecFile string
	MetricsEnabled  bool
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(nftHandler *NFTHandler, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/chains", nftHandler.ListChainsHandler)
		v1.GET("/nfts", nftHandler.GetNFTsHandler)
		v1.POST("/nfts", nftHandler.PostNFTsHandler)
		v1.GET("/tokens/:chain/:contract/:tokenId", nftHandler.GetTokenHandler)
		v1.GET("/tokens/:chain/:contract/:tokenId/image", nftHandler.GetTokenImageHandler)
	}

	if opts.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if opts.SwaggerEnabled {
		// swagger.yaml отдается как статический файл, swag init не используется
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecFile)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
