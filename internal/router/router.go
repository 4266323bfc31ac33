package router

import (
	"github.com/barakahchain/charity-platform-sub001/internal/chain"
	"github.com/barakahchain/charity-platform-sub001/internal/ethereum"
	"github.com/barakahchain/charity-platform-sub001/internal/handler"
	"github.com/barakahchain/charity-platform-sub001/internal/metadata"
	"github.com/barakahchain/charity-platform-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, resolver *metadata.Resolver, ethClient *ethereum.Client, contract *chain.Contract) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(middleware.WithIdentity())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "charity-platform",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db, resolver, ethClient, contract)
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/metadata", projectHandler.GetProjectMetadata)
			// 部署确认只开放给管理员
			projects.POST("/:id/confirm", middleware.RequireRole("admin"), projectHandler.ConfirmDeployment)
		}

		// 捐款相关路由
		donationHandler := handler.NewDonationHandler(db)
		donations := v1.Group("/donations")
		{
			donations.POST("", donationHandler.RecordDonation)
		}
		projects.GET("/:id/donations", donationHandler.GetProjectDonations)
		v1.GET("/wallets/:address/donations", donationHandler.GetWalletDonations)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
