package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/addispot/addispot-backend/config"
	"github.com/addispot/addispot-backend/internal/app/controller"
	"github.com/addispot/addispot-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	requestController  *controller.RequestController
	placeController    *controller.PlaceController
	branchController   *controller.BranchController
	categoryController *controller.CategoryController
	cuisineController  *controller.CuisineController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	requestController *controller.RequestController,
	placeController *controller.PlaceController,
	branchController *controller.BranchController,
	categoryController *controller.CategoryController,
	cuisineController *controller.CuisineController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		requestController:  requestController,
		placeController:    placeController,
		branchController:   branchController,
		categoryController: categoryController,
		cuisineController:  cuisineController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "AddiSpot admin API is running",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/admin/signup", r.authController.Signup)

		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		// Any signed-in user may submit a proposal; reviewing the queue
		// stays admin-only.
		submissions := api.Group("/requests")
		submissions.Use(r.authMiddleware.Authenticate())
		{
			submissions.POST("/place-add", r.requestController.SubmitPlaceAdd)
			submissions.POST("/branch-add", r.requestController.SubmitBranchAdd)
		}

		// The moderation and catalog surface is admin-only.
		admin := api.Group("")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			requests := admin.Group("/requests")
			{
				requests.GET("/place-add", r.requestController.ListPlaceAdd)
				requests.PATCH("/place-add", r.requestController.ReviewPlaceAdd)

				requests.GET("/branch-add", r.requestController.ListBranchAdd)
				requests.PATCH("/branch-add", r.requestController.ReviewBranchAdd)
			}

			places := admin.Group("/places")
			{
				places.GET("", r.placeController.List)
				places.POST("", r.placeController.Create)
				places.GET("/:id", r.placeController.Get)
				places.PATCH("/:id", r.placeController.Update)
				places.PATCH("/:id/active", r.placeController.SetActive)
				places.DELETE("/:id", r.placeController.Delete)
			}

			branches := admin.Group("/branches")
			{
				branches.GET("", r.branchController.List)
				branches.POST("", r.branchController.Create)
				branches.GET("/:id", r.branchController.Get)
				branches.PATCH("/:id", r.branchController.Update)
				branches.PATCH("/:id/active", r.branchController.SetActive)
				branches.DELETE("/:id", r.branchController.Delete)
			}

			categories := admin.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.GET("/:id", r.categoryController.Get)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}

			cuisines := admin.Group("/cuisines")
			{
				cuisines.GET("", r.cuisineController.List)
				cuisines.POST("", r.cuisineController.Create)
				cuisines.GET("/:id", r.cuisineController.Get)
				cuisines.PATCH("/:id", r.cuisineController.Update)
				cuisines.DELETE("/:id", r.cuisineController.Delete)
			}
		}
	}

	return router
}
