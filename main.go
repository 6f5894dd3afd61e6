package main

import (
	"log"
	"strings"
	"time"

	"minitrack/config"
	"minitrack/db"
	"minitrack/handlers"
	"minitrack/models"
	"minitrack/photos"
	"minitrack/storage"
	"minitrack/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	database := db.Init()
	if err := models.Migrate(database); err != nil {
		log.Fatalf("Cannot migrate database: %v", err)
	}
	blobs, err := storage.New(storage.Config{
		Type:     storage.Type(config.STORAGE_TYPE),
		Dir:      config.STORAGE_DIR,
		Bucket:   config.S3_BUCKET,
		Region:   config.S3_REGION,
		Endpoint: config.S3_ENDPOINT,
		Key:      config.S3_KEY,
		Secret:   config.S3_SECRET,
	})
	if err != nil {
		log.Fatalf("Cannot initialize photo storage: %v", err)
	}
	entityStore := store.New(database)
	photoManager := photos.NewManager(entityStore, blobs, int64(config.MAX_PHOTO_SIZE))
	api := &handlers.API{
		DB:     database,
		Store:  entityStore,
		Photos: photoManager,
	}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(handlers.DebugLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/photos"})))
	}

	router.GET("/", api.Health)
	// Project handlers
	router.GET("/api/projects", api.ProjectList)
	router.POST("/api/projects", api.ProjectCreate)
	router.GET("/api/projects/:id", api.ProjectGet)
	router.PUT("/api/projects/:id", api.ProjectUpdate)
	router.DELETE("/api/projects/:id", api.ProjectDelete)
	// Miniature handlers
	router.GET("/api/projects/:id/miniatures", api.MiniatureList)
	router.POST("/api/projects/:id/miniatures", api.MiniatureCreate)
	router.GET("/api/miniatures/:id", api.MiniatureGet)
	router.PUT("/api/miniatures/:id", api.MiniatureUpdate)
	router.DELETE("/api/miniatures/:id", api.MiniatureDelete)
	// Recipe handlers
	router.GET("/api/recipes", api.RecipeList)
	router.POST("/api/recipes", api.RecipeCreate)
	router.GET("/api/recipes/:id", api.RecipeGet)
	router.PUT("/api/recipes/:id", api.RecipeUpdate)
	router.DELETE("/api/recipes/:id", api.RecipeDelete)
	router.GET("/api/recipes/:id/usage", api.RecipeUsage)
	// Recipe links
	router.GET("/api/miniatures/:id/recipes", api.MiniatureRecipes)
	router.POST("/api/miniatures/:id/recipes/:recipeId", api.RecipeLink)
	router.DELETE("/api/miniatures/:id/recipes/:recipeId", api.RecipeUnlink)
	// Photo handlers
	router.POST("/api/miniatures/:id/photos", api.PhotoUpload)
	router.GET("/api/miniatures/:id/photos", api.PhotoList)
	router.GET("/api/photos/:id", api.PhotoFetch)
	router.DELETE("/api/photos/:id", api.PhotoDelete)
	router.POST("/api/photos/reconcile", api.PhotoReconcile)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
