package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/slices"
	"github.com/joho/godotenv"

	"github.com/Nkemjikanma/esemese-backend/cmd/server/internal/configuration"
	"github.com/Nkemjikanma/esemese-backend/cmd/server/internal/gallery"
	"github.com/Nkemjikanma/esemese-backend/cmd/server/internal/uploads"
	"github.com/Nkemjikanma/esemese-backend/pkg/pinata"
	"github.com/Nkemjikanma/esemese-backend/pkg/services"
)

var (
	Version string = "development"
	appName string = "esemese-backend"

	config configuration.Config

	/* Services */
	pinataClient   pinata.Client
	galleryService services.GalleryServicer
	uploadService  services.UploadServicer

	/* Controllers */
	galleryController gallery.GalleryHandlers
	uploadController  uploads.UploadHandlers
)

func main() {
	var (
		err error
	)

	if err = godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("pinataApiUrl", config.PinataAPIURL),
		slog.String("pinataUploadUrl", config.PinataUploadURL),
	)

	slog.Debug("setting up...")

	/*
	 * Setup services
	 */
	pinataClient, err = pinata.NewClient(pinata.ClientConfig{
		Jwt:       config.PinataJWT,
		ApiUrl:    config.PinataAPIURL,
		UploadUrl: config.PinataUploadURL,
	})

	if err != nil {
		slog.Error("failed to configure the pinata client", "error", err)
		os.Exit(1)
	}

	probePinata()

	galleryService = services.NewGalleryService(services.GalleryServiceConfig{
		Pinata:              pinataClient,
		MaxThumbnailWorkers: config.MaxThumbnailWorkers,
	})

	uploadService = services.NewUploadService(services.UploadServiceConfig{
		Pinata:      pinataClient,
		MaxAttempts: config.MaxUploadAttempts,
	})

	/*
	 * Setup controllers
	 */
	galleryController = gallery.NewGalleryController(gallery.GalleryControllerConfig{
		FavouritesGroupID: config.FavouritesGroupID,
		GalleryService:    galleryService,
	})

	uploadController = uploads.NewUploadController(uploads.UploadControllerConfig{
		MaxUploadSizeMB: config.MaxUploadSizeMB,
		UploadService:   uploadService,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	corsMiddleware := newCorsMiddleware()

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /groups", HandlerFunc: galleryController.GetGroups, Middlewares: []mux.MiddlewareFunc{corsMiddleware}},
		{Path: "GET /groups-with-thumbnails", HandlerFunc: galleryController.GetGroupsWithThumbnails, Middlewares: []mux.MiddlewareFunc{corsMiddleware}},
		{Path: "GET /group-images", HandlerFunc: galleryController.GetGroupImages, Middlewares: []mux.MiddlewareFunc{corsMiddleware}},
		{Path: "GET /favourites", HandlerFunc: galleryController.GetFavourites, Middlewares: []mux.MiddlewareFunc{corsMiddleware}},
		{Path: "GET /files-category", HandlerFunc: galleryController.GetFilesByCategory, Middlewares: []mux.MiddlewareFunc{corsMiddleware}},
		{Path: "POST /upload", HandlerFunc: uploadController.UploadPhotos, Middlewares: []mux.MiddlewareFunc{corsMiddleware}},
	}

	routerConfig := mux.RouterConfig{
		Address:          config.Host,
		Debug:            Version == "development",
		HttpWriteTimeout: 120,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	slog.Info("server started")

	<-quit

	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

func setupLogger(config *configuration.Config, version string) {
	validLevels := []string{"debug", "info", "warn", "error"}

	if !slices.IsInSlice(config.LogLevel, validLevels) {
		config.LogLevel = "info"
	}

	level := slog.LevelInfo

	switch config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: version == "development",
	})))
}

/*
probePinata makes a single capped listing call so a bad JWT or an
unreachable upstream shows up in the logs at startup instead of on the
first real request. The server still starts either way.
*/
func probePinata() {
	var (
		err error
	)

	retrier.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		if _, err = pinataClient.ListGroups(ctx, ""); err != nil {
			slog.Error("failed to reach pinata. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		slog.Warn("pinata is unreachable. continuing startup anyway", "error", err)
		return
	}

	slog.Info("pinata reachable")
}
