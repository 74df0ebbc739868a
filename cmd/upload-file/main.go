package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/fileupload/internal/config"
	"github.com/Lllllllleong/fileupload/internal/services"
)

var (
	uploaderInstance *services.UploaderFunction
	once             sync.Once
	initErr          error
	logLevel         = new(slog.LevelVar)
)

func init() {
	// --- Set up structured logging ---
	// The level is raised or lowered from LOG_LEVEL once config is loaded.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// "UploadFile" is the entry point name we'll see in GCP.
	functions.HTTP("UploadFile", uploadFile)
}

// main is required by the Go Functions Framework.
func main() {}

// uploadFile is the HTTP handler.
func uploadFile(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		uploaderInstance, initErr = newUploader(context.Background())
	})
	if initErr != nil {
		slog.Error("CRITICAL: Uploader initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	uploaderInstance.ServeHTTP(w, r)
}

func newUploader(ctx context.Context) (*services.UploaderFunction, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logLevel.Set(cfg.LogLevel)
	return services.NewUploader(ctx, cfg)
}
