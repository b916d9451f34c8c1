package main

import (
	"log"

	"github.com/HimanshuNaik19/Blog-Platform/config"
	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/routes"
	"github.com/HimanshuNaik19/Blog-Platform/storage"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{})
	store := buildStore(cfg)

	r := routes.SetupRouter(db, store)

	utils.Sugar.Infof("Starting server on port %s (storage=%s, graceful)", cfg.AppPort, cfg.StorageMode)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

// buildStore selects the storage adapter for the post and comment
// collections. All three backends satisfy the same contract, so everything
// above this point is unaware of the choice.
func buildStore(cfg config.AppConfig) storage.Adapter {
	switch cfg.StorageMode {
	case config.StorageModeFile, "":
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("failed to initialize file storage: %v", err)
		}
		return store
	case config.StorageModeRedis:
		return storage.NewRedisStore(utils.GetRedis())
	case config.StorageModeRemote:
		if cfg.RemoteBaseURL == "" {
			log.Fatal("STORAGE_REMOTE_BASE_URL must be set for remote storage mode")
		}
		return storage.NewRemoteStore(cfg.RemoteBaseURL, cfg.RemoteToken)
	default:
		log.Fatalf("unsupported storage mode: %s", cfg.StorageMode)
		return nil
	}
}
