package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"institute-backend/internal/controller/file"
	"institute-backend/internal/database"
	"institute-backend/internal/mailer"
)

// MyServer bundles the shared collaborators every handler group needs.
type MyServer struct {
	DB       *database.DBinstanceStruct
	Storage  file.StorageClient
	Notifier mailer.Notifier
}

// NewServer construct new http.Server instance wired to the database,
// optional cloud storage, and optional mail provider.
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	var storage file.StorageClient
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		client, err := file.NewCloudStorageClient(bucket)
		if err != nil {
			log.Fatalf("Cloud storage failed to initialized: %s", err)
		}
		storage = client
	} else {
		log.Println("STORAGE_BUCKET not set, storing file bytes in the database")
	}

	var notifier mailer.Notifier
	if m := mailer.NewFromEnv(); m != nil {
		notifier = m
	}

	s := &MyServer{
		DB:       db,
		Storage:  storage,
		Notifier: notifier,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
