package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	objfs "github.com/Jumpaku/go-objfs"
	"github.com/Jumpaku/go-objfs/drivetree"
	"github.com/Jumpaku/go-objfs/instrument"
	"github.com/Jumpaku/go-objfs/memtree"
	"github.com/Jumpaku/go-objfs/objfsmust"
)

func newDriveContent() *drivetree.Content {
	ctx := context.Background()

	client, err := google.DefaultClient(ctx,
		drive.DriveReadonlyScope,
	)
	if err != nil {
		log.Panic(err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.Panic(err)
	}
	return drivetree.New(driveService)
}

func main() {
	// Build a small in-memory tree:
	//
	//	Internal storage
	//	├── Photos
	//	│   ├── trip.jpg
	//	│   └── Raw
	//	└── notes.txt
	store := memtree.New("Internal storage")
	photosID, _ := store.AddFolder(store.RootID(), "Photos")
	_, _ = store.AddFile(photosID, "trip.jpg")
	_, _ = store.AddFolder(photosID, "Raw")
	_, _ = store.AddFile(store.RootID(), "notes.txt")

	// Decorate the connection with structured logging and metrics.
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Panic(err)
	}
	defer logger.Sync()
	registry := prometheus.NewRegistry()
	content := instrument.WithMetrics(instrument.WithLogging(store, logger), registry)

	root := objfsmust.ObjectByID(content, store.RootID())

	// Resolve paths relative to the root.
	trip := root.ByPath("Photos/trip.jpg")
	fmt.Printf("resolved %s (ID: %s)\n", trip.Name(), trip.ID())

	raw := root.ByPath("Photos/Raw/.")
	fmt.Printf("resolved %s (ID: %s)\n", raw.Name(), raw.ID())

	back := raw.ByPath("../..")
	fmt.Printf("resolved %s (ID: %s)\n", back.Name(), back.ID())

	// List only the folders directly under the root.
	for _, folder := range root.SubFolders() {
		fmt.Printf("folder: %s\n", folder.Name())
	}

	// Failed resolutions report one of the objfs error kinds.
	if _, err := root.Unwrap().ByPath("Photos/missing.jpg"); errors.Is(err, objfs.ErrNotFound) {
		fmt.Printf("missing child: %v\n", err)
	}
	if _, err := root.Unwrap().ByPath("/Photos"); errors.Is(err, objfs.ErrAbsolutePath) {
		fmt.Printf("absolute path rejected: %v\n", err)
	}
	if _, err := root.Unwrap().ByPath(".."); errors.Is(err, objfs.ErrPropertyLookup) {
		fmt.Printf("root has no parent: %v\n", err)
	}

	// The same resolver runs against a real Google Drive.
	if os.Getenv("OBJFS_EXAMPLE_DRIVE") != "" {
		driveRoot, err := newDriveContent().Root()
		if err != nil {
			log.Fatal(err)
		}
		it, err := driveRoot.Children()
		if err != nil {
			log.Fatal(err)
		}
		for {
			child, err := it.Next()
			if err == objfs.Done {
				break
			}
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%s (ID: %s)\n", child.Name(), child.ID())
		}
	}
}
