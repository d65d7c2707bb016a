package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and storage client
type App struct {
	FirebaseApp   *firebase.App
	StorageClient *storage.Client
}

// InitFirebase initializes the Firebase application and storage client
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	log.Println("Firebase app and storage client initialized successfully!")
	return &App{FirebaseApp: firebaseApp, StorageClient: storageClient}, nil
}

// Storage implements the media store over Firebase Storage buckets
type Storage struct {
	client *storage.Client
}

// NewStorage creates a Storage backed by the given Firebase storage client
func NewStorage(client *storage.Client) *Storage {
	return &Storage{client: client}
}

// Upload writes data to bucket/path and returns the stored path. When
// overwrite is false the write carries a does-not-exist precondition, so
// uploading over an existing object fails instead of replacing it.
func (s *Storage) Upload(ctx context.Context, bucket, path string, data []byte, overwrite bool) (string, error) {
	bucketHandle, err := s.client.Bucket(bucket)
	if err != nil {
		return "", fmt.Errorf("open bucket %s: %w", bucket, err)
	}

	object := bucketHandle.Object(path)
	if !overwrite {
		object = object.If(gcs.Conditions{DoesNotExist: true})
	}

	writer := object.NewWriter(ctx)
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("write object %s/%s: %w", bucket, path, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s/%s: %w", bucket, path, err)
	}

	return path, nil
}

// PublicURL returns the public download URL for a stored object. No
// network call is made; the URL is derived from the bucket and path.
func (s *Storage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, path)
}
