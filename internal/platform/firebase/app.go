// Package firebase bootstraps the Firebase Admin SDK clients shared by the server.
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// Config holds Firebase initialization settings.
type Config struct {
	ProjectID string
}

// Clients bundles the Firebase clients used by the application.
type Clients struct {
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// InitializeClients creates the Auth and Firestore clients.
// Credentials come from the environment (ADC or emulator hosts).
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: cfg.ProjectID})
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	return &Clients{Auth: authClient, Firestore: fsClient}, nil
}

// Close releases client resources. Safe to call with a nil Firestore client.
func (c *Clients) Close() error {
	if c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
