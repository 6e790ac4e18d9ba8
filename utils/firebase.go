// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"lexmarket/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseMessaging initializes the Firebase App and returns its Messaging client.
func FirebaseMessaging(ctx context.Context) (*messaging.Client, error) {
	credentials := config.AppConfig.FirebaseCredentialsFile
	if credentials == "" {
		return nil, fmt.Errorf("firebase: FIREBASE_CREDENTIALS_FILE is not set")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentials))
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	return client, nil
}
