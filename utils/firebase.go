// utils/firebase.go
package utils

import (
	"context"

	"librarium/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client.
// Push stays disabled when no credentials file is configured.
func FirebaseInit() {
	path := config.AppConfig.FirebaseCredentialsFile
	if path == "" {
		GetLogger().Info("firebase: no credentials configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(path)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		GetLogger().Fatal("firebase: error initializing app", zap.Error(err))
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		GetLogger().Fatal("firebase: error getting Messaging client", zap.Error(err))
	}

	FCMClient = client
}
