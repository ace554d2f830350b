package utils

import (
	"context"
	"log"

	"advisorly/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Reminder
// pushes are optional: without a credentials file the client stays nil and
// senders no-op.
func FirebaseInit() {
	credsFile := config.AppConfig.FCMCredentialsFile
	if credsFile == "" {
		log.Println("firebase: no credentials file configured, push reminders disabled")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credsFile))
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
