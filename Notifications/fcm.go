package Notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"Munshi/Models"
	"Munshi/Reports"
)

// Global Firebase client
var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase sets up the Cloud Messaging client from the service account
// file named by FIREBASE_CREDENTIALS. Call once at startup; when the variable
// is unset, notifications stay disabled and senders return an error that
// callers log and ignore.
func InitFirebase() error {
	credentials := os.Getenv("FIREBASE_CREDENTIALS")
	if credentials == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS not set, push notifications disabled")
	}

	opt := option.WithCredentialsFile(credentials)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// SendPaymentRecorded notifies the user's devices that a vendor payment was
// saved.
func SendPaymentRecorded(db *gorm.DB, userID uint, vendorName string, amount float64) error {
	return sendToUser(db, userID,
		"Payment Recorded",
		fmt.Sprintf("Paid %s to %s", Reports.FormatAmount(amount), vendorName),
		map[string]string{
			"type":   "vendor_payment",
			"vendor": vendorName,
			"amount": strconv.FormatFloat(amount, 'f', 2, 64),
		})
}

// SendSummaryReady notifies the user that a monthly summary finished
// recomputing.
func SendSummaryReady(db *gorm.DB, userID uint, year, month int) error {
	return sendToUser(db, userID,
		"Monthly Summary Ready",
		fmt.Sprintf("Your summary for %s %d is up to date", Reports.MonthName(month), year),
		map[string]string{
			"type":   "monthly_summary",
			"period": Models.PeriodKey(year, month),
		})
}

func sendToUser(db *gorm.DB, userID uint, title, body string, data map[string]string) error {
	if firebaseClient == nil {
		return fmt.Errorf("firebase client not initialized")
	}

	var tokens []Models.FCMToken
	if err := db.Where("user_id = ?", userID).Find(&tokens).Error; err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token.Value,
			Data:  data,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
		}

		if _, err := firebaseClient.Send(ctx, message); err != nil {
			log.Printf("Error sending notification to token %d: %v", token.ID, err)
		}
	}
	return nil
}
