package main

import (
	"Munshi/Controllers"
	"Munshi/CronJobs"
	"Munshi/FiberConfig"
	"Munshi/Models"
	"Munshi/Notifications"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Models.Connect()
	Controllers.RegisterAdmin()

	go func() {
		if err := Notifications.InitFirebase(); err != nil {
			log.Println("Failed to initialize Firebase:", err)
		}
	}()

	refresher := CronJobs.NewSummaryRefresher(Models.DB, true, false)
	if err := refresher.Start(); err != nil {
		log.Printf("Failed to start summary refresher: %v", err)
	}
	defer refresher.Stop()

	FiberConfig.FiberConfig()
}
