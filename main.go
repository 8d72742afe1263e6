package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"stride-store/app"
	"stride-store/db"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// .env is for development; production sets variables directly.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Info(".env file not found, using system environment variables")
		}
	}

	handler, err := app.Initialize(log)
	if err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := "0.0.0.0:" + port
	log.WithField("addr", addr).Info("server starting")

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}
}
