package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		// .env is optional in production; variables may come from the environment.
		log.Println("No .env file found, relying on environment variables.")
	}

	if os.Getenv("MONGO_URI") == "" {
		log.Fatal("MONGO_URI is not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set")
	}
}
