package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rotaops/conflict-api-go/pkg/auth"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run keygen.go <keyName>")
		os.Exit(1)
	}

	if os.Getenv("API_MASTER_SECRET") == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	name := os.Args[1]
	apiKey := auth.GenerateHMACKey(name)
	fmt.Printf("Generated Key for %s:\n%s\n", name, apiKey)
}
