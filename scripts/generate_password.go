// scripts/generate_password.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}

	password := os.Args[1]
	cfg := config.FromEnv()
	manager := auth.NewPasswordManager(cfg)

	if err := manager.ValidatePassword(password); err != nil {
		log.Fatal("Password rejected: ", err)
	}

	hash, err := manager.HashPassword(password)
	if err != nil {
		log.Fatal("Error generating hash: ", err)
	}

	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Hash: %s\n", hash)

	if err := manager.VerifyPassword(password, hash); err != nil {
		log.Fatal("Hash verification failed: ", err)
	}

	fmt.Println("✅ Hash verified successfully!")
}
