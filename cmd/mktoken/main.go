// Command mktoken mints a bearer token for local testing.
//
//	JWT_SECRET=... go run ./cmd/mktoken -username alice
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rlcurrall/collection-example/pkg/token"
)

func main() {
	username := flag.String("username", "", "username claim to embed in the token")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	signed, err := token.NewManager(secret).Sign(token.Identity{Username: *username})
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Println(signed)
}
