package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"college-portal.backend/pkg/crypto"
)

const defaultCost = 10

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
	getenvFn       = os.Getenv
)

func resolvePassword(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("usage: hash-gen <password>")
	}
	return args[0], nil
}

// resolveCost reads BCRYPT_COST the way the server does
func resolveCost() int {
	if value := getenvFn("BCRYPT_COST"); value != "" {
		if cost, err := strconv.Atoi(value); err == nil {
			return cost
		}
	}
	return defaultCost
}

func generateHash(password string, cost int) (string, error) {
	return crypto.NewHasher(cost).Hash(password)
}

func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	cost := resolveCost()
	printfFn("Generating hash with cost %d\n", cost)

	hash, err := generateHashFn(password, cost)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
