/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/docchat-be/cmd"
)

func main() {
	// Missing .env is fine; the environment may already be set.
	godotenv.Load()
	cmd.Execute()
}
