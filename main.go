package main

import (
	"log"

	"github.com/joho/godotenv"

	"werkagent/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using process environment")
	}

	cmd.Execute()
}
