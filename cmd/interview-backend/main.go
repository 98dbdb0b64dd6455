package main

import (
	"context"
	"flag"
	"log"

	"github.com/futig/interview-bot/internal/builder"
)

func main() {
	env := flag.String("env", "local", "environment name, selects the .env file")
	flag.Parse()

	app, err := builder.Build(*env)
	if err != nil {
		log.Fatal("Failed to build application:", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatal("Application error:", err)
	}
}
