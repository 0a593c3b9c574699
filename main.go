package main

import (
	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Load a local .env if present, for GOOGLE_API_KEY and friends.
	_ = godotenv.Load()

	app, err := app.NewApp(config.CONFIG_PATH)
	if err != nil {
		panic(err)
	}

	err = app.Run()
	if err != nil {
		panic(err)
	}
}
