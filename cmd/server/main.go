package main

import (
	"flag"
	"log"
	"os"

	"github.com/alex-user-go/tripsearch/internal/app"
)

func main() {
	configPath := flag.String("config", os.Getenv("TRIPS_CONFIG"), "path to YAML config file")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
