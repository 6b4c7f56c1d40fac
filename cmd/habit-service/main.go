package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/DivyanshuSingh0/HabitSphere/habitservice"
)

func main() {
	// Optional db-driver flag override (postgres | sqlite)
	dbDriver := flag.String("db-driver", "", "Override HABITSPHERE_DB_DRIVER (postgres, sqlite)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	if err := habitservice.Run(habitservice.Options{DBDriver: *dbDriver}); err != nil {
		os.Exit(1)
	}
}
