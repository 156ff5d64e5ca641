// Command poorify serves the poorify API: Google sign-in and the session-gated routes.
//
// Configuration comes from the environment, and from a .env file in the working directory;
// cf. ranger.NewConfig.
package main

import (
	"log"
	"os"

	"github.com/poorify/poorify/ranger"
)

func main() {
	rng, err := ranger.New(ranger.NewConfig())
	if err != nil {
		log.Fatalf("could not start poorify: %s", err)
	}

	if err := rng.Guide(); err != nil {
		rng.Logger().Fatal(err.Error(), nil)
		os.Exit(1)
	}
}
