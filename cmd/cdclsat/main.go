// Command cdclsat is a CDCL SAT solver CLI.
package main

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/kalbasit/cdclsat/internal/cli"
)

func main() {
	log.SetFormatter(&log.TextFormatter{})

	if err := cli.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			log.Error(exitErr.Err)
			os.Exit(exitErr.Code)
		}
		// cobra's own argument/usage errors.
		log.Error(err)
		os.Exit(2)
	}
}
