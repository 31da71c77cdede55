// astroctl - operator console for the Astrology Booklet backend
package main

import (
	"github.com/astrobooklet/astroctl/pkg/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Local .env files carry backend settings in development; absence is
	// not an error.
	_ = godotenv.Load()

	cli.Execute()
}
