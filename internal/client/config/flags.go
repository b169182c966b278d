package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/flagx"
)

// parseFlags overlays values given on the command line. Only -a, -f and -i
// are looked at so that -c/-config does not trip the flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the LoveLetters API")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "local session database file")
	requestTimeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
