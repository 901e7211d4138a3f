// Command dealerctl loads a dealer sheet and answers list, lookup and
// coverage queries from the terminal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional here; explicit flags and env vars win.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dealerctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dealerctl",
		Usage: "query a dealer sheet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "dealer data: file path, http(s)://, s3://bucket/key or postgres://...?table=name",
				EnvVars: []string{"DEALERS_SOURCE", "DEALERS_CSV"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print JSON instead of tables",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "bound on fetching the source",
				Value:   30 * time.Second,
				EnvVars: []string{"SOURCE_FETCH_TIMEOUT"},
			},
			&cli.Int64Flag{
				Name:    "max-bytes",
				Usage:   "size cap for byte sources, 0 for none",
				Value:   32 << 20,
				EnvVars: []string{"SOURCE_MAX_BYTES"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "stderr log level: debug, info, warn, error",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			showCommand(),
			coverageCommand(),
			checkCommand(),
		},
	}
}
