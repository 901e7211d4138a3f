package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/JonMunkholm/dealerlocator/internal/config"
	"github.com/JonMunkholm/dealerlocator/internal/dealer"
	"github.com/JonMunkholm/dealerlocator/internal/ingest"
	"github.com/JonMunkholm/dealerlocator/internal/logging"
)

var errNoSource = errors.New("no dealer source: set --source or DEALERS_SOURCE")

// load runs one ingestion of the configured source.
func load(c *cli.Context) (*ingest.Result, error) {
	ref := c.String("source")
	if ref == "" {
		return nil, errNoSource
	}

	var s3 config.S3Config
	if err := config.LoadSection(&s3); err != nil {
		return nil, fmt.Errorf("s3 settings: %w", err)
	}

	src, err := ingest.Open(ref, ingest.Options{
		Timeout:  c.Duration("timeout"),
		MaxBytes: c.Int64("max-bytes"),
		S3: ingest.S3Options{
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Region:    s3.Region,
			UseSSL:    s3.UseSSL,
		},
	})
	if err != nil {
		return nil, err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if d := c.Duration("timeout"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	logger := logging.New(c.App.ErrWriter, c.String("log-level"), "text")
	return ingest.NewPipeline(logger).Ingest(ctx, src)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list dealers matching a search",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "q", Usage: "search text over name, city, state and contact"},
			&cli.StringFlag{Name: "type", Usage: "all, ai or api", Value: "all"},
			&cli.StringFlag{Name: "sort", Usage: "key-direction, e.g. city-descending", Value: "state-ascending"},
		},
		Action: func(c *cli.Context) error {
			cat, err := dealer.ParseCategory(c.String("type"))
			if err != nil {
				return err
			}
			key, dir, err := dealer.ParseSort(c.String("sort"))
			if err != nil {
				return err
			}

			res, err := load(c)
			if err != nil {
				return err
			}

			dealers := dealer.Query(res.Repository.All(), dealer.Params{
				Search:    c.String("q"),
				Category:  cat,
				Sort:      key,
				Direction: dir,
			})

			out := c.App.Writer
			if c.Bool("json") {
				if dealers == nil {
					dealers = []dealer.Dealer{}
				}
				return printJSON(out, dealers)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCITY\tSTATE\tCONTACT\tAI\tAPI")
			for _, d := range dealers {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					d.ID, d.Name, d.City, d.State, d.Contact, yesNo(d.AIDealer), yesNo(d.APIDealer))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d of %d dealers\n", len(dealers), res.Repository.Len())
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show one dealer",
		ArgsUsage: "ID",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return errors.New("show needs a dealer ID")
			}

			res, err := load(c)
			if err != nil {
				return err
			}
			d, err := res.Repository.Get(id)
			if err != nil {
				return err
			}

			out := c.App.Writer
			if c.Bool("json") {
				return printJSON(out, d)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "ID:\t%s\n", d.ID)
			fmt.Fprintf(tw, "Name:\t%s\n", d.Name)
			fmt.Fprintf(tw, "Address:\t%s\n", orDash(d.Address))
			fmt.Fprintf(tw, "City:\t%s\n", orDash(d.City))
			fmt.Fprintf(tw, "State:\t%s\n", d.State)
			fmt.Fprintf(tw, "Contact:\t%s\n", orDash(d.Contact))
			fmt.Fprintf(tw, "Contact person:\t%s\n", orDash(d.ContactPerson))
			fmt.Fprintf(tw, "AI dealer:\t%s\n", yesNo(d.AIDealer))
			fmt.Fprintf(tw, "API dealer:\t%s\n", yesNo(d.APIDealer))
			return tw.Flush()
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func coverageCommand() *cli.Command {
	return &cli.Command{
		Name:  "coverage",
		Usage: "count dealers per state",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "all, ai or api", Value: "all"},
			&cli.BoolFlag{Name: "all", Usage: "include states without dealers"},
		},
		Action: func(c *cli.Context) error {
			cat, err := dealer.ParseCategory(c.String("type"))
			if err != nil {
				return err
			}

			res, err := load(c)
			if err != nil {
				return err
			}

			cov := dealer.AggregateCanonical(dealer.FilterCategory(res.Repository.All(), cat))
			rows := cov.Regions
			if !c.Bool("all") {
				rows = cov.Active()
			}

			out := c.App.Writer
			if c.Bool("json") {
				if rows == nil {
					rows = []dealer.RegionCount{}
				}
				return printJSON(out, struct {
					Type      dealer.Category      `json:"type"`
					Regions   []dealer.RegionCount `json:"regions"`
					Total     int                  `json:"total"`
					Unmatched int                  `json:"unmatched"`
				}{cat, rows, cov.Total(), cov.Unmatched})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STATE\tDEALERS\tMARKET")
			for _, rc := range rows {
				market := "active"
				if rc.Count == 0 {
					market = "potential"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", rc.Region, rc.Count, market)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d active of %d states, %d dealers", len(cov.Active()), len(cov.Regions), cov.Total())
			if cov.Unmatched > 0 {
				fmt.Fprintf(out, ", %d with unrecognized state", cov.Unmatched)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "load the source and report ingestion statistics",
		Action: func(c *cli.Context) error {
			res, err := load(c)
			if err != nil {
				return err
			}
			st := res.Stats

			out := c.App.Writer
			if c.Bool("json") {
				return printJSON(out, st)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Rows:\t%d\n", st.Rows)
			fmt.Fprintf(tw, "Admitted:\t%d\n", st.Admitted)
			fmt.Fprintf(tw, "Rejected:\t%d (missing name %d, missing state %d)\n", st.Rejected, st.MissingName, st.MissingState)
			fmt.Fprintf(tw, "Duplicate IDs:\t%s\n", list(st.Duplicates))
			fmt.Fprintf(tw, "Unrecognized states:\t%d", st.Unmatched)
			if st.Unmatched > 0 {
				fmt.Fprintf(tw, " (%s)", list(st.UnmatchedNames))
			}
			fmt.Fprintln(tw)
			fmt.Fprintf(tw, "Missing columns:\t%s\n", list(st.MissingColumns))
			return tw.Flush()
		},
	}
}

func list(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
