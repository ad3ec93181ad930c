package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/alex-user-go/tripsearch/internal/concierge"
	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run a search and show the filtered listing",
		Flags: slices.Concat(queryFlags(), filterFlags(), []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "Maximum listings to show (0 for all)", Value: 10},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			q, err := composeQuery(c)
			if err != nil {
				return err
			}
			f, err := composeFilters(c)
			if err != nil {
				return err
			}

			resp, err := newClient(c.String("server")).search(ctx, q, f)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			renderSearch(c.Root().Writer, q, resp, c.Int("limit"))
			return nil
		},
	}
}

func linkCommand() *cli.Command {
	return &cli.Command{
		Name:  "link",
		Usage: "Print the shareable search link for a query",
		Flags: slices.Concat(queryFlags(), filterFlags(), []cli.Flag{
			&cli.StringFlag{Name: "results-file", Usage: "Embed a results JSON payload in the link"},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			q, err := composeQuery(c)
			if err != nil {
				return err
			}
			f, err := composeFilters(c)
			if err != nil {
				return err
			}

			link := querycodec.EncodeURL(strings.TrimRight(c.String("server"), "/")+"/search", q)
			extra := search.FilterValues(f)
			if path := c.String("results-file"); path != "" {
				payload, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read results file: %w", err)
				}
				if _, err := types.ParseResultSet(payload); err != nil {
					return fmt.Errorf("results file is not a result set: %w", err)
				}
				extra = querycodec.WithEmbedded(extra, payload)
			}
			if len(extra) > 0 {
				link += "&" + extra.Encode()
			}

			fmt.Fprintln(c.Root().Writer, link)
			return nil
		},
	}
}

func dealsCommand() *cli.Command {
	return &cli.Command{
		Name:  "deals",
		Usage: "Show the current Treasure Hunt and What's Hot deals",
		Action: func(ctx context.Context, c *cli.Command) error {
			cl := newClient(c.String("server"))
			hunt, err := cl.treasureHunt(ctx)
			if err != nil {
				return fmt.Errorf("failed to load treasure hunt: %w", err)
			}
			hot, err := cl.whatsHot(ctx)
			if err != nil {
				return fmt.Errorf("failed to load what's hot: %w", err)
			}
			renderDeals(c.Root().Writer, hunt, hot)
			return nil
		},
	}
}

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to the travel concierge (type \"exit\" to leave)",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "latency", Usage: "Simulated reply latency", Value: concierge.DefaultLatency},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runChat(ctx, c)
		},
	}
}

// runChat reads user lines until EOF or "exit", printing each reply as the
// widget delivers it.
func runChat(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	replies := make(chan concierge.Message, 1)
	w := concierge.NewWidget(c.Duration("latency"), func(m concierge.Message) {
		replies <- m
	})
	defer w.Close()

	for _, m := range w.Transcript() {
		renderMessage(out, m)
	}

	scanner := bufio.NewScanner(c.Root().Reader)
	for {
		fmt.Fprint(out, promptStyle.Render("you>")+" ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}
		if !w.Send(line) {
			continue
		}

		fmt.Fprintln(out, metaStyle.Render("typing..."))
		select {
		case m := <-replies:
			renderMessage(out, m)
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.Duration("latency") + 5*time.Second):
			return fmt.Errorf("concierge did not reply")
		}
	}
}
