package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/searchflow"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	delay      time.Duration
	logFile    string
	origin     string
	distinctID string
	noEvents   bool

	bandFlag int
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "nomato-search",
	Short: "Search Nomato restaurants from the terminal",
	Long: `nomato-search is an interactive restaurant search against a running Nomato API.

Type to search, press tab to move to the price filters, 0-5 to toggle a
price band and esc to quit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.InitLoggerTo(logFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		config.SyncLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run one search and print the results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context(), args[0])
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", config.GetEnv("NOMATO_API_URL", "http://localhost:8080"), "Nomato API base URL")
	rootCmd.PersistentFlags().DurationVar(&delay, "delay", searchflow.DefaultDelay, "debounce delay between keystrokes and search")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "nomato-search.log", "log file (the terminal is taken by the UI)")
	rootCmd.PersistentFlags().StringVar(&origin, "origin", "terminal", "origin reported with analytics events")
	rootCmd.PersistentFlags().StringVar(&distinctID, "distinct-id", "", "analytics id (random per run when empty)")
	rootCmd.PersistentFlags().BoolVar(&noEvents, "no-events", false, "do not send analytics events")

	queryCmd.Flags().IntVar(&bandFlag, "band", -1, "price band 0-5 to filter by")
	queryCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "give up after this long")
	rootCmd.AddCommand(queryCmd)
}

func newAnalytics() (searchflow.Analytics, func()) {
	if noEvents {
		return searchflow.NopAnalytics{}, func() {}
	}
	id := distinctID
	if id == "" {
		id = uuid.NewString()
	}
	a := searchflow.NewHTTPAnalytics(apiURL, id, nil, config.Log)
	return a, a.Wait
}

func runInteractive() error {
	analytics, flush := newAnalytics()
	defer flush()

	var program *tea.Program
	flow := searchflow.New(searchflow.NewHTTPFetcher(apiURL, nil), searchflow.Options{
		Delay:     delay,
		Origin:    origin,
		Analytics: analytics,
		Log:       config.Log,
		OnChange: func(s searchflow.Snapshot) {
			// Snapshots can be published from inside Update; sending from
			// the same goroutine would block the event loop.
			if program != nil {
				go program.Send(snapshotMsg(s))
			}
		},
	})
	defer flow.Close()

	program = tea.NewProgram(newModel(flow), tea.WithAltScreen())
	config.Log.Infow("search client started", "api", apiURL)
	_, err := program.Run()
	return err
}

func runQuery(ctx context.Context, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	analytics, flush := newAnalytics()
	defer flush()

	settled := make(chan searchflow.Snapshot, 1)
	flow := searchflow.New(searchflow.NewHTTPFetcher(apiURL, nil), searchflow.Options{
		Origin:    origin,
		Analytics: analytics,
		Log:       config.Log,
		OnChange: func(s searchflow.Snapshot) {
			if s.Settled != query || s.State == searchflow.StateLoading {
				return
			}
			select {
			case settled <- s:
			default:
			}
		},
	})
	defer flow.Close()

	if bandFlag >= 0 {
		if err := flow.ToggleBand(bandFlag); err != nil {
			return err
		}
	}
	flow.Search(query)

	var snap searchflow.Snapshot
	select {
	case snap = <-settled:
	case <-ctx.Done():
		return fmt.Errorf("search timed out: %w", ctx.Err())
	}

	switch snap.State {
	case searchflow.StateFailed:
		return fmt.Errorf("search failed: %w", snap.Err)
	case searchflow.StateEmptyNoResults:
		fmt.Println(searchflow.NotFoundMessage)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRATING\tPRICE\tADDRESS")
	for _, rec := range snap.Filtered {
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\n", rec.Name(), rec.Rating(), priceLabel(rec), rec.Address())
	}
	return w.Flush()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
