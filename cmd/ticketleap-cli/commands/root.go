package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ticketleap-bulk/lib/configutil"
	"ticketleap-bulk/lib/scrapers/ticketleap"
	"ticketleap-bulk/lib/serviceutil"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// BaseUrl is the public site used to log in, defaults to
	// https://www.ticketleap.com.
	BaseUrl string `json:"base_url"`
	// DumpDir is where the html of rejected form submissions lands.
	DumpDir string `json:"dump_dir"`
}

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "ticketleap-cli",
	Short: "ticketleap-cli drives the ticketleap admin panel in bulk: events, dates and ticket types.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initTelemetry(cmd.Context(), *verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and http transcripts.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readConfig() Config {
	// .env is optional, credentials may come from the real environment
	godotenv.Load()

	cfg, err := configutil.ReadConfig[Config]("ticketleap.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}
	if v := os.Getenv("TICKETLEAP_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("TICKETLEAP_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if cfg.Username == "" || cfg.Password == "" {
		serviceutil.Fatal(
			"failed to load credentials",
			fmt.Errorf("set username/password in ticketleap.json5 or TICKETLEAP_USERNAME/TICKETLEAP_PASSWORD"),
		)
	}
	return cfg
}

// createClient logs into the admin panel, dying loudly on failure so
// commands can assume a working session.
func createClient(ctx context.Context) *ticketleap.Client {
	cfg := readConfig()

	loginCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	client, err := ticketleap.NewClient(loginCtx, ticketleap.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		DumpDir: cfg.DumpDir,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	err = client.Login(loginCtx, cfg.Username, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to login to ticketleap", err)
	}
	return client
}

// parseDateRanges reads "<start>/<end>" pairs given in the minute
// truncated iso form, e.g. 2024-05-13T14:00/2024-05-13T16:00.
func parseDateRanges(args []string) ([]ticketleap.DateRange, error) {
	var ranges []ticketleap.DateRange
	for _, arg := range args {
		startText, endText, found := strings.Cut(arg, "/")
		if !found {
			return nil, fmt.Errorf("date range %q must look like <start>/<end>", arg)
		}
		start, err := ticketleap.ParseDateKey(startText)
		if err != nil {
			return nil, err
		}
		end, err := ticketleap.ParseDateKey(endText)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, ticketleap.DateRange{Start: start, End: end})
	}
	return ranges, nil
}

// exitSubmit turns a soft rejection into a nonzero exit so shell
// scripts notice. The details were already logged and dumped.
func exitSubmit(result ticketleap.SubmitResult) {
	if !result.Ok {
		os.Exit(1)
	}
}
