package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spoorzoeker/spoor-cli/internal/api"
	"github.com/spoorzoeker/spoor-cli/internal/cache"
	"github.com/spoorzoeker/spoor-cli/internal/config"
	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/output"
	"github.com/spoorzoeker/spoor-cli/internal/server"
	"github.com/spoorzoeker/spoor-cli/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spoor",
	Short: "CLI for Dutch railway (NS) real-time travel information",
	Long: `spoor is a command-line interface for NS real-time travel information
from the NS API portal.

Features:
  - Departure and arrival boards at any station
  - Journey planning and train details with all stops
  - Station search by name or geographic coordinates
  - Rolling stock composition per train
  - Live train positions, animated on a map
  - JSON output for scripting and a small HTTP API

An NS API portal subscription key is required; set NS_API_KEY or
pass --api-key.

Quick Start:
  1. Launch TUI:               spoor (or spoor tui)
  2. Search for a station:     spoor search Utrecht
  3. Show departures:          spoor departures UT
  4. Plan a trip:              spoor plan UT ASD
  5. Find nearby stations:     spoor nearby 52.089:5.110
  6. Show a train:             spoor journey 3034
  7. Follow a train live:      spoor follow 3034`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig  string
	flagAPIKey  string
	flagDate    string
	flagTime    string
	flagJSON    bool
	flagRawJSON bool
	flagColor   string
	flagNoCache bool
	flagVerbose bool
)

// Command flags
var (
	flagMax         int
	flagLimit       int
	flagCategory    []string
	flagDirection   string
	flagShowVia     bool
	flagWatch       bool
	flagVia         string
	flagArrival     bool
	flagActive      bool
	flagType        string
	flagStation     string
	flagTrain       string
	flagAddr        string
	flagFrameRate   int
	flagPollEvery   time.Duration
	flagStaleAfter  time.Duration
	flagSpeedThresh float64
)

// cfg is the loaded configuration with flag overrides applied.
var cfg *config.Config

func init() {
	// Add subcommands
	rootCmd.AddCommand(departuresCmd)
	rootCmd.AddCommand(arrivalsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(journeyCmd)
	rootCmd.AddCommand(materialCmd)
	rootCmd.AddCommand(disruptionsCmd)
	rootCmd.AddCommand(vehiclesCmd)
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultPath()+")")
	pf.StringVar(&flagAPIKey, "api-key", "", "NS API portal subscription key (overrides NS_API_KEY)")
	pf.StringVarP(&flagDate, "date", "d", "", "Date (DD-MM-YYYY or YYYY-MM-DD)")
	pf.StringVarP(&flagTime, "time", "t", "", "Time (HH:MM)")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	pf.BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	pf.StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log API requests to stderr")

	// Board flags
	for _, c := range []*cobra.Command{departuresCmd, arrivalsCmd} {
		c.Flags().IntVarP(&flagMax, "max", "n", 40, "Maximum number of trains")
		c.Flags().StringSliceVarP(&flagCategory, "category", "c", nil, "Only these category groups ("+strings.Join(models.CategoryGroups, ",")+")")
		c.Flags().StringVar(&flagDirection, "direction", "", "Filter by direction (substring match)")
		c.Flags().BoolVar(&flagShowVia, "via", false, "Show route stations")
		c.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: refresh every 30 seconds")
	}

	searchCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Maximum number of stations")
	nearbyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 5, "Maximum number of stations")

	planCmd.Flags().StringVar(&flagVia, "via", "", "Travel via this station")
	planCmd.Flags().BoolVar(&flagArrival, "arrive", false, "Treat --date/--time as the arrival time")

	journeyCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: refresh every 30 seconds")

	disruptionsCmd.Flags().BoolVar(&flagActive, "active", true, "Only disruptions in effect now")
	disruptionsCmd.Flags().StringVar(&flagType, "type", "", "DISRUPTION, MAINTENANCE or CALAMITY")
	disruptionsCmd.Flags().StringVar(&flagStation, "station", "", "Only disruptions affecting this station")

	vehiclesCmd.Flags().StringVar(&flagTrain, "train", "", "Only this train number")

	followCmd.Flags().IntVar(&flagFrameRate, "fps", 0, "Animation frames per second (overrides config)")
	followCmd.Flags().DurationVar(&flagPollEvery, "poll", 0, "Telemetry poll interval (overrides config)")
	followCmd.Flags().DurationVar(&flagStaleAfter, "stale-after", 0, "Flag the position as stale after this long without telemetry")
	followCmd.Flags().Float64Var(&flagSpeedThresh, "speed-threshold", 0, "Speed (km/h) below which the train is considered stopped")

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :<server.port>)")
}

// loadConfig reads config file and environment, then applies flags.
func loadConfig() error {
	c, err := config.Load(flagConfig, ".env")
	if err != nil {
		return err
	}
	if flagAPIKey != "" {
		c.API.Key = flagAPIKey
	}
	cfg = c
	return nil
}

// newLogger returns the stderr logger. Only warnings show unless --verbose.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// createClient creates an API client with common options
func createClient(log logrus.FieldLogger) (*api.Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := []api.ClientOption{
		api.WithLogger(log),
		api.WithAPIKey(cfg.API.Key),
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithTimeout(cfg.API.Timeout),
		api.WithStationCache(cache.NewMemo[[]models.Station](1, nil), cfg.API.StationTTL),
	}

	// Enable caching unless disabled
	if !flagNoCache && cfg.API.CacheTTL > 0 {
		opts = append(opts, api.WithDefaultCache(cfg.API.CacheTTL))
	}

	return api.NewClient(opts...)
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

var departuresCmd = &cobra.Command{
	Use:   "departures <station>",
	Short: "Show departures at a station",
	Long: `Show upcoming departures at a station.

The station may be a station code (UT), a UIC code (8400621) or a name;
names are resolved to the best matching station.

Category groups for --category:
  IC     - Intercity
  ICD    - Intercity direct
  INT    - International (ICE, Eurostar, NightJet, EuroCity)
  SPR    - Sprinter
  RE     - Regional and other operators' stopping trains
  OTHER  - Everything else

Examples:
  spoor departures UT
  spoor departures "Amsterdam Centraal" --category IC,ICD
  spoor departures UT --direction Zwolle
  spoor departures UT -d 2024-03-01 -t 08:00
  spoor departures UT --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd, args[0], false)
	},
}

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals <station>",
	Short: "Show arrivals at a station",
	Long: `Show upcoming arrivals at a station.

The station may be a station code, a UIC code or a name. The direction
filter matches the origin of arriving trains.

Examples:
  spoor arrivals ASD
  spoor arrivals ASD --direction Utrecht --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd, args[0], true)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for stations by name",
	Long: `Search for stations by name or code.

Example:
  spoor search Utrecht
  spoor search "den haag" --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby <lat>:<lon>",
	Short: "Search for stations near a location",
	Long: `Search for stations near a geographic location.

The location must be specified as latitude:longitude in decimal degrees.

Example:
  spoor nearby 52.089:5.110
  spoor nearby 52.379:4.900 --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runNearby,
}

var planCmd = &cobra.Command{
	Use:   "plan <from> <to>",
	Short: "Plan a trip between two stations",
	Long: `Plan a trip between two stations.

Examples:
  spoor plan UT ASD
  spoor plan Utrecht Groningen --via Zwolle
  spoor plan UT RTD -t 18:00 --arrive`,
	Args: cobra.ExactArgs(2),
	RunE: runPlan,
}

var journeyCmd = &cobra.Command{
	Use:   "journey <train_number>",
	Short: "Show all stops of a train",
	Long: `Show the stops of a train with times, delays and platforms.

Watch Mode:
  --watch, -w            Refresh every 30 seconds (full-screen mode)

Examples:
  spoor journey 3034
  spoor journey 3034 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runJourney,
}

var materialCmd = &cobra.Command{
	Use:   "material <train_number>",
	Short: "Show the rolling stock of a train",
	Long: `Show the composition of a train: its train units, seats and
facilities.

Example:
  spoor material 3034`,
	Args: cobra.ExactArgs(1),
	RunE: runMaterial,
}

var disruptionsCmd = &cobra.Command{
	Use:   "disruptions",
	Short: "Show disruptions and maintenance",
	Long: `Show current and planned disruptions.

Examples:
  spoor disruptions
  spoor disruptions --type MAINTENANCE --active=false
  spoor disruptions --station UT`,
	Args: cobra.NoArgs,
	RunE: runDisruptions,
}

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Show live train positions",
	Long: `Show the latest reported position, speed and heading of running trains.

Examples:
  spoor vehicles
  spoor vehicles --train 3034`,
	Args: cobra.NoArgs,
	RunE: runVehicles,
}

var followCmd = &cobra.Command{
	Use:   "follow <train_number>",
	Short: "Follow a train's position live",
	Long: `Follow a train and print its interpolated position on one line.

Telemetry is polled every --poll; between reports the position is
advanced along the track at the last known speed. When reports stop
arriving the line is marked stale.

Examples:
  spoor follow 3034
  spoor follow 3034 --fps 5 --poll 5s`,
	Args: cobra.ExactArgs(1),
	RunE: runFollow,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the NS data as a JSON HTTP API",
	Long: `Run an HTTP server exposing stations, boards, trips, trains,
disruptions, live positions and track geometry as JSON.

Examples:
  spoor serve
  spoor serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive full-screen TUI",
	Long: `Launch an interactive full-screen terminal UI for browsing
stations, departures, journey details and live train maps.

Keyboard:
  Tab          Cycle focus between panels
  j/k or arrows  Navigate lists
  Enter        Select / confirm
  m            Open the live map of the selected train
  Esc          Go back
  /            Jump to search
  q            Quit`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	log := newLogger()
	// The alternate screen owns the terminal; diagnostics would garble it.
	log.SetLevel(logrus.ErrorLevel)

	client, err := createClient(log)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	model := tui.New(client, tui.WithLiveConfig(cfg.Live))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// filterDepartures filters departures by category group and direction
func filterDepartures(deps []models.Departure, groups []string, direction string) []models.Departure {
	if len(groups) == 0 && direction == "" {
		return deps
	}

	wanted := make(map[string]bool, len(groups))
	for _, g := range groups {
		wanted[strings.ToUpper(strings.TrimSpace(g))] = true
	}

	filtered := make([]models.Departure, 0, len(deps))
	for _, d := range deps {
		if len(wanted) > 0 && !wanted[models.CategoryGroup(d.Category)] {
			continue
		}
		// Direction filter: substring match (case-insensitive)
		if direction != "" && !strings.Contains(strings.ToLower(d.Direction), strings.ToLower(direction)) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// runWatch runs a continuous refresh loop for watch mode
func runWatch(ctx context.Context, fetchAndRender func(context.Context) error) error {
	const refreshInterval = 30 * time.Second

	ctx, stop := output.InterruptContext(ctx)
	defer stop()
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	// Hide cursor during watch mode
	output.HideCursor(os.Stdout)
	defer output.ShowCursor(os.Stdout)

	for {
		output.ClearScreen(os.Stdout)

		now := time.Now()
		fmt.Printf("Last update: %s | Next refresh in 30s | Press Ctrl+C to exit\n\n",
			now.Format("15:04:05"))

		if err := fetchAndRender(ctx); err != nil && ctx.Err() == nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			output.ClearScreen(os.Stdout)
			fmt.Println("Watch mode ended.")
			return nil
		}
	}
}

func runBoard(cmd *cobra.Command, stationArg string, arrivals bool) error {
	ctx := cmd.Context()

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	station, err := client.ResolveStation(ctx, stationArg)
	if err != nil {
		return fmt.Errorf("station %q: %w", stationArg, err)
	}

	req := api.StationBoardRequest{
		Station:     station.Code,
		MaxJourneys: flagMax,
	}
	if flagDate != "" || flagTime != "" {
		req.DateTime = parseDateTime(flagDate, flagTime, client.Timezone(), time.Now())
	}

	fetch := client.GetDepartures
	fetchRaw := client.GetDeparturesRaw
	if arrivals {
		fetch = client.GetArrivals
		fetchRaw = client.GetArrivalsRaw
	}

	render := func(ctx context.Context) error {
		deps, err := fetch(ctx, req)
		if err != nil {
			return err
		}
		deps = filterDepartures(deps, flagCategory, flagDirection)
		output.RenderDepartures(os.Stdout, deps, output.TableOptions{
			Colors:  output.NewColors(getColorMode()),
			ShowVia: flagShowVia,
		})
		return nil
	}

	if flagWatch {
		return runWatch(ctx, func(ctx context.Context) error {
			fmt.Printf("%s\n\n", station.Name)
			return render(ctx)
		})
	}

	if flagRawJSON {
		raw, err := fetchRaw(ctx, req)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	if flagJSON {
		deps, err := fetch(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(filterDepartures(deps, flagCategory, flagDirection))
	}

	return render(ctx)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	stations, err := client.SearchStations(ctx, args[0], flagLimit)
	if err != nil {
		return err
	}

	if flagJSON || flagRawJSON {
		return printJSON(stations)
	}

	output.RenderStations(os.Stdout, stations, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

func runNearby(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lat, lon, err := parseCoordinates(args[0])
	if err != nil {
		return err
	}

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	stations, err := client.NearbyStations(ctx, lat, lon, flagLimit)
	if err != nil {
		return err
	}

	if flagJSON || flagRawJSON {
		return printJSON(stations)
	}

	output.RenderNearby(os.Stdout, stations, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	resolve := func(arg string) (string, error) {
		if arg == "" {
			return "", nil
		}
		s, err := client.ResolveStation(ctx, arg)
		if err != nil {
			return "", fmt.Errorf("station %q: %w", arg, err)
		}
		return s.Code, nil
	}

	req := api.TripRequest{SearchForArrival: flagArrival}
	if req.From, err = resolve(args[0]); err != nil {
		return err
	}
	if req.To, err = resolve(args[1]); err != nil {
		return err
	}
	if req.Via, err = resolve(flagVia); err != nil {
		return err
	}
	if flagDate != "" || flagTime != "" {
		req.DateTime = parseDateTime(flagDate, flagTime, client.Timezone(), time.Now())
	}

	if flagRawJSON {
		raw, err := client.PlanTripsRaw(ctx, req)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	trips, err := client.PlanTrips(ctx, req)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(trips)
	}

	output.RenderTrips(os.Stdout, trips, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

func runJourney(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	train := args[0]

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	var when time.Time
	if flagDate != "" || flagTime != "" {
		when = parseDateTime(flagDate, flagTime, client.Timezone(), time.Now())
	}

	render := func(ctx context.Context) error {
		j, err := client.GetJourney(ctx, train, when)
		if err != nil {
			return err
		}
		output.RenderJourney(os.Stdout, j, output.TableOptions{
			Colors:    output.NewColors(getColorMode()),
			ShowRoute: true,
		})
		return nil
	}

	if flagWatch {
		return runWatch(ctx, render)
	}

	if flagRawJSON {
		raw, err := client.GetJourneyRaw(ctx, train, when)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	if flagJSON {
		j, err := client.GetJourney(ctx, train, when)
		if err != nil {
			return err
		}
		return printJSON(j)
	}

	return render(ctx)
}

func runMaterial(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	material, err := client.GetMaterial(ctx, args[0])
	if err != nil {
		return fmt.Errorf("material not available: %w", err)
	}

	if flagJSON || flagRawJSON {
		return printJSON(material)
	}

	output.RenderMaterial(os.Stdout, material, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

func runDisruptions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	disruptions, err := client.GetDisruptions(ctx, api.DisruptionRequest{
		ActiveOnly: flagActive,
		Type:       strings.ToUpper(flagType),
		Station:    flagStation,
	})
	if err != nil {
		return err
	}

	if flagJSON || flagRawJSON {
		return printJSON(disruptions)
	}

	output.RenderDisruptions(os.Stdout, disruptions, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

func runVehicles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := createClient(newLogger())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	var vehicles []models.Vehicle
	if flagTrain != "" {
		v, err := client.GetVehicle(ctx, flagTrain)
		if err != nil {
			return err
		}
		vehicles = []models.Vehicle{*v}
	} else if vehicles, err = client.GetVehicles(ctx); err != nil {
		return err
	}

	if flagJSON || flagRawJSON {
		return printJSON(vehicles)
	}

	output.RenderVehicles(os.Stdout, vehicles, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	if !flagVerbose {
		log.SetLevel(logrus.InfoLevel)
	}

	client, err := createClient(log)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	addr := flagAddr
	if addr == "" {
		addr = ":" + strconv.Itoa(cfg.Server.Port)
	}

	ctx, stop := output.InterruptContext(cmd.Context())
	defer stop()

	srv := server.New(client, server.Options{
		Addr:           addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	})
	return srv.Run(ctx)
}

// parseCoordinates parses "lat:lon" in decimal degrees.
func parseCoordinates(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinates must be in format LAT:LON (e.g., 52.089:5.110)")
	}

	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range: %s", s)
	}
	return lat, lon, nil
}

// parseDateTime combines --date and --time with now; parts left out keep
// their current value.
func parseDateTime(dateStr, timeStr string, loc *time.Location, now time.Time) time.Time {
	now = now.In(loc)

	year := now.Year()
	month := now.Month()
	day := now.Day()
	hour := now.Hour()
	minute := now.Minute()

	if dateStr != "" {
		if t, err := time.ParseInLocation("2006-01-02", dateStr, loc); err == nil {
			year, month, day = t.Date()
		} else if parts := strings.Split(dateStr, "-"); len(parts) >= 2 {
			// DD-MM[-YYYY], the way dates are written in the Netherlands
			if d, err := strconv.Atoi(parts[0]); err == nil {
				day = d
			}
			if m, err := strconv.Atoi(parts[1]); err == nil {
				month = time.Month(m)
			}
			if len(parts) == 3 {
				if y, err := strconv.Atoi(parts[2]); err == nil {
					if y < 100 {
						y += 2000
					}
					year = y
				}
			}
		}
	}

	if timeStr != "" {
		parts := strings.Split(timeStr, ":")
		if len(parts) >= 2 {
			if h, err := strconv.Atoi(parts[0]); err == nil {
				hour = h
			}
			if m, err := strconv.Atoi(parts[1]); err == nil {
				minute = m
			}
		}
	}

	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPrettyJSON(data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		fmt.Println(string(data))
		return err
	}
	return printJSON(prettyJSON)
}
