package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"goginie/config"
	"goginie/database"
	"goginie/events"
	"goginie/orchestrator"
	"goginie/services"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "goginie",
	Short: "GoGinie - AI trip planner and booking agent",
	Long: `GoGinie plans a trip from your preferences, checks transport, hotel and
restaurant availability, and books everything once you approve the plan.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	RootCmd.PersistentFlags().String("store", "", "booking store driver: sqlite or postgres")
	RootCmd.PersistentFlags().String("sqlite-path", "", "sqlite file for the booking store")

	viper.BindPFlag("STORE_DRIVER", RootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("SQLITE_PATH", RootCmd.PersistentFlags().Lookup("sqlite-path"))

	RootCmd.AddCommand(ServeCmd)
	RootCmd.AddCommand(PlanCmd)
	RootCmd.AddCommand(BookingsCmd)
	RootCmd.AddCommand(RecommendCmd)
}

// loadConfig reads configuration and applies flags the user set explicitly.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("STORE_DRIVER"); v != "" {
		cfg.StoreDriver = v
	}
	if v := viper.GetString("SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	return cfg, nil
}

// ─── Wiring ───────────────────────────────────────────────────────────────────

type app struct {
	cfg     *config.Config
	db      *database.DB
	store   *database.BookingStore
	catalog *services.Catalog
	planner *services.Planner
	bus     *events.Bus
	agent   *orchestrator.Agent
}

// newApp opens the booking store and wires the adapters, planner, event bus
// and orchestrator.
func newApp(ctx context.Context, cfg *config.Config, opts ...orchestrator.AgentOption) (*app, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	store := database.NewBookingStore(db)

	a := &app{
		cfg:     cfg,
		db:      db,
		store:   store,
		catalog: services.NewCatalog(cfg, store),
		planner: newPlanner(ctx, cfg),
		bus:     events.NewBus(),
	}
	opts = append([]orchestrator.AgentOption{orchestrator.WithPublisher(a.bus)}, opts...)
	a.agent = orchestrator.New(a.planner, a.catalog, opts...)
	return a, nil
}

// newPlanner wires the configured AI provider, mocking every response when it
// cannot be set up.
func newPlanner(ctx context.Context, cfg *config.Config) *services.Planner {
	var gen services.TextGenerator
	if g, err := services.NewTextGenerator(ctx, cfg); err != nil {
		log.Printf("⚠️  AI provider unavailable: %v — responses will be mocked", err)
	} else {
		gen = g
		log.Printf("✅ AI provider: %s", g.Name())
	}
	return services.NewPlanner(gen, cfg.AITimeout, cfg.AITemperature)
}

func (a *app) Close() {
	if err := a.bus.Close(); err != nil {
		log.Printf("⚠️  Event bus close: %v", err)
	}
	if err := a.db.Close(); err != nil {
		log.Printf("⚠️  Booking store close: %v", err)
	}
}

// openStore is the lighter wiring used by commands that only touch bookings.
func openStore() (*database.DB, *database.BookingStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, database.NewBookingStore(db), nil
}
