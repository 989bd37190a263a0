package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	daycounter "daycounter/internal"
	"daycounter/internal/config"
	"daycounter/internal/store"
)

var CLI struct {
	EnvFile string `help:"Path to the .env file" default:".env"`
	Backend string `short:"b" help:"Override DAYCOUNTER_BACKEND (file, sqlite, pocketbase, memory)"`
	Store   string `short:"s" help:"Override DAYCOUNTER_STORE_PATH"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Show struct{} `cmd:"" default:"1" help:"Show the current day count"`

	Select struct {
		Date string `arg:"" help:"Start date (2006-01-02 or RFC 3339)"`
	} `cmd:"" help:"Set the start date"`

	Reset struct{} `cmd:"" help:"Clear the start date"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("daycounterctl"),
		kong.Description("Count the days since a start date."),
	)

	log.SetLevel(log.WarnLevel)
	if CLI.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(CLI.EnvFile)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if CLI.Backend != "" {
		cfg.Backend = CLI.Backend
	}
	if CLI.Store != "" {
		cfg.StorePath = CLI.Store
	}

	if err := run(context.Background(), kctx.Command(), cfg); err != nil {
		log.Error("Command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, cfg config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	gateway, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer gateway.Close()

	state := daycounter.NewState(gateway, daycounter.WithLocation(loc))
	state.Initialize(ctx)

	var view daycounter.View
	switch command {
	case "show":
		view = state.View()
	case "select <date>":
		date, err := daycounter.ParseStartDate(CLI.Select.Date, loc)
		if err != nil {
			return err
		}
		view = state.SelectDate(ctx, date)
	case "reset":
		view = state.Reset(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	fmt.Println(Render(view, time.Now().In(loc)))
	return nil
}
