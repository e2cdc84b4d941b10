package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/chrissnell/climate/internal/app"
	"github.com/chrissnell/climate/internal/log"
	"github.com/chrissnell/climate/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("climate-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgFile := fs.String("config", "", "Path to an optional YAML configuration file")
	listenAddr := fs.String("listen-addr", "", "Address to listen on (default 0.0.0.0)")
	port := fs.Int("port", 0, "HTTP port (default 8080)")
	century := fs.Int("century", 0, "Century added to two-digit years until 1999 is seen (default 1900)")
	leapInYears := fs.Bool("leap-in-years", false, "Count Feb 29 rows toward yearly extremes")
	debug := fs.Bool("debug", false, "Turn on debugging output")
	showVersion := fs.Bool("version", false, "Show version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  climate-server [flags] <input-file.csv>")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "climate-server %s\n", version)
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		return 1
	}

	// Flags given on the command line win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen-addr":
			cfg.RESTServer.ListenAddr = *listenAddr
		case "port":
			cfg.RESTServer.Port = *port
		case "century":
			cfg.Century = *century
		case "leap-in-years":
			cfg.LeapDayInYears = *leapInYears
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Errorf("Invalid configuration: %v", err)
		return 1
	}

	application := app.New(cfg, log.GetSugaredLogger())
	if err := application.Serve(context.Background(), fs.Arg(0)); err != nil {
		log.Errorf("Application error: %v", err)
		return 1
	}

	return 0
}
