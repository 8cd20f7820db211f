package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Now         func() time.Time
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"TERRENO_LOG_LEVEL" help:"Minimum log level (${enum})"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" env:"TERRENO_LOG_FORMAT" help:"Log output format (${enum})"`
	LogFile   string `name:"log-file" type:"path" env:"TERRENO_LOG_FILE" help:"Also write logs to this file, rotated by size"`

	Crawl   CrawlCmd   `cmd:"" default:"withargs" help:"Crawl the listing site and save qualifying properties (default)"`
	Results ResultsCmd `cmd:"" help:"List properties stored in a SQLite database"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	APIKey     string        `name:"api-key" env:"API_KEY" help:"Scraping API key"`
	IndexURL   string        `name:"index-url" default:"https://www.idealista.pt/comprar-terrenos/" help:"Region index page"`
	BaseURL    string        `name:"base-url" default:"https://www.idealista.pt" help:"Site root used to resolve relative links"`
	ContactURL string        `name:"contact-url" default:"https://www.idealista.pt/pt" help:"Base of the contact phone endpoint"`
	Endpoint   string        `name:"endpoint" default:"https://api.scrapfly.io/scrape" help:"Scraping API endpoint"`
	Out        string        `name:"out" short:"o" default:"." type:"path" help:"Directory for the CSV output"`
	DB         string        `name:"db" type:"path" help:"Also store properties in this SQLite database"`
	Delay      time.Duration `name:"delay" default:"1s" help:"Pause between region and page requests"`
	Country    string        `name:"country" default:"PT" help:"Scrape geo-location country code"`
	AntiBot    bool          `name:"asp" default:"true" negatable:"" help:"Enable the scraping API anti-bot bypass"`
	Selectors  string        `name:"selectors" type:"existingfile" help:"YAML file overriding the default CSS selectors"`
	Timeout    time.Duration `name:"timeout" default:"150s" help:"Timeout for a single scrape call"`
	MaxRPS     float64       `name:"max-rps" default:"0" help:"Cap on scrape calls per second, including retries and contact lookups (0 for no cap)"`
}

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	DB    string `arg:"" type:"existingfile" help:"SQLite database written by crawl --db"`
	RunID string `name:"run" help:"Only show properties from this run"`
	Limit int    `name:"limit" short:"n" default:"0" help:"Maximum number of properties to show (0 for all)"`
}
