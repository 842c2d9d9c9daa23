package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gocompare_api/config"
	"gocompare_api/internal/auth"
	"gocompare_api/internal/compare/app"
)

const usage = `usage: application [serve | ingest-file | token] [flags]

  serve        run the HTTP service (default)
  ingest-file  ingest a dataset exported to a JSON or CSV file
  token        issue a webhook bearer token`

func main() {
	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "serve":
		err = serve(args)
	case "ingest-file":
		err = ingestFile(args)
	case "token":
		err = issueToken(args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (*config.AppConfig, error) {
	path := fs.String("config", "config.yaml", "path to the YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return config.LoadConfig(*path)
}

func serve(args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("serve", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Started compare service")
	server := app.NewCompareServer(app.NewConnector(cfg), cfg, os.Stdout)
	return server.Run(ctx)
}

func ingestFile(args []string) error {
	fs := flag.NewFlagSet("ingest-file", flag.ExitOnError)
	category := fs.String("category", "", "category slug, e.g. telefon")
	source := fs.String("source", "", "marketplace name stored with the prices")
	file := fs.String("file", "", "dataset export: JSON array or CSV with a header row")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	server := app.NewCompareServer(app.NewConnector(cfg), cfg, os.Stdout)
	result, err := server.IngestFile(context.Background(), *category, *source, *file)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(result)
}

func issueToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("subject", "apify", "token subject")
	role := fs.String("role", auth.RoleIngest, "token role")
	ttl := fs.Duration("ttl", 365*24*time.Hour, "token lifetime")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if cfg.Webhook.JWTSecret == "" {
		return fmt.Errorf("webhook jwt secret is not configured (WEBHOOK_JWT_SECRET)")
	}

	token, err := auth.IssueToken(cfg.Webhook.JWTSecret, *subject, *role, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
