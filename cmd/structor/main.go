// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/structor"
	"github.com/poiesic/structor/ai"
	"github.com/poiesic/structor/ai/googleai"
	"github.com/poiesic/structor/embedding"
	"github.com/poiesic/structor/extraction"
	"github.com/poiesic/structor/vectorstore/qdrant"
)

func main() {
	serviceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "structor-data",
		},
		&cli.StringFlag{
			Name:  "qdrant",
			Usage: "Qdrant gRPC address; uses Qdrant instead of BadgerDB when set",
		},
		&cli.StringFlag{
			Name:  "completion-host",
			Usage: "Completion service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "completion-model",
			Usage: "Completion model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "AI provider (openai, googleai)",
			Value:   "openai",
			EnvVars: []string{"STRUCTOR_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI provider",
			EnvVars: []string{"STRUCTOR_API_KEY"},
		},
	}

	app := &cli.App{
		Name:  "structor",
		Usage: "Structured extraction and per-tenant semantic search for business data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "Scrape a website and extract structured data",
				Action: scrapeCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "Website URL to scrape",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Content type to extract (products, services, contact, about, faq, policies, general)",
						Value:   "general",
					},
					&cli.StringFlag{
						Name:  "tenant",
						Usage: "Tenant to index the extracted data under (skipped when empty)",
					},
				}, serviceFlags...),
			},
			{
				Name:   "process-file",
				Usage:  "Extract structured data from a text, markdown, or HTML file",
				Action: processFileCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the file to process",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Content type to extract",
						Value:   "general",
					},
					&cli.StringFlag{
						Name:  "tenant",
						Usage: "Tenant to index the extracted data under (skipped when empty)",
					},
				}, serviceFlags...),
			},
			{
				Name:   "index",
				Usage:  "Index a JSON data file as a tenant's searchable records",
				Action: indexCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "tenant",
						Usage:    "Tenant identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON file (object or array of objects)",
						Required: true,
					},
				}, serviceFlags...),
			},
			{
				Name:   "query",
				Usage:  "Search a tenant's stored records",
				Action: queryCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "tenant",
						Usage:    "Tenant identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Query text",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				}, serviceFlags...),
			},
			{
				Name:   "chat",
				Usage:  "Ask a question grounded in a tenant's stored data",
				Action: chatCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "tenant",
						Usage:    "Tenant identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Usage:    "Customer message",
						Required: true,
					},
				}, serviceFlags...),
			},
			{
				Name:   "erase",
				Usage:  "Remove all stored data for a tenant",
				Action: eraseCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "tenant",
						Usage:    "Tenant identifier",
						Required: true,
					},
				}, serviceFlags...),
			},
			{
				Name:   "content-types",
				Usage:  "List supported extraction content types",
				Action: contentTypesCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newService builds a Service from CLI flags.
func newService(c *cli.Context) (*structor.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("completion-host")),
		ai.WithCompletionModel(c.String("completion-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	var opts []structor.ServiceOption
	opts = append(opts, structor.WithAIConfig(aiConfig))

	switch c.String("provider") {
	case "openai", "":
		// default provider, built from aiConfig
	case "googleai":
		provider, err := googleai.NewProvider(context.Background(), aiConfig)
		if err != nil {
			return nil, fmt.Errorf("creating googleai provider: %w", err)
		}
		opts = append(opts, structor.WithProvider(provider))
	default:
		return nil, fmt.Errorf("unknown provider %q: must be openai or googleai", c.String("provider"))
	}

	if addr := c.String("qdrant"); addr != "" {
		backend, err := qdrant.OpenBackend(addr, embedding.Dimension)
		if err != nil {
			return nil, fmt.Errorf("connecting to qdrant: %w", err)
		}
		opts = append(opts, structor.WithBackend(backend))
	}

	return structor.NewService(c.String("db"), opts...)
}

func parseContentType(c *cli.Context) (extraction.ContentType, error) {
	contentType := extraction.ContentType(strings.ToLower(c.String("type")))
	if !contentType.Valid() {
		return "", fmt.Errorf("unknown content type %q", c.String("type"))
	}
	return contentType, nil
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// indexResult stores a successful processing result for a tenant.
func indexResult(ctx context.Context, service *structor.Service, tenant string, result *structor.ProcessResult) error {
	if tenant == "" || !result.Success {
		return nil
	}
	count, err := service.Index(ctx, tenant, result.Data)
	if err != nil {
		return fmt.Errorf("indexing extracted data: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Indexed %d records for tenant %s\n", count, tenant)
	return nil
}

func scrapeCommand(c *cli.Context) error {
	contentType, err := parseContentType(c)
	if err != nil {
		return err
	}

	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	ctx := context.Background()
	result := service.ScrapeWebsite(ctx, c.String("url"), contentType)
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("scrape failed: %s", result.Error)
	}

	return indexResult(ctx, service, c.String("tenant"), result)
}

func processFileCommand(c *cli.Context) error {
	contentType, err := parseContentType(c)
	if err != nil {
		return err
	}

	path := c.String("file")
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	ctx := context.Background()
	result := service.ProcessFile(ctx, path, content, contentType)
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("processing failed: %s", result.Error)
	}

	return indexResult(ctx, service, c.String("tenant"), result)
}

func indexCommand(c *cli.Context) error {
	path := c.String("file")
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	count, err := service.Index(context.Background(), c.String("tenant"), data)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d records for tenant %s\n", count, c.String("tenant"))
	return nil
}

func queryCommand(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	result, err := service.Query(context.Background(), c.String("tenant"), c.String("query"), c.Int("limit"))
	if err != nil {
		return err
	}

	if !result.TenantFound {
		fmt.Printf("No data stored for tenant %s\n", c.String("tenant"))
		return nil
	}
	return printJSON(result.Matches)
}

func chatCommand(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	reply, err := service.Ask(context.Background(), c.String("tenant"), c.String("message"))
	if err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}

func eraseCommand(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	deleted, err := service.Erase(context.Background(), c.String("tenant"))
	if err != nil {
		return err
	}

	if deleted {
		fmt.Printf("Erased all data for tenant %s\n", c.String("tenant"))
	} else {
		fmt.Printf("No data stored for tenant %s\n", c.String("tenant"))
	}
	return nil
}

func contentTypesCommand(c *cli.Context) error {
	for _, ct := range extraction.ContentTypes() {
		fmt.Printf("%-10s %s\n", ct, ct.Label())
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
