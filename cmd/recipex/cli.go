package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/batch"
	"github.com/fwojciec/recipex/validate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Sites   recipex.SiteRegistry
	Store   recipex.FixtureStore
	Runner  *batch.Runner
	Harness *validate.Harness
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool   `short:"v" help:"Log debug output to stderr"`
	DataDir  string `name:"data-dir" env:"RECIPEX_DATA_DIR" default:"preprocessed" help:"Directory holding one fixture directory per site"`
	SitesDir string `name:"sites-dir" env:"RECIPEX_SITES_DIR" help:"Directory of site YAML files layered over the built-in sites"`

	Extract  ExtractCmd  `cmd:"" help:"Extract recipes from every saved page of a site"`
	Validate ValidateCmd `cmd:"" help:"Extract and validate every saved page of a site"`
	Sites    SitesCmd    `cmd:"" help:"List configured sites"`
	Detect   DetectCmd   `cmd:"" help:"Show which site configuration a saved page uses"`
	Parse    ParseCmd    `cmd:"" help:"Parse one ingredient line with a site's rules"`
	Duration DurationCmd `cmd:"" help:"Format a duration token with a preset"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Site string `arg:"" help:"Site ID"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Site          string  `arg:"" help:"Site ID"`
	Reference     bool    `short:"r" help:"Compare with reference records (<name>.json)"`
	Semantic      bool    `default:"true" negatable:"" help:"Judge against page text when fields or references are missing"`
	Concurrency   int     `short:"c" default:"4" help:"Files validated at once"`
	Rate          float64 `default:"1" help:"Judge calls per second (0 for unlimited)"`
	Text          string  `enum:"dom,trafilatura,readability" default:"dom" help:"Page text extractor (dom, trafilatura, readability)"`
	MaxTextChars  int     `default:"30000" help:"Page text budget in characters"`
	MaxTextTokens int     `default:"0" help:"Page text budget in tokens (0 disables counting)"`
	WriteReport   bool    `short:"w" help:"Write validation_report.json into the site directory"`

	Provider     string `env:"RECIPEX_PROVIDER" enum:"gemini,anthropic,offline" default:"gemini" help:"Judge backend (gemini, anthropic, offline)"`
	Model        string `env:"RECIPEX_MODEL" help:"Model name for the judge backend"`
	GeminiKey    string `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	AnthropicKey string `name:"anthropic-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	File string `arg:"" type:"existingfile" help:"Saved HTML page"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Site string `arg:"" help:"Site ID"`
	Line string `arg:"" help:"Ingredient line"`
}

// DurationCmd is the "duration" subcommand.
type DurationCmd struct {
	Preset   string `arg:"" enum:"pluralized-words,fixed-minutes-total,abbreviated,locale-words" help:"Duration preset"`
	Token    string `arg:"" help:"ISO-8601 duration token, e.g. PT1H30M"`
	Language string `short:"l" default:"en" help:"Locale for duration words"`
	Fold     bool   `help:"Carry 60 or more minutes into hours"`
}
