package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/anthropic"
	"github.com/fwojciec/recipex/batch"
	"github.com/fwojciec/recipex/fs"
	"github.com/fwojciec/recipex/gemini"
	"github.com/fwojciec/recipex/goquery"
	"github.com/fwojciec/recipex/htmltomarkdown"
	"github.com/fwojciec/recipex/microdata"
	"github.com/fwojciec/recipex/readability"
	rxslog "github.com/fwojciec/recipex/slog"
	"github.com/fwojciec/recipex/trafilatura"
	"github.com/fwojciec/recipex/validate"
	"github.com/fwojciec/recipex/yaml"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, recipex.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Completer replaces the configured LLM provider. Set before calling
	// Run(); used by end-to-end tests.
	Completer recipex.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// tokenizerModel selects the local tokenizer vocabulary.
const tokenizerModel = "gemini-2.5-flash"

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipex"),
		kong.Description("Extract recipe records from saved web pages and validate them"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipex --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	registry, err := loadRegistry(cli.SitesDir)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: check the files in --sites-dir")
		return err
	}
	deps.Sites = rxslog.NewLoggingRegistry(registry, deps.Logger)
	deps.Store = rxslog.NewLoggingFixtureStore(fs.NewStore(cli.DataDir), deps.Logger)
	deps.Runner = &batch.Runner{
		Sites:     deps.Sites,
		Extractor: rxslog.NewLoggingExtractor(goquery.NewExtractor(microdata.NewLocator()), deps.Logger),
		Store:     deps.Store,
	}

	if kongCtx.Command() == "validate <site>" {
		h, err := m.buildHarness(ctx, &cli.Validate, deps)
		if err != nil {
			return err
		}
		deps.Harness = h
	}

	return kongCtx.Run(deps)
}

// loadRegistry registers the built-in sites and then the sites in dir,
// which replace built-in sites with the same ID.
func loadRegistry(dir string) (*goquery.Registry, error) {
	sites, err := yaml.DefaultSites()
	if err != nil {
		return nil, fmt.Errorf("load built-in sites: %w", err)
	}
	if dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, recipex.Errorf(recipex.EINVALID, "sites directory %q not found", dir)
		}
		extra, err := yaml.LoadSites(os.DirFS(dir))
		if err != nil {
			return nil, err
		}
		sites = append(sites, extra...)
	}

	registry := goquery.NewRegistry(nil)
	for _, s := range sites {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (m *Main) buildHarness(ctx context.Context, c *ValidateCmd, deps *Dependencies) (*validate.Harness, error) {
	h := &validate.Harness{
		Runner:        deps.Runner,
		Store:         deps.Store,
		Concurrency:   c.Concurrency,
		Reference:     c.Reference,
		Semantic:      c.Semantic,
		MaxTextChars:  c.MaxTextChars,
		MaxTextTokens: c.MaxTextTokens,
	}
	if c.Rate > 0 {
		h.Limiter = rate.NewLimiter(rate.Limit(c.Rate), 1)
	}

	switch c.Text {
	case "trafilatura":
		h.Text = trafilatura.NewTextExtractor()
	case "readability":
		h.Text = readability.NewTextExtractor(htmltomarkdown.NewConverter())
	default:
		h.Text = goquery.NewTextExtractor()
	}

	if !c.Reference && !c.Semantic {
		return h, nil
	}

	if c.Provider == "offline" && m.Completer == nil {
		if c.Semantic {
			fmt.Fprintln(deps.Stderr, "Note: the offline judge cannot read page text; semantic fallback disabled")
			h.Semantic = false
		}
		h.Judge = validate.NewStructuralJudge()
		return h, nil
	}

	completer, err := m.completer(ctx, c, deps.Stderr)
	if err != nil {
		return nil, err
	}
	judge := validate.NewLLMJudge(rxslog.NewLoggingCompleter(completer, deps.Logger))
	judge.Logger = func(format string, args ...any) {
		deps.Logger.Warn(fmt.Sprintf(format, args...))
	}
	h.Judge = judge

	if c.MaxTextTokens > 0 {
		tokens, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		h.Tokens = tokens
	}
	return h, nil
}

func (m *Main) completer(ctx context.Context, c *ValidateCmd, stderr io.Writer) (recipex.Completer, error) {
	if m.Completer != nil {
		return m.Completer, nil
	}

	switch c.Provider {
	case "anthropic":
		if c.AnthropicKey == "" {
			fmt.Fprintln(stderr, "Hint: set ANTHROPIC_API_KEY or use --provider offline")
			return nil, recipex.Errorf(recipex.EINVALID, "ANTHROPIC_API_KEY not set")
		}
		return anthropic.NewCompleter(c.AnthropicKey, c.Model), nil
	default:
		if c.GeminiKey == "" {
			fmt.Fprintln(stderr, "Hint: set GEMINI_API_KEY (https://aistudio.google.com/apikey) or use --provider offline")
			return nil, recipex.Errorf(recipex.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client, c.Model), nil
	}
}
