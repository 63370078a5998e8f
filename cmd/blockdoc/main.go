package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/asset"
	"github.com/fwojciec/blockdoc/goquery"
	"github.com/fwojciec/blockdoc/htmltomarkdown"
	bdhttp "github.com/fwojciec/blockdoc/http"
	"github.com/fwojciec/blockdoc/notion"
	"github.com/fwojciec/blockdoc/readability"
	bdslog "github.com/fwojciec/blockdoc/slog"
	"github.com/fwojciec/blockdoc/sqlite"
	"github.com/fwojciec/blockdoc/trafilatura"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" input. Defaults to os.Stdin.
	Stdin io.Reader

	// Resolver overrides the asset resolver built from flags.
	Resolver blockdoc.AssetResolver
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blockdoc"),
		kong.Description("Convert documentation HTML into Notion blocks"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'blockdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, err := loadOptions(cli.Config)
	if err != nil {
		return err
	}
	if cli.BaseURL != "" {
		opts.BaseURL = cli.BaseURL
	}
	if cli.Placeholders {
		opts.MediaFailure = blockdoc.MediaPlaceholder
	}

	resolver := m.Resolver
	if resolver == nil && cli.ProbeMedia {
		limiter := asset.NewHostLimiter(cli.ProbeRate)
		resolver = asset.NewRateLimited(
			asset.NewRetrying(bdhttp.NewProber(), asset.WithLogger(func(format string, args ...any) {
				logger.Debug(fmt.Sprintf(format, args...))
			})),
			limiter,
		)
	}
	if resolver != nil {
		resolver = bdslog.NewLoggingResolver(resolver, logger)
	}

	registry := bdslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), logger)
	converterOpts := []goquery.Option{
		goquery.WithOptions(opts),
		goquery.WithProfileRegistry(registry),
	}
	if resolver != nil {
		converterOpts = append(converterOpts, goquery.WithAssetResolver(resolver))
	}
	converter, err := goquery.NewConverter(converterOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}

	deps.Converter = bdslog.NewLoggingConverter(converter, logger)
	deps.Extractor = newExtractor(cli.Extractor, opts.BaseURL)
	deps.Previewer = htmltomarkdown.NewPreviewer(htmltomarkdown.WithNormalizer(
		goquery.NewNormalizer(goquery.WithMaxPasses(opts.MaxUnwrapPasses), goquery.WithProfiles(registry)),
	))

	var mapperOpts []notion.Option
	if cli.MarkerTokens {
		mapperOpts = append(mapperOpts, notion.WithMarkerTokens())
	}
	deps.Mapper = notion.NewMapper(mapperOpts...)

	if cli.CachePath != "" {
		db := sqlite.NewDB(cli.CachePath)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer db.Close()

		deps.Store = sqlite.NewConversionService(db)
		deps.Options = opts
		deps.Settings = []string{
			"extractor=" + cli.Extractor,
			"marker-tokens=" + strconv.FormatBool(cli.MarkerTokens),
			"resolver=" + strconv.FormatBool(resolver != nil),
		}
	}

	return kongCtx.Run(deps)
}

// newExtractor returns the named main content extractor.
func newExtractor(name, baseURL string) blockdoc.Extractor {
	var pageURL *url.URL
	if baseURL != "" {
		pageURL, _ = url.Parse(baseURL)
	}

	if name == "readability" {
		var opts []readability.Option
		if pageURL != nil {
			opts = append(opts, readability.WithPageURL(pageURL))
		}
		return readability.NewExtractor(opts...)
	}

	var opts []trafilatura.Option
	if pageURL != nil {
		opts = append(opts, trafilatura.WithOriginalURL(pageURL))
	}
	return trafilatura.NewExtractor(opts...)
}

// loadOptions reads conversion options from a YAML file on top of the
// defaults. An empty path returns the defaults.
func loadOptions(path string) (blockdoc.Options, error) {
	opts := blockdoc.DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, blockdoc.Errorf(blockdoc.EINVALID, "invalid config %q: %v", path, err)
	}
	return opts, nil
}
