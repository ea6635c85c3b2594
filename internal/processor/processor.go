package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/wordtoons/internal"
	"codeberg.org/snonux/wordtoons/internal/batch"
	"codeberg.org/snonux/wordtoons/internal/breaker"
	"codeberg.org/snonux/wordtoons/internal/cli"
	"codeberg.org/snonux/wordtoons/internal/gui"
	"codeberg.org/snonux/wordtoons/internal/image"
	"codeberg.org/snonux/wordtoons/internal/logging"
	"codeberg.org/snonux/wordtoons/internal/orchestrator"
	"codeberg.org/snonux/wordtoons/internal/render"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// terminalWidth is the width the text format renders cards for
const terminalWidth = 100

// resultFile is written next to the saved images of every result
const resultFile = "result.yaml"

// Processor handles the main word processing logic
type Processor struct {
	flags     *cli.Flags
	fetcher   words.Fetcher
	generator image.Generator
	breakers  []*breaker.Breaker
	logger    zerolog.Logger

	// out receives results, status receives progress lines
	out    io.Writer
	status io.Writer
}

// NewProcessor creates the configured text and image clients, each guarded
// by its own circuit breaker
func NewProcessor(ctx context.Context, flags *cli.Flags, logger zerolog.Logger) (*Processor, error) {
	fetcher, err := newFetcher(ctx, flags)
	if err != nil {
		return nil, err
	}
	generator, err := newGenerator(ctx, flags)
	if err != nil {
		return nil, err
	}

	status := io.Writer(os.Stdout)
	if strings.ToLower(flags.Format) != cli.FormatText {
		// Keep stdout parseable
		status = os.Stderr
	}
	p := NewProcessorWithClients(flags, fetcher, generator, logger, os.Stdout, status)
	p.guardClients()
	return p, nil
}

// guardClients wraps both clients in circuit breakers. The image breaker
// lets all four cards through while half-open so a recovered service can
// complete a whole set.
func (p *Processor) guardClients() {
	text := breaker.New(breaker.DefaultSettings("text"), p.logger)

	imageSettings := breaker.DefaultSettings("image")
	imageSettings.MaxRequests = words.SlotCount
	img := breaker.New(imageSettings, p.logger)

	p.fetcher = words.NewBreakerFetcher(p.fetcher, text)
	p.generator = image.NewBreakerGenerator(p.generator, img)
	p.breakers = []*breaker.Breaker{text, img}
}

// setLogger switches the processor and its breakers to logger
func (p *Processor) setLogger(logger zerolog.Logger) {
	p.logger = logger
	for _, b := range p.breakers {
		b.SetLogger(logger)
	}
}

// NewProcessorWithClients creates a processor around existing clients
func NewProcessorWithClients(flags *cli.Flags, fetcher words.Fetcher, generator image.Generator,
	logger zerolog.Logger, out, status io.Writer) *Processor {
	return &Processor{
		flags:     flags,
		fetcher:   fetcher,
		generator: generator,
		logger:    logger,
		out:       out,
		status:    status,
	}
}

func newFetcher(ctx context.Context, flags *cli.Flags) (words.Fetcher, error) {
	switch strings.ToLower(flags.TextProvider) {
	case cli.ProviderOpenAI:
		config := words.DefaultOpenAIConfig()
		config.APIKey = cli.GetOpenAIKey()
		config.Timeout = flags.TextTimeout
		if flags.TextModel != "" {
			config.Model = flags.TextModel
		}
		return words.NewOpenAIFetcher(config), nil
	case cli.ProviderGemini:
		return words.NewGeminiFetcher(ctx, words.GeminiConfig{
			APIKey:  cli.GetGeminiKey(),
			Model:   flags.TextModel,
			Timeout: flags.TextTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown text provider: %s", flags.TextProvider)
	}
}

func newGenerator(ctx context.Context, flags *cli.Flags) (image.Generator, error) {
	switch strings.ToLower(flags.ImageProvider) {
	case cli.ProviderOpenAI:
		config := image.DefaultOpenAIConfig()
		config.APIKey = cli.GetOpenAIKey()
		config.Timeout = flags.ImageTimeout
		config.Size = flags.OpenAIImageSize
		config.Quality = flags.OpenAIImageQuality
		config.Style = flags.OpenAIImageStyle
		if flags.ImageModel != "" {
			config.Model = flags.ImageModel
		}
		return image.NewOpenAIGenerator(config), nil
	case cli.ProviderGemini:
		return image.NewGeminiGenerator(ctx, image.GeminiConfig{
			APIKey:  cli.GetGeminiKey(),
			Model:   flags.ImageModel,
			Timeout: flags.ImageTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown image provider: %s", flags.ImageProvider)
	}
}

// ProcessSingleWord runs one query for word in the configured language,
// saves the images unless disabled and prints the result
func (p *Processor) ProcessSingleWord(ctx context.Context, word string) error {
	return p.processWord(ctx, word, p.flags.ParsedLanguage())
}

func (p *Processor) processWord(ctx context.Context, word string, lang words.Language) error {
	orch := orchestrator.New(p.fetcher, p.generator,
		orchestrator.WithLogger(p.logger),
		orchestrator.WithContext(ctx))
	defer orch.Close()

	if !orch.Submit(word, lang) {
		return fmt.Errorf("invalid word %q", word)
	}
	fmt.Fprintf(p.status, "\nProcessing: %s (%s)\n", orch.Snapshot().InputWord, lang)
	orch.Wait()
	snap := orch.Snapshot()

	var files map[words.Slot]string
	if snap.State == orchestrator.Ready && !p.flags.SkipSave {
		var err error
		files, err = p.saveResult(ctx, snap)
		if err != nil {
			return err
		}
	}

	if err := p.print(snap, files); err != nil {
		return err
	}

	if snap.State == orchestrator.Error {
		return errors.New(snap.LastError)
	}
	return nil
}

// saveResult writes the four images and a result.yaml into a fresh
// directory below the output directory
func (p *Processor) saveResult(ctx context.Context, snap orchestrator.Snapshot) (map[words.Slot]string, error) {
	dir := filepath.Join(p.flags.OutputDir, internal.GenerateResultID(snap.InputWord))
	fmt.Fprintf(p.status, "  Saving images to %s\n", dir)

	files := make(map[words.Slot]string, words.SlotCount)
	for _, slot := range words.Slots {
		name := slot.String() + "_" + internal.SanitizeFilename(snap.Words.Word(slot))
		path, err := image.Save(ctx, snap.Images.Get(slot), dir, name)
		if err != nil {
			return nil, fmt.Errorf("failed to save %s image: %w", slot, err)
		}
		files[slot] = path
	}

	if err := writeResult(filepath.Join(dir, resultFile), render.NewResult(snap, files)); err != nil {
		return nil, err
	}
	return files, nil
}

func writeResult(path string, result render.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", resultFile, err)
	}
	if err := render.YAML(f, result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", resultFile, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", resultFile, err)
	}
	return nil
}

func (p *Processor) print(snap orchestrator.Snapshot, files map[words.Slot]string) error {
	switch strings.ToLower(p.flags.Format) {
	case cli.FormatJSON:
		return render.JSON(p.out, render.NewResult(snap, files))
	case cli.FormatYAML:
		return render.YAML(p.out, render.NewResult(snap, files))
	default:
		_, err := fmt.Fprintln(p.out, render.Cards(snap, terminalWidth, files))
		return err
	}
}

// ProcessBatch processes every word of the batch file in order. A failing
// word is reported and counted; the remaining words are still processed.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile, p.flags.ParsedLanguage())
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(p.status, "\nWord %d/%d\n", i+1, len(entries))
		if err := p.processWord(ctx, entry.Word, entry.Language); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing '%s' (line %d): %v\n", entry.Word, entry.Line, err)
			errorCount++
			continue
		}
		processedCount++
	}

	fmt.Fprintf(p.status, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.status, "Total words: %d\n", len(entries))
	fmt.Fprintf(p.status, "Processed: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.status, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.status, "================================\n")

	if err := ctx.Err(); err != nil {
		return err
	}
	if errorCount > 0 {
		return fmt.Errorf("%d of %d words failed", errorCount, len(entries))
	}
	return nil
}

// RunGUIMode launches the desktop window. The log pane receives the same
// log lines as stderr.
func (p *Processor) RunGUIMode(ctx context.Context) error {
	app := gui.New(&gui.Config{Language: p.flags.ParsedLanguage()})

	logger, err := logging.New(p.flags.LogLevel, app.LogWriter())
	if err != nil {
		return err
	}
	p.setLogger(logger)

	orch := orchestrator.New(p.fetcher, p.generator,
		orchestrator.WithLogger(p.logger),
		orchestrator.WithContext(ctx))
	defer orch.Close()

	app.Bind(orch)
	app.Run()
	return nil
}
