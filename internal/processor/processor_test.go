package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/wordtoons/internal/cli"
	"codeberg.org/snonux/wordtoons/internal/image"
	"codeberg.org/snonux/wordtoons/internal/render"
	"codeberg.org/snonux/wordtoons/internal/testutil"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// pngGenerator returns a generator that draws a PNG data URL for every
// word related to each of the given words
func pngGenerator(forWords ...string) *testutil.MockGenerator {
	g := testutil.NewMockGenerator()
	ref := image.DataURL("image/png", testutil.PNGBytes)
	for _, w := range forWords {
		set := testutil.WordSetFor(w)
		for _, slot := range words.Slots {
			g.Responses[set.Word(slot)] = ref
		}
	}
	return g
}

func newTestProcessor(flags *cli.Flags, fetcher words.Fetcher, generator image.Generator) (*Processor, *bytes.Buffer, *bytes.Buffer) {
	var out, status bytes.Buffer
	p := NewProcessorWithClients(flags, fetcher, generator, zerolog.Nop(), &out, &status)
	return p, &out, &status
}

func TestProcessSingleWord_SavesImagesAndResult(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()

	p, out, status := newTestProcessor(flags, testutil.NewMockFetcher(), pngGenerator("happy"))
	require.NoError(t, p.ProcessSingleWord(context.Background(), "  Happy "))

	entries, err := os.ReadDir(flags.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	dir := filepath.Join(flags.OutputDir, entries[0].Name())

	assert.ElementsMatch(t, []string{
		"original_happy.png",
		"opposite_not-happy.png",
		"similar_happy-ish.png",
		"genz_happy_fr.png",
		resultFile,
	}, testutil.ListFiles(t, dir))
	testutil.AssertFileContent(t, filepath.Join(dir, "original_happy.png"), testutil.PNGBytes)
	testutil.AssertFileExists(t, filepath.Join(dir, resultFile))

	assert.Contains(t, status.String(), "Processing: happy (Marathi)")
	assert.Contains(t, out.String(), "not-happy")
	assert.Contains(t, out.String(), "translated-happy")
}

func TestProcessSingleWord_SkipSave(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = filepath.Join(t.TempDir(), "results")
	flags.SkipSave = true

	p, out, _ := newTestProcessor(flags, testutil.NewMockFetcher(), pngGenerator("happy"))
	require.NoError(t, p.ProcessSingleWord(context.Background(), "happy"))

	testutil.AssertFileNotExists(t, flags.OutputDir)
	assert.Contains(t, out.String(), "happy-ish")
}

func TestProcessSingleWord_JSON(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()
	flags.Format = cli.FormatJSON
	flags.Language = "hindi"

	p, out, _ := newTestProcessor(flags, testutil.NewMockFetcher(), pngGenerator("happy"))
	require.NoError(t, p.ProcessSingleWord(context.Background(), "happy"))

	var result render.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "happy", result.Word)
	assert.Equal(t, "Hindi", result.Language)
	assert.Equal(t, "ready", result.State)
	require.NotNil(t, result.Words)
	assert.Equal(t, "translated-happy", result.Words.Translation)
	require.Len(t, result.Images, words.SlotCount)
	assert.FileExists(t, result.Images["similar"])
}

func TestProcessSingleWord_FetchError(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()

	fetcher := testutil.NewMockFetcher()
	fetcher.Errors["happy"] = &words.TextGenerationError{Provider: "mock", Message: "malformed response"}
	generator := testutil.NewMockGenerator()

	p, out, _ := newTestProcessor(flags, fetcher, generator)
	err := p.ProcessSingleWord(context.Background(), "happy")
	require.Error(t, err)
	assert.Equal(t, "Could not fetch related words: malformed response.", err.Error())
	assert.Contains(t, out.String(), "Error: Could not fetch related words")
	assert.Zero(t, generator.CallCount())
	assert.Empty(t, testutil.ListFiles(t, flags.OutputDir))
}

func TestProcessSingleWord_ImageErrorSavesNothing(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()
	flags.Format = cli.FormatYAML

	generator := pngGenerator("happy")
	generator.Errors["not-happy"] = &image.ImageGenerationError{Provider: "mock", Word: "not-happy", Message: "content filtered"}

	p, out, _ := newTestProcessor(flags, testutil.NewMockFetcher(), generator)
	err := p.ProcessSingleWord(context.Background(), "happy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not generate images")
	assert.Contains(t, out.String(), "state: error")

	entries, err := os.ReadDir(flags.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessSingleWord_EmptyWord(t *testing.T) {
	flags := cli.NewFlags()
	fetcher := testutil.NewMockFetcher()

	p, _, _ := newTestProcessor(flags, fetcher, testutil.NewMockGenerator())
	assert.Error(t, p.ProcessSingleWord(context.Background(), "   "))
	assert.Zero(t, fetcher.CallCount())
}

func TestProcessBatch(t *testing.T) {
	tmpDir := t.TempDir()
	batchFile := filepath.Join(tmpDir, "words.txt")
	testutil.CreateTestFile(t, batchFile, []byte("happy\n# skipped\nsad = Hindi\n\nbroken\n"))

	flags := cli.NewFlags()
	flags.OutputDir = filepath.Join(tmpDir, "out")
	flags.BatchFile = batchFile

	fetcher := testutil.NewMockFetcher()
	fetcher.Errors["broken"] = &words.TextGenerationError{Provider: "mock", Message: "empty response"}

	p, _, status := newTestProcessor(flags, fetcher, pngGenerator("happy", "sad"))

	var err error
	_, stderr := testutil.CaptureOutput(t, func() {
		err = p.ProcessBatch(context.Background())
	})
	require.Error(t, err)
	assert.Equal(t, "1 of 3 words failed", err.Error())
	assert.Contains(t, stderr, "Error processing 'broken' (line 5)")

	assert.Equal(t, []string{"happy/Marathi", "sad/Hindi", "broken/Marathi"}, fetcher.Calls)
	assert.Contains(t, status.String(), "=== Batch Processing Summary ===")
	assert.Contains(t, status.String(), "Total words: 3")
	assert.Contains(t, status.String(), "Processed: 2")
	assert.Contains(t, status.String(), "Errors: 1")

	entries, err := os.ReadDir(flags.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestProcessBatch_InvalidFile(t *testing.T) {
	flags := cli.NewFlags()
	flags.BatchFile = filepath.Join(t.TempDir(), "missing.txt")

	p, _, _ := newTestProcessor(flags, testutil.NewMockFetcher(), testutil.NewMockGenerator())
	assert.Error(t, p.ProcessBatch(context.Background()))
}

func TestProcessBatch_CancelledContext(t *testing.T) {
	batchFile := filepath.Join(t.TempDir(), "words.txt")
	testutil.CreateTestFile(t, batchFile, []byte("happy\nsad\n"))

	flags := cli.NewFlags()
	flags.BatchFile = batchFile
	flags.SkipSave = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := testutil.NewMockFetcher()
	p, _, _ := newTestProcessor(flags, fetcher, testutil.NewMockGenerator())
	assert.ErrorIs(t, p.ProcessBatch(ctx), context.Canceled)
	assert.Zero(t, fetcher.CallCount())
}

func TestNewProcessor_Providers(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	tests := []struct {
		name          string
		textProvider  string
		imageProvider string
		wantText      string
		wantImage     string
		wantErr       bool
	}{
		{name: "gemini", textProvider: "gemini", imageProvider: "gemini", wantText: "gemini", wantImage: "gemini"},
		{name: "openai", textProvider: "openai", imageProvider: "openai", wantText: "openai", wantImage: "openai"},
		{name: "mixed case", textProvider: "OpenAI", imageProvider: "Gemini", wantText: "openai", wantImage: "gemini"},
		{name: "unknown text", textProvider: "claude", imageProvider: "gemini", wantErr: true},
		{name: "unknown image", textProvider: "gemini", imageProvider: "midjourney", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := cli.NewFlags()
			flags.TextProvider = tt.textProvider
			flags.ImageProvider = tt.imageProvider

			p, err := NewProcessor(context.Background(), flags, zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, p.fetcher.Name())
			assert.Equal(t, tt.wantImage, p.generator.Name())
		})
	}
}

func TestNewProcessor_MissingKeyFailsBeforeNetwork(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	flags := cli.NewFlags()
	flags.SkipSave = true
	p, err := NewProcessor(context.Background(), flags, zerolog.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	p.out, p.status = &out, &bytes.Buffer{}

	// A missing key never reaches the service, so the breaker stays closed
	for i := 0; i < 6; i++ {
		err = p.ProcessSingleWord(context.Background(), "happy")
		require.Error(t, err)
		assert.Equal(t, "Could not fetch related words: Gemini API key not configured.", err.Error())
	}
}

func TestGuardClients_BreakerLogsFollowLogger(t *testing.T) {
	flags := cli.NewFlags()
	flags.SkipSave = true

	fetcher := testutil.NewMockFetcher()
	fetcher.Errors["happy"] = &words.TextGenerationError{Provider: "mock", Message: "request failed", Err: errors.New("503")}

	p, _, _ := newTestProcessor(flags, fetcher, testutil.NewMockGenerator())
	p.guardClients()
	require.Len(t, p.breakers, 2)

	var logs bytes.Buffer
	p.setLogger(zerolog.New(&logs))

	for i := 0; i < 5; i++ {
		require.Error(t, p.ProcessSingleWord(context.Background(), "happy"))
	}
	assert.Contains(t, logs.String(), "circuit breaker state changed")
	assert.Contains(t, logs.String(), `"breaker":"text"`)

	err := p.ProcessSingleWord(context.Background(), "happy")
	require.Error(t, err)
	assert.Equal(t, "Could not fetch related words: text service temporarily unavailable.", err.Error())
	assert.Equal(t, 5, fetcher.CallCount())
}

func TestWriteResult(t *testing.T) {
	dir := t.TempDir()
	set := testutil.WordSetFor("happy")
	result := render.Result{Word: "happy", Language: "Marathi", Words: &set}

	path := filepath.Join(dir, resultFile)
	require.NoError(t, writeResult(path, result))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "not-happy")

	err = writeResult(filepath.Join(dir, "missing", resultFile), result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create result.yaml")
}
