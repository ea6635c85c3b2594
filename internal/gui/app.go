package gui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	_ "golang.org/x/image/webp"

	"codeberg.org/snonux/wordtoons/internal"
	cartoon "codeberg.org/snonux/wordtoons/internal/image"
	"codeberg.org/snonux/wordtoons/internal/orchestrator"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// Session is the part of the orchestrator the window drives
type Session interface {
	Submit(word string, lang words.Language) bool
	RefreshImages() bool
	Subscribe(fn func(orchestrator.Snapshot))
	Snapshot() orchestrator.Snapshot
}

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	wordInput        *widget.Entry
	languageSelect   *widget.Select
	submitButton     *ttwidget.Button
	refreshButton    *ttwidget.Button
	errorBanner      *fyne.Container
	errorLabel       *widget.Label
	hintLabel        *widget.Label
	translationCard  *widget.Card
	translationLabel *widget.Label
	cardGrid         *fyne.Container
	cards            [words.SlotCount]*ImageCard
	logViewer        *LogViewer
	logAccordion     *widget.Accordion

	config  *Config
	session Session

	// Only touched on the fyne thread
	current   orchestrator.Snapshot
	loadedGen uint64

	// Cancels image decoding when the window closes
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration
type Config struct {
	Language words.Language
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{Language: words.DefaultLanguage}
}

// New creates a new GUI application
func New(config *Config) *Application {
	myApp := app.NewWithID("org.codeberg.snonux.wordtoons")
	myApp.SetIcon(GetAppIcon())
	return newApplication(myApp, config)
}

func newApplication(fyneApp fyne.App, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	}
	if !config.Language.Valid() {
		config.Language = words.DefaultLanguage
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Application{
		app:       fyneApp,
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
		logViewer: NewLogViewer(),
	}
	a.setupUI()
	a.render(orchestrator.Snapshot{State: orchestrator.Idle, Language: config.Language})
	return a
}

// LogWriter returns the writer feeding the log pane
func (a *Application) LogWriter() io.Writer {
	return a.logViewer
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("wordtoons v%s - AI Word Visualizer", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(900, 820))

	header := container.NewVBox(
		widget.NewLabelWithStyle("AI Word Visualizer", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("See a word, its opposite, a synonym and its Gen-Z twin as cartoons",
			fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	)

	a.wordInput = widget.NewEntry()
	a.wordInput.SetPlaceHolder("Enter a word (e.g., 'happy')")
	a.wordInput.OnChanged = func(string) {
		a.updateButtons()
	}
	a.wordInput.OnSubmitted = func(string) {
		a.onSubmit()
		a.window.Canvas().Unfocus()
	}

	a.languageSelect = widget.NewSelect(words.LanguageNames(), nil)
	a.languageSelect.SetSelected(string(a.config.Language))

	a.submitButton = ttwidget.NewButtonWithIcon("Generate", theme.ConfirmIcon(), a.onSubmit)
	a.submitButton.Importance = widget.HighImportance

	inputSection := container.NewBorder(
		nil, nil,
		nil,
		container.NewHBox(a.languageSelect, a.submitButton),
		a.wordInput,
	)

	a.errorLabel = widget.NewLabel("")
	a.errorLabel.Wrapping = fyne.TextWrapWord
	a.errorLabel.Importance = widget.DangerImportance
	a.errorBanner = container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, a.errorLabel)

	a.hintLabel = widget.NewLabelWithStyle("Enter a word and press Generate to see it as four cartoons.",
		fyne.TextAlignCenter, fyne.TextStyle{})

	a.translationLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	a.translationCard = widget.NewCard("", "", a.translationLabel)

	a.refreshButton = ttwidget.NewButtonWithIcon("Regenerate images", theme.ViewRefreshIcon(), a.onRefresh)

	for i, slot := range words.Slots {
		a.cards[i] = NewImageCard(slot.Title())
	}
	a.cardGrid = container.New(layout.NewGridLayout(2),
		a.cards[0], a.cards[1], a.cards[2], a.cards[3])

	a.logAccordion = widget.NewAccordion(widget.NewAccordionItem("Logs", a.logViewer))

	content := container.NewBorder(
		container.NewVBox(
			header,
			widget.NewSeparator(),
			inputSection,
			a.errorBanner,
		),
		a.logAccordion,
		nil, nil,
		container.NewVScroll(container.NewVBox(
			a.hintLabel,
			container.NewBorder(nil, nil, nil, a.refreshButton, a.translationCard),
			a.cardGrid,
		)),
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
	})

	a.setupKeyboardShortcuts()
}

func (a *Application) setupTooltips() {
	a.submitButton.SetToolTip("Generate related words and cartoons (Enter)")
	a.refreshButton.SetToolTip("Draw four new cartoons for the same words (r)")
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.window.Canvas().Focused() == a.wordInput {
			return
		}

		switch r {
		case 'w', 'W':
			a.window.Canvas().Focus(a.wordInput)
		case 'r', 'R':
			if !a.refreshButton.Disabled() {
				a.onRefresh()
			}
		case 'l', 'L':
			a.toggleLogs()
		case 'q', 'Q':
			a.window.Close()
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
		}
	})
}

func (a *Application) toggleLogs() {
	if a.logAccordion.Items[0].Open {
		a.logAccordion.Close(0)
	} else {
		a.logAccordion.Open(0)
	}
}

// Bind connects the window to session. Every snapshot the session publishes
// is rendered on the fyne thread.
func (a *Application) Bind(session Session) {
	a.session = session
	session.Subscribe(func(snap orchestrator.Snapshot) {
		fyne.Do(func() {
			a.render(snap)
		})
	})
	a.render(session.Snapshot())
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// onSubmit handles word submission
func (a *Application) onSubmit() {
	if a.session == nil {
		return
	}
	word := strings.TrimSpace(a.wordInput.Text)
	if word == "" {
		return
	}
	lang, err := words.ParseLanguage(a.languageSelect.Selected)
	if err != nil {
		lang = a.config.Language
	}
	a.session.Submit(word, lang)
}

func (a *Application) onRefresh() {
	if a.session == nil {
		return
	}
	a.session.RefreshImages()
}

// render updates every widget from snap
func (a *Application) render(snap orchestrator.Snapshot) {
	a.current = snap

	if snap.LastError != "" {
		a.errorLabel.SetText(snap.LastError)
		a.errorBanner.Show()
	} else {
		a.errorBanner.Hide()
	}

	if snap.State == orchestrator.Idle && snap.LastError == "" {
		a.hintLabel.Show()
	} else {
		a.hintLabel.Hide()
	}

	a.renderTranslation(snap)
	a.renderCards(snap)
	a.updateButtons()
}

func (a *Application) renderTranslation(snap orchestrator.Snapshot) {
	if snap.Words == nil {
		a.translationCard.Hide()
		a.refreshButton.Hide()
		return
	}
	a.translationCard.SetTitle(snap.Language.String())
	a.translationCard.SetSubTitle(snap.Words.Pronunciation)
	a.translationLabel.SetText(snap.Words.Translation)
	a.translationCard.Show()
	a.refreshButton.Show()
}

func (a *Application) renderCards(snap orchestrator.Snapshot) {
	switch {
	case snap.IsFetchingWords():
		a.cardGrid.Show()
		for _, card := range a.cards {
			card.SetSkeleton()
		}
		return
	case snap.Words == nil:
		a.cardGrid.Hide()
		return
	}

	a.cardGrid.Show()
	for i, slot := range words.Slots {
		card := a.cards[i]
		card.SetWord(snap.Words.Word(slot))
		switch {
		case snap.IsFetchingImages():
			card.SetLoading()
		case snap.Images == nil:
			card.SetNoImage()
		}
	}

	if snap.State == orchestrator.Ready && snap.Images != nil && a.loadedGen != snap.Generation {
		a.loadedGen = snap.Generation
		for i, slot := range words.Slots {
			a.cards[i].SetLoading()
			go a.loadImage(snap.Generation, i, snap.Images.Get(slot))
		}
	}
}

// loadImage decodes ref off the fyne thread and shows it on card i if the
// generation is still the one on screen
func (a *Application) loadImage(gen uint64, i int, ref cartoon.Reference) {
	img, err := decodeReference(a.ctx, ref)
	fyne.Do(func() {
		if a.current.Generation != gen || a.current.State != orchestrator.Ready {
			return
		}
		if err != nil {
			a.cards[i].SetImageError()
			return
		}
		a.cards[i].SetImage(img)
	})
}

func decodeReference(ctx context.Context, ref cartoon.Reference) (image.Image, error) {
	data, _, err := cartoon.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (a *Application) updateButtons() {
	if a.current.IsBusy() || strings.TrimSpace(a.wordInput.Text) == "" {
		a.submitButton.Disable()
	} else {
		a.submitButton.Enable()
	}

	if a.current.CanRefresh() {
		a.refreshButton.Enable()
	} else {
		a.refreshButton.Disable()
	}
}
