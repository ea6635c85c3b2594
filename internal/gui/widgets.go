package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ImageCard shows one word of the result with its cartoon
type ImageCard struct {
	widget.BaseWidget

	container   *fyne.Container
	titleLabel  *widget.Label
	wordLabel   *widget.Label
	imageCanvas *canvas.Image
	progress    *widget.ProgressBarInfinite
	statusLabel *widget.Label
}

// NewImageCard creates a card headed by title
func NewImageCard(title string) *ImageCard {
	c := &ImageCard{}

	c.titleLabel = widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	c.wordLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	c.wordLabel.Truncation = fyne.TextTruncateEllipsis

	c.imageCanvas = canvas.NewImageFromResource(nil)
	c.imageCanvas.FillMode = canvas.ImageFillContain
	c.imageCanvas.SetMinSize(fyne.NewSize(200, 200))

	c.progress = widget.NewProgressBarInfinite()

	c.statusLabel = widget.NewLabel("No image")
	c.statusLabel.Alignment = fyne.TextAlignCenter

	c.container = container.NewBorder(
		container.NewVBox(c.titleLabel, c.wordLabel),
		nil, nil, nil,
		container.NewStack(c.imageCanvas, container.NewCenter(c.statusLabel), container.NewCenter(c.progress)),
	)

	c.ExtendBaseWidget(c)
	c.SetNoImage()
	return c
}

// CreateRenderer implements fyne.Widget
func (c *ImageCard) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.container)
}

// SetSkeleton shows the placeholder used while the words are requested
func (c *ImageCard) SetSkeleton() {
	c.wordLabel.SetText("...")
	c.SetLoading()
}

// SetWord sets the word shown below the title
func (c *ImageCard) SetWord(word string) {
	c.wordLabel.SetText(word)
}

// SetLoading shows the progress bar in place of the image
func (c *ImageCard) SetLoading() {
	c.clearImage()
	c.statusLabel.Hide()
	c.progress.Show()
}

// SetImage displays img
func (c *ImageCard) SetImage(img image.Image) {
	c.imageCanvas.Image = img
	c.imageCanvas.Show()
	c.imageCanvas.Refresh()
	c.progress.Hide()
	c.statusLabel.Hide()
}

// SetNoImage clears the image area
func (c *ImageCard) SetNoImage() {
	c.setStatus("No image")
}

// SetImageError reports an image that could not be displayed
func (c *ImageCard) SetImageError() {
	c.setStatus("Image unavailable")
}

func (c *ImageCard) setStatus(text string) {
	c.clearImage()
	c.progress.Hide()
	c.statusLabel.SetText(text)
	c.statusLabel.Show()
}

func (c *ImageCard) clearImage() {
	c.imageCanvas.Image = nil
	c.imageCanvas.Hide()
	c.imageCanvas.Refresh()
}
