package widget

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/doyosi/widgeta/dom"
)

// Image preview errors.
var (
	ErrPreviewNotFound  = errors.New("widgeta: preview element not found")
	ErrUnsupportedImage = errors.New("widgeta: unsupported image type")
	ErrImageTooLarge    = errors.New("widgeta: image exceeds size limit")
)

// ImagePreviewConfig configures a pre-upload image preview.
type ImagePreviewConfig struct {
	// Preview points at the img element, or a region containing one.
	Preview Target

	// AllowedTypes are MIME prefixes, default ["image/"].
	AllowedTypes []string

	// MaxBytes defaults to 5 MiB.
	MaxBytes int64

	Notifier Notifier
}

// ImagePreview swaps a preview image to the selected file rendered as a
// data URL. Violations notify and leave the preview untouched.
type ImagePreview struct {
	emitter

	cfg            ImagePreviewConfig
	img            *dom.Region
	placeholderSrc string
}

func NewImagePreview(doc *dom.Document, cfg ImagePreviewConfig) (*ImagePreview, error) {
	region := cfg.Preview.resolve(doc)
	if region == nil {
		return nil, fmt.Errorf("%w: %q", ErrPreviewNotFound, cfg.Preview.Selector)
	}
	img := region
	if region.Tag() != "img" {
		if nested := region.Find("img"); nested != nil {
			img = nested
		} else {
			return nil, fmt.Errorf("%w: no img inside %q", ErrPreviewNotFound, cfg.Preview.Selector)
		}
	}

	if len(cfg.AllowedTypes) == 0 {
		cfg.AllowedTypes = []string{"image/"}
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 5 << 20
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}

	src, _ := img.Attr("src")
	return &ImagePreview{cfg: cfg, img: img, placeholderSrc: src}, nil
}

// Select validates the chosen file and swaps the preview to it.
func (p *ImagePreview) Select(name, mime string, data []byte) error {
	if !p.allowed(mime) {
		p.cfg.Notifier.Notify(LevelError, fmt.Sprintf("File %q is not a supported image", name))
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, mime)
	}
	if int64(len(data)) > p.cfg.MaxBytes {
		p.cfg.Notifier.Notify(LevelError, fmt.Sprintf("File %q is too large", name))
		return fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}

	src := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	p.img.SetAttr("src", src)
	p.img.SetAttr("alt", name)
	p.emit(EventChange, name)
	return nil
}

// Clear restores the original placeholder image.
func (p *ImagePreview) Clear() {
	p.img.SetAttr("src", p.placeholderSrc)
	p.img.RemoveAttr("alt")
}

// Src reports the current preview source.
func (p *ImagePreview) Src() string {
	src, _ := p.img.Attr("src")
	return src
}

func (p *ImagePreview) allowed(mime string) bool {
	for _, prefix := range p.cfg.AllowedTypes {
		if strings.HasPrefix(mime, prefix) {
			return true
		}
	}
	return false
}
