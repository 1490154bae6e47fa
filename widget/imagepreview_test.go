package widget

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/doyosi/widgeta/dom"
)

const previewPage = `
<div id="avatar">
  <img src="/img/placeholder.png" class="preview">
</div>`

func TestImagePreviewSelectSwapsSource(t *testing.T) {
	doc, _ := dom.Parse(previewPage)
	preview, err := NewImagePreview(doc, ImagePreviewConfig{Preview: Sel("#avatar")})
	if err != nil {
		t.Fatalf("NewImagePreview failed: %v", err)
	}

	var changed []string
	preview.On(EventChange, func(payload any) {
		changed = append(changed, payload.(string))
	})

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	if err := preview.Select("me.png", "image/png", data); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	if preview.Src() != want {
		t.Errorf("Src = %q, want %q", preview.Src(), want)
	}
	img := doc.Find("#avatar").Find("img")
	if src, _ := img.Attr("src"); src != want {
		t.Errorf("img src = %q", src)
	}
	if alt, _ := img.Attr("alt"); alt != "me.png" {
		t.Errorf("img alt = %q", alt)
	}
	if len(changed) != 1 || changed[0] != "me.png" {
		t.Errorf("change events = %v", changed)
	}
}

func TestImagePreviewRejectsWrongType(t *testing.T) {
	doc, _ := dom.Parse(previewPage)
	notifier := &memoryNotifier{}
	preview, _ := NewImagePreview(doc, ImagePreviewConfig{
		Preview: Sel("#avatar"), Notifier: notifier,
	})

	err := preview.Select("notes.pdf", "application/pdf", []byte("%PDF"))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("error = %v", err)
	}
	if preview.Src() != "/img/placeholder.png" {
		t.Error("rejected file must leave the preview untouched")
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Level != LevelError {
		t.Errorf("notices = %+v", notifier.notices)
	}
}

func TestImagePreviewRejectsOversizedFile(t *testing.T) {
	doc, _ := dom.Parse(previewPage)
	preview, _ := NewImagePreview(doc, ImagePreviewConfig{
		Preview: Sel("#avatar"), MaxBytes: 8,
	})

	err := preview.Select("big.png", "image/png", make([]byte, 9))
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("error = %v", err)
	}
	if preview.Src() != "/img/placeholder.png" {
		t.Error("oversized file must leave the preview untouched")
	}
}

func TestImagePreviewClearRestoresPlaceholder(t *testing.T) {
	doc, _ := dom.Parse(previewPage)
	preview, _ := NewImagePreview(doc, ImagePreviewConfig{Preview: Sel("#avatar")})

	if err := preview.Select("me.jpg", "image/jpeg", []byte{1, 2, 3}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	preview.Clear()

	if preview.Src() != "/img/placeholder.png" {
		t.Errorf("Src = %q, want the placeholder", preview.Src())
	}
	img := doc.Find("#avatar").Find("img")
	if alt, _ := img.Attr("alt"); alt != "" {
		t.Errorf("alt should be removed, got %q", alt)
	}
}

func TestImagePreviewCustomAllowList(t *testing.T) {
	doc, _ := dom.Parse(previewPage)
	preview, _ := NewImagePreview(doc, ImagePreviewConfig{
		Preview: Sel("#avatar"), AllowedTypes: []string{"image/png"},
	})

	if err := preview.Select("me.jpg", "image/jpeg", []byte{1}); err == nil {
		t.Error("jpeg should be rejected with a png-only allow list")
	}
	if err := preview.Select("me.png", "image/png", []byte{1}); err != nil {
		t.Errorf("png should pass: %v", err)
	}
	if !strings.HasPrefix(preview.Src(), "data:image/png;base64,") {
		t.Errorf("Src = %q", preview.Src())
	}
}

func TestImagePreviewRequiresImgElement(t *testing.T) {
	doc, _ := dom.Parse(`<div id="avatar"><span>no image here</span></div>`)
	if _, err := NewImagePreview(doc, ImagePreviewConfig{Preview: Sel("#avatar")}); err == nil {
		t.Error("a region without an img must fail construction")
	}
}
