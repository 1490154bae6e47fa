package widget

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/doyosi/widgeta/transport"
)

func TestLocaleSwitchPostsLocale(t *testing.T) {
	tr := &recordingTransport{respond: func(method, url string, body []byte) ([]byte, error) {
		return []byte(`{"success":true,"message":"Locale switched","locale":"de"}`), nil
	}}
	notifier := &memoryNotifier{}
	var hooked string
	ls, err := NewLocaleSwitch(LocaleSwitchConfig{
		Locales:    []string{"en", "de", "tr"},
		Transport:  tr,
		Notifier:   notifier,
		OnSwitched: func(locale string) { hooked = locale },
	})
	if err != nil {
		t.Fatalf("NewLocaleSwitch failed: %v", err)
	}

	var switched []string
	ls.On(EventSwitched, func(payload any) {
		switched = append(switched, payload.(string))
	})

	if err := ls.Switch(context.Background(), "de"); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}

	if tr.count() != 1 || tr.methods[0] != "POST" || tr.urls[0] != "/widgeta/locale" {
		t.Fatalf("request = %v %v", tr.methods, tr.urls)
	}
	var sent map[string]string
	if err := json.Unmarshal(tr.bodies[0], &sent); err != nil {
		t.Fatalf("body: %v", err)
	}
	if sent["locale"] != "de" {
		t.Errorf("body = %v", sent)
	}
	if hooked != "de" || len(switched) != 1 || switched[0] != "de" {
		t.Errorf("hook = %q, events = %v", hooked, switched)
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Level != LevelSuccess {
		t.Errorf("notices = %+v", notifier.notices)
	}
}

func TestLocaleSwitchRejectsUnknownLocale(t *testing.T) {
	tr := &recordingTransport{}
	ls, _ := NewLocaleSwitch(LocaleSwitchConfig{
		Locales:   []string{"en", "de"},
		Transport: tr,
	})

	err := ls.Switch(context.Background(), "fr")
	if !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("error = %v", err)
	}
	if tr.count() != 0 {
		t.Error("rejected locale must not hit the transport")
	}
}

func TestLocaleSwitchServerFailure(t *testing.T) {
	tr := &recordingTransport{respond: func(string, string, []byte) ([]byte, error) {
		return nil, &transport.Error{Status: 422, Message: "Unknown locale"}
	}}
	notifier := &memoryNotifier{}
	ls, _ := NewLocaleSwitch(LocaleSwitchConfig{Transport: tr, Notifier: notifier})

	if err := ls.Switch(context.Background(), "xx"); err == nil {
		t.Fatal("server rejection should surface as error")
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Message != "Unknown locale" {
		t.Errorf("notices = %+v", notifier.notices)
	}
}
