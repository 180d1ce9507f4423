// Package i18n renders the user-facing messages of both front ends.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"path"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/fekuna/smart-inventory/internal/model"
)

//go:embed locales/*.json
var locales embed.FS

var (
	mu            sync.RWMutex
	bundle        *goi18n.Bundle
	defaultLocale = "en"
)

// Init builds the bundle from the embedded locales. Safe to call more than once.
func Init() error {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return err
	}
	for _, e := range entries {
		p := path.Join("locales", e.Name())
		buf, err := locales.ReadFile(p)
		if err != nil {
			return err
		}
		if _, err := b.ParseMessageFileBytes(buf, p); err != nil {
			return err
		}
	}

	mu.Lock()
	bundle = b
	mu.Unlock()
	return nil
}

// Load adds or overrides messages from a locale file on disk, e.g. active.fr.json.
func Load(file string) error {
	b := getBundle()
	mu.Lock()
	defer mu.Unlock()
	_, err := b.LoadMessageFile(file)
	return err
}

func SetDefaultLocale(lang string) {
	if lang == "" {
		return
	}
	mu.Lock()
	defaultLocale = lang
	mu.Unlock()
}

func getBundle() *goi18n.Bundle {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b != nil {
		return b
	}
	if err := Init(); err != nil {
		// Embedded files are part of the binary; this only fails on a broken build.
		panic(err)
	}
	mu.RLock()
	defer mu.RUnlock()
	return bundle
}

// T localizes messageID for lang, which may be an Accept-Language value.
// Unknown IDs come back unchanged.
func T(lang, messageID string, data map[string]any) string {
	b := getBundle()

	mu.RLock()
	fallback := defaultLocale
	localizer := goi18n.NewLocalizer(b, lang, fallback)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	mu.RUnlock()
	if err != nil {
		return messageID
	}
	return msg
}

// ErrorMessageID maps an error kind to its message. Anything unknown is
// reported as a persistence failure so store details never reach the user.
func ErrorMessageID(err error) string {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		return "ProductNotFound"
	case errors.Is(err, model.ErrInsufficientStock):
		return "InsufficientStock"
	case errors.Is(err, model.ErrNoSalesData):
		return "NoSalesData"
	case errors.Is(err, model.ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, model.ErrProductExists):
		return "ProductExists"
	case errors.Is(err, model.ErrDuplicateEvent):
		return "DuplicateEvent"
	default:
		return "PersistenceFailure"
	}
}

func ErrorMessage(lang string, err error) string {
	id := ErrorMessageID(err)
	data := map[string]any{}
	if id == "InvalidInput" {
		data["Detail"] = invalidDetail(err)
	}
	return T(lang, id, data)
}

func invalidDetail(err error) string {
	msg := err.Error()
	prefix := model.ErrInvalidInput.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
