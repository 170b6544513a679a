// Package translate formats user-facing messages for the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	mu      sync.Mutex
	printer *message.Printer
)

// hostLanguage returns the first host locale that parses as a language
// tag, or en-US.
func hostLanguage() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("translate: locale: %v", err)
	}

	for _, name := range locales {
		if tag, err := language.Parse(name); err == nil {
			return tag
		}
	}
	return language.AmericanEnglish
}

// SetLanguage overrides the host language for all subsequent messages.
func SetLanguage(tag language.Tag) {
	mu.Lock()
	printer = message.NewPrinter(tag)
	mu.Unlock()
}

// From formats an en-US Sprintf() style message for the current language.
// Decimal verbs are subject to locale digit grouping.
func From(key message.Reference, args ...any) string {
	mu.Lock()
	if printer == nil {
		printer = message.NewPrinter(hostLanguage())
	}
	p := printer
	mu.Unlock()

	return p.Sprintf(key, args...)
}
