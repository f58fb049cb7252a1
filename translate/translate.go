// Package translate formats user-facing messages for the current locale.
package translate

import (
	"log"
	"os"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// ENV_LANGUAGE overrides the user locale when set.
const ENV_LANGUAGE = "KASM_LANG"

var printer atomic.Pointer[message.Printer]

func init() {
	if lang := os.Getenv(ENV_LANGUAGE); len(lang) != 0 {
		SetLanguage(lang)
		return
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("kasm: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the best matching language from a preference list
// of BCP 47 tags. An empty list selects en-US.
func SetLanguage(tags ...string) {
	if len(tags) == 0 {
		tags = []string{"en-US"}
	}

	printer.Store(message.NewPrinter(message.MatchLanguage(tags...)))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}
