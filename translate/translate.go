// Package translate localizes user visible strings for the simulator.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("cpusim: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// SetLanguage forces the printer to a specific language tag, such as "en-US".
// Unknown tags fall back to the closest supported match.
func SetLanguage(tag string) {
	printer = message.NewPrinter(message.MatchLanguage(tag, language.AmericanEnglish.String()))
}
