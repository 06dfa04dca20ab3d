// Package translate localizes the user-visible messages of the dt31 tools.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	"go.uber.org/zap"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when the host locale cannot be determined.
var Fallback = language.AmericanEnglish

var getPrinter = sync.OnceValue(func() *message.Printer {
	return message.NewPrinter(Language())
})

var getLanguage = sync.OnceValue(func() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		zap.L().Warn("locale", zap.Error(err))
	}
	return Match(locales...)
})

// Match picks the message language for a list of BCP 47 locales,
// most preferred first.
func Match(locales ...string) language.Tag {
	if len(locales) == 0 {
		return Fallback
	}
	return message.MatchLanguage(locales...)
}

// Language returns the message language of the host locale.
func Language() language.Tag {
	return getLanguage()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return getPrinter().Sprintf(key, args...)
}
