package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	KeyNetworkProblem     = "network_problem"
	KeyRegistrationFailed = "registration_failed"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		KeyNetworkProblem:     "Network problem, please check your connection and try again",
		KeyRegistrationFailed: "Registration failed, please try again later",
	},
	language.Chinese: {
		KeyNetworkProblem:     "网络连接问题，请检查网络后重试",
		KeyRegistrationFailed: "注册失败，请稍后再试",
	},
}

var (
	supported = []language.Tag{language.English, language.Chinese}
	matcher   = language.NewMatcher(supported)
	builder   = mustBuild()
)

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: failed to register %v/%v: %v", tag, key, err))
			}
		}
	}
	return b
}

// Printer renders catalog messages for one language
type Printer struct {
	tag     language.Tag
	printer *message.Printer
}

// Tag returns resolved language
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Text returns message for key
func (p *Printer) Text(key string) string {
	return p.printer.Sprintf(key)
}

// NewPrinter creates a printer for the closest supported language
func NewPrinter(tag language.Tag) *Printer {
	_, index, _ := matcher.Match(tag)
	resolved := supported[index]
	return &Printer{tag: resolved, printer: message.NewPrinter(resolved, message.Catalog(builder))}
}

// Parse creates a printer from a BCP 47 language string, defaulting to English
func Parse(lang string) *Printer {
	if lang == "" {
		return NewPrinter(language.English)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return NewPrinter(language.English)
	}
	return NewPrinter(tag)
}
