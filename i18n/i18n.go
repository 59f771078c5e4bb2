// Package i18n translates the messages resxkit prints about itself: log
// lines, status headings, prompts and CLI errors. It has nothing to do with
// the catalogs resxkit translates.
//
// Catalogs are gettext .po files compiled into the binary from
// locales/<lang>/LC_MESSAGES/resxkit.po. Until Init is called, and for any
// message a catalog lacks, T and N return the English source text.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var catalogs embed.FS

const domain = "resxkit"

var active *gotext.Locale

// Init loads the message catalog for lang ("ru", "ru_RU", ...). An empty
// lang is taken from the environment: LANGUAGE, then LC_ALL, LC_MESSAGES
// and LANG. gotext falls back from a region-specific catalog to the base
// language.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	l := gotext.NewLocaleFSWithPath(lang, catalogs, "locales")
	l.AddDomain(domain)
	l.SetDomain(domain)
	active = l
}

// T returns the translation of msgid.
func T(msgid string) string {
	if active == nil {
		return msgid
	}
	return active.Get(msgid)
}

// N returns the plural form of a message for n, chosen by the catalog's
// Plural-Forms rule.
func N(singular, plural string, n int) string {
	if active == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return active.GetN(singular, plural, n)
}

// detectLanguage returns the first usable locale from the environment with
// its codeset stripped, or "en".
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(env)
		if env == "LANGUAGE" {
			// colon-separated preference list
			v, _, _ = strings.Cut(v, ":")
		}
		v, _, _ = strings.Cut(v, ".")
		switch v {
		case "", "C", "POSIX":
			continue
		}
		return v
	}
	return "en"
}
