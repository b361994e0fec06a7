// Package translate provides language detection and translation through an
// external service. Translation is best-effort everywhere: the orchestrator
// degrades to base-language text when a call fails.
package translate

import "context"

// Translator detects query languages and translates text between them.
type Translator interface {
	Name() string
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// SupportedLanguages maps language codes to display names, mirroring the
// languages the corpus institution serves.
func SupportedLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"hi": "Hindi",
		"ta": "Tamil",
		"te": "Telugu",
		"kn": "Kannada",
		"ml": "Malayalam",
		"bn": "Bengali",
		"gu": "Gujarati",
		"mr": "Marathi",
		"pa": "Punjabi",
	}
}

// Noop passes text through untranslated and reports every input as the
// base language. Used when no translation backend is configured.
type Noop struct {
	BaseLanguage string
}

func (n Noop) Name() string { return "none" }

func (n Noop) Detect(ctx context.Context, text string) (string, error) {
	if n.BaseLanguage == "" {
		return "en", nil
	}
	return n.BaseLanguage, nil
}

func (n Noop) Translate(ctx context.Context, text, source, target string) (string, error) {
	return text, nil
}
