package config

import (
	"context"

	"github.com/kenjikellens/ivids-core/internal/logger"
)

const (
	LangEN = "en"
	LangES = "es"
)

// GetLocaleConfig maps a configured language to a supported locale, falling back to English.
func GetLocaleConfig(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	default:
		logger.Warn(context.Background(), "unsupported language, using English", "language", lang)
		return LangEN
	}
}
