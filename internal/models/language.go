package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage is returned for a language outside the supported set.
var ErrUnknownLanguage = errors.New("unsupported language")

// Language is one of the programming languages offered in the selector.
type Language string

const (
	Python     Language = "Python"
	JavaScript Language = "JavaScript"
	Java       Language = "Java"
	CPP        Language = "C++"
)

// Languages lists the supported languages in display order.
var Languages = []Language{Python, JavaScript, Java, CPP}

// ParseLanguage returns the Language whose display name is exactly name.
func ParseLanguage(name string) (Language, error) {
	for _, l := range Languages {
		if string(l) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

func (l Language) String() string { return string(l) }

// Highlight is the lower-cased name used as the highlighting class for the echoed code.
func (l Language) Highlight() string {
	return strings.ToLower(string(l))
}
