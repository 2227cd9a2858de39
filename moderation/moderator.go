// Package moderation masks forbidden words in message content before it is stored.
package moderation

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks every occurrence of a forbidden word, including
// spaced out, punctuated or leet spelled variants ("b.4.d"), while
// leaving the rest of the text untouched.
type Moderator struct {
	matcher  *goahocorasick.Machine
	maskChar rune
}

// folded is a text reduced to the runes the matcher sees,
// with the position each of them had in the original text.
type folded struct {
	runes     []rune
	positions []int
}

// NewModerator builds the automaton over the folded forbidden words.
// Blank words are ignored; a moderator without words leaves content as is.
func NewModerator(words []string, maskChar rune, log *slog.Logger) (*Moderator, error) {
	var patterns [][]rune
	for _, word := range words {
		if f := fold(strings.TrimSpace(word)); len(f.runes) > 0 {
			patterns = append(patterns, f.runes)
		}
	}
	if len(patterns) == 0 {
		return &Moderator{maskChar: maskChar}, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("moderation dictionary: %w", err)
	}
	log.Debug("Moderation dictionary loaded", "words", len(patterns))
	return &Moderator{matcher: m, maskChar: maskChar}, nil
}

// Censor returns content with each forbidden span replaced by the mask character,
// and the folded form of the words it found, in order of appearance.
func (m *Moderator) Censor(content string) (string, []string) {
	if m == nil || m.matcher == nil {
		return content, nil
	}
	f := fold(content)
	if len(f.runes) == 0 {
		return content, nil
	}
	terms := m.matcher.MultiPatternSearch(f.runes, false)
	if len(terms) == 0 {
		return content, nil
	}

	original := []rune(content)
	var found []string
	for _, term := range terms {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start < 0 || end > len(f.positions) {
			continue
		}
		for i := f.positions[start]; i <= f.positions[end-1]; i++ {
			original[i] = m.maskChar
		}
		found = append(found, string(term.Word))
	}
	return string(original), found
}

func fold(text string) folded {
	runes := []rune(text)
	f := folded{
		runes:     make([]rune, 0, len(runes)),
		positions: make([]int, 0, len(runes)),
	}
	for i, r := range runes {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		f.runes = append(f.runes, unicode.ToLower(r))
		f.positions = append(f.positions, i)
	}
	return f
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}
