// Package textseg splits raw transcript text into sentence units and packs
// them into chunks near a character budget.
//
// Sentences are never split: a single sentence longer than the budget
// becomes its own oversized chunk and raises a warning instead of being cut
// mid-thought.
package textseg

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"shuttle/internal/services"
)

// Segment splits text into sentences and greedily packs them into chunks of
// at most targetChars characters, returning the chunks in input order plus
// any oversized-sentence warnings.
func Segment(text string, targetChars int) ([]string, []string, error) {
	if targetChars <= 0 {
		return nil, nil, services.Wrap(services.ErrInput, "textseg", "segment", fmt.Sprintf("chunk size must be positive, got %d", targetChars), nil)
	}
	sentences := SplitSentences(text)
	chunks, warnings := Pack(sentences, targetChars)
	return chunks, warnings, nil
}

// SplitSentences divides text at sentence boundaries. A boundary sits after
// a terminator (. ! ? 。 ！ ？), optionally followed by one closing quote or
// bracket, when the next character is whitespace (consumed) or something
// that plausibly starts a sentence: an uppercase Latin letter, a digit, or a
// CJK ideograph. The second condition handles scripts written without
// inter-sentence spacing. Empty sentences are dropped.
func SplitSentences(text string) []string {
	runes := []rune(text)
	n := len(runes)

	var sentences []string
	flush := func(start, end int) {
		sentence := strings.TrimSpace(string(runes[start:end]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	start := 0
	i := 0
	for i < n {
		if !isTerminator(runes[i]) {
			i++
			continue
		}
		j := i + 1
		if j < n && isClosing(runes[j]) {
			j++
		}
		if j >= n {
			break
		}
		if unicode.IsSpace(runes[j]) {
			end := j
			for j < n && unicode.IsSpace(runes[j]) {
				j++
			}
			flush(start, end)
			start = j
			i = j
			continue
		}
		if isSentenceStart(runes[j]) {
			flush(start, j)
			start = j
			i = j
			continue
		}
		i++
	}
	if start < n {
		flush(start, n)
	}

	return sentences
}

// Pack accumulates sentences into chunks while the running size stays
// within targetChars, counting one join space per added sentence. A
// sentence that alone exceeds the budget is flagged and ends up in a chunk
// of its own.
func Pack(sentences []string, targetChars int) ([]string, []string) {
	var chunks []string
	var current []string
	var warnings []string
	currentSize := 0

	for i, sentence := range sentences {
		length := utf8.RuneCountInString(sentence)
		if length > targetChars {
			warnings = append(warnings, fmt.Sprintf("sentence %d exceeds chunk size (%d > %d), will be its own chunk", i, length, targetChars))
		}

		if currentSize+length > targetChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{sentence}
			currentSize = length
		} else {
			current = append(current, sentence)
			currentSize += length + 1
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks, warnings
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

func isClosing(r rune) bool {
	switch r {
	case '”', '"', '’', '」', ')':
		return true
	}
	return false
}

func isSentenceStart(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	return r >= 0x4e00 && r <= 0x9fff
}
