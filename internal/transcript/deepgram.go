package transcript

import (
	"encoding/json"
	"regexp"
	"strings"

	"shuttle/internal/services"
)

// CleanResult is the outcome of cleaning a Deepgram transcription.
type CleanResult struct {
	Transcript   string `json:"transcript"`
	SpeakerCount int    `json:"speaker_count"`
}

// deepgramEnvelope models the slice of the Deepgram response we consume.
type deepgramEnvelope struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
				Paragraphs struct {
					Paragraphs []struct {
						Sentences []struct {
							Speaker *int `json:"speaker"`
						} `json:"sentences"`
					} `json:"paragraphs"`
				} `json:"paragraphs"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

var (
	cjkGapPattern         = regexp.MustCompile(`([\x{4e00}-\x{9fff}])\s+([\x{4e00}-\x{9fff}])`)
	cjkPunctSpacePattern  = regexp.MustCompile(`\s+([。，！？、：；])`)
	cjkGapCollapsePasses  = 10
	repeatPhraseMinLength = 3
	repeatPhraseMaxLength = 20
	repeatPhraseMaxFolds  = 5
)

// CleanDeepgramFile loads a Deepgram JSON result from disk and cleans it.
func CleanDeepgramFile(path string) (*CleanResult, error) {
	data, err := readTextFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "transcript", "clean", "read deepgram result", err)
	}
	return CleanDeepgram([]byte(data))
}

// CleanDeepgram extracts the transcript from a Deepgram API response and
// normalizes it for CJK text: spaces between ideographs are collapsed,
// spaces before CJK punctuation stripped, and immediately repeated phrases
// (a common transcription stutter) folded. The speaker count comes from the
// paragraph metadata and defaults to one.
func CleanDeepgram(data []byte) (*CleanResult, error) {
	var envelope deepgramEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, services.Wrap(services.ErrDataIntegrity, "transcript", "clean", "parse deepgram result", err)
	}
	if len(envelope.Results.Channels) == 0 || len(envelope.Results.Channels[0].Alternatives) == 0 {
		return nil, services.Wrap(services.ErrDataIntegrity, "transcript", "clean", "deepgram result has no transcript alternative", nil)
	}
	alt := envelope.Results.Channels[0].Alternatives[0]

	text := alt.Transcript
	// A single replace pass only joins alternating pairs; iterate until the
	// ideograph runs are contiguous.
	for i := 0; i < cjkGapCollapsePasses; i++ {
		collapsed := cjkGapPattern.ReplaceAllString(text, "$1$2")
		if collapsed == text {
			break
		}
		text = collapsed
	}
	text = cjkPunctSpacePattern.ReplaceAllString(text, "$1")
	text = collapseRepeatedPhrases(text)

	speakers := map[int]struct{}{}
	for _, paragraph := range alt.Paragraphs.Paragraphs {
		for _, sentence := range paragraph.Sentences {
			id := 0
			if sentence.Speaker != nil {
				id = *sentence.Speaker
			}
			speakers[id] = struct{}{}
		}
	}
	count := len(speakers)
	if count == 0 {
		count = 1
	}

	return &CleanResult{Transcript: text, SpeakerCount: count}, nil
}

func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// collapseRepeatedPhrases folds immediate repetitions of a CJK phrase down
// to a single occurrence. Longer phrases are tried first so a doubled
// six-rune phrase is folded as one unit rather than as two three-rune
// repeats.
func collapseRepeatedPhrases(text string) string {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text))

	i := 0
	for i < len(runes) {
		folded := false
		for length := repeatPhraseMaxLength; length >= repeatPhraseMinLength; length-- {
			if i+2*length > len(runes) {
				continue
			}
			phrase := runes[i : i+length]
			if !allCJK(phrase) {
				continue
			}
			repeats := 0
			for repeats < repeatPhraseMaxFolds {
				next := i + length*(repeats+1)
				if next+length > len(runes) || !equalRunes(phrase, runes[next:next+length]) {
					break
				}
				repeats++
			}
			if repeats > 0 {
				out.WriteString(string(phrase))
				i += length * (repeats + 1)
				folded = true
				break
			}
		}
		if !folded {
			out.WriteRune(runes[i])
			i++
		}
	}
	return out.String()
}

func allCJK(runes []rune) bool {
	for _, r := range runes {
		if !isCJK(r) {
			return false
		}
	}
	return true
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
