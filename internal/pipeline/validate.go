package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"shuttle/internal/prompts"
)

const (
	// sizeRatioFloor flags outputs that shrank enough to suggest the model
	// summarized instead of restructuring.
	sizeRatioFloor = 0.5

	// headerCheckMinInput is the input length above which structured output
	// is expected to contain section headers.
	headerCheckMinInput = 2000

	// cjkRatioFloor flags translation outputs that stayed mostly
	// untranslated.
	cjkRatioFloor = 0.1
)

// validateOutput runs the post-transformation quality heuristics for one
// chunk. Everything returned is a warning: the chunk output is kept and the
// chunk is still marked done, but the caller surfaces these for follow-up.
func validateOutput(promptName string, chunkID int, input, output string) []string {
	var warnings []string

	inputChars := utf8.RuneCountInString(input)
	outputChars := utf8.RuneCountInString(output)

	ratio := 0.0
	if inputChars > 0 {
		ratio = float64(outputChars) / float64(inputChars)
	}
	if ratio < sizeRatioFloor {
		warnings = append(warnings, fmt.Sprintf(
			"chunk %d: output is only %.0f%% of input size (%d vs %d chars), possible summarization instead of structuring",
			chunkID, ratio*100, outputChars, inputChars))
	}

	if promptName == prompts.NameStructureOnly || promptName == prompts.NameQuickCleanup {
		if inputChars > headerCheckMinInput && !strings.Contains(output, "##") {
			warnings = append(warnings, fmt.Sprintf(
				"chunk %d: no section headers (##) found in output (%d chars input), structuring may have failed",
				chunkID, inputChars))
		}
	}

	if promptName == prompts.NameTranslateOnly {
		cjkRatio := 0.0
		if outputChars > 0 {
			cjkRatio = float64(countCJK(output)) / float64(outputChars)
		}
		if cjkRatio < cjkRatioFloor {
			warnings = append(warnings, fmt.Sprintf(
				"chunk %d: Chinese character ratio is only %.0f%%, translation may have been skipped",
				chunkID, cjkRatio*100))
		}
	}

	return warnings
}

func countCJK(text string) int {
	count := 0
	for _, r := range text {
		if r >= 0x4e00 && r <= 0x9fff {
			count++
		}
	}
	return count
}
