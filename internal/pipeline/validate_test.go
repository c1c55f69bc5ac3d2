package pipeline

import (
	"strings"
	"testing"

	"shuttle/internal/prompts"
)

func TestValidateOutputSizeRatio(t *testing.T) {
	input := strings.Repeat("a", 100)

	if warnings := validateOutput(prompts.NameStructureOnly, 0, input, strings.Repeat("b", 60)); len(warnings) != 0 {
		t.Fatalf("60%% output should not warn, got %v", warnings)
	}
	warnings := validateOutput(prompts.NameStructureOnly, 0, input, strings.Repeat("b", 40))
	if len(warnings) != 1 || !strings.Contains(warnings[0], "summarization") {
		t.Fatalf("40%% output should warn about summarization, got %v", warnings)
	}
}

func TestValidateOutputMissingHeaders(t *testing.T) {
	input := strings.Repeat("a", 2500)
	output := strings.Repeat("b", 2500)

	warnings := validateOutput(prompts.NameStructureOnly, 3, input, output)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "section headers") {
		t.Fatalf("long structured output without ## should warn, got %v", warnings)
	}

	if warnings := validateOutput(prompts.NameStructureOnly, 3, input, "## ok\n"+output); len(warnings) != 0 {
		t.Fatalf("output with headers should not warn, got %v", warnings)
	}

	// Short inputs are not expected to produce sections.
	if warnings := validateOutput(prompts.NameStructureOnly, 3, "short", "short"); len(warnings) != 0 {
		t.Fatalf("short input should not warn, got %v", warnings)
	}
}

func TestValidateOutputTranslationRatio(t *testing.T) {
	input := strings.Repeat("a", 100)
	english := strings.Repeat("b", 100)

	warnings := validateOutput(prompts.NameTranslateOnly, 1, input, english)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "translation") {
		t.Fatalf("untranslated output should warn, got %v", warnings)
	}

	translated := strings.Repeat("中", 30) + strings.Repeat("b", 70)
	if warnings := validateOutput(prompts.NameTranslateOnly, 1, input, translated); len(warnings) != 0 {
		t.Fatalf("translated output should not warn, got %v", warnings)
	}
}

func TestValidateOutputHeaderCheckOnlyForStructureKinds(t *testing.T) {
	input := strings.Repeat("a", 2500)
	output := strings.Repeat("中", 2500)

	if warnings := validateOutput(prompts.NameTranslateOnly, 0, input, output); len(warnings) != 0 {
		t.Fatalf("translate prompt should not require headers, got %v", warnings)
	}
}
