package transcript

import (
	"fmt"
	"testing"
)

func deepgramJSON(transcript string, speakers ...int) []byte {
	sentences := ""
	for i, s := range speakers {
		if i > 0 {
			sentences += ","
		}
		sentences += fmt.Sprintf(`{"speaker": %d}`, s)
	}
	return []byte(fmt.Sprintf(`{
		"results": {"channels": [{"alternatives": [{
			"transcript": %q,
			"paragraphs": {"paragraphs": [{"sentences": [%s]}]}
		}]}]}
	}`, transcript, sentences))
}

func TestCleanDeepgramCollapsesCJKSpacing(t *testing.T) {
	result, err := CleanDeepgram(deepgramJSON("你 好 世 界 hello world"))
	if err != nil {
		t.Fatalf("CleanDeepgram: %v", err)
	}
	if result.Transcript != "你好世界 hello world" {
		t.Fatalf("Transcript = %q", result.Transcript)
	}
}

func TestCleanDeepgramStripsSpaceBeforePunctuation(t *testing.T) {
	result, err := CleanDeepgram(deepgramJSON("你好 ，世界 。"))
	if err != nil {
		t.Fatalf("CleanDeepgram: %v", err)
	}
	if result.Transcript != "你好，世界。" {
		t.Fatalf("Transcript = %q", result.Transcript)
	}
}

func TestCleanDeepgramFoldsRepeatedPhrases(t *testing.T) {
	result, err := CleanDeepgram(deepgramJSON("我们今天我们今天要讨论"))
	if err != nil {
		t.Fatalf("CleanDeepgram: %v", err)
	}
	if result.Transcript != "我们今天要讨论" {
		t.Fatalf("Transcript = %q", result.Transcript)
	}
}

func TestCleanDeepgramLeavesShortRepeatsAlone(t *testing.T) {
	// Two-rune repeats are below the phrase floor and stay untouched.
	result, err := CleanDeepgram(deepgramJSON("谢谢大家"))
	if err != nil {
		t.Fatalf("CleanDeepgram: %v", err)
	}
	if result.Transcript != "谢谢大家" {
		t.Fatalf("Transcript = %q", result.Transcript)
	}
}

func TestCleanDeepgramCountsSpeakers(t *testing.T) {
	result, err := CleanDeepgram(deepgramJSON("hi", 0, 1, 1, 2))
	if err != nil {
		t.Fatalf("CleanDeepgram: %v", err)
	}
	if result.SpeakerCount != 3 {
		t.Fatalf("SpeakerCount = %d, want 3", result.SpeakerCount)
	}
}

func TestCleanDeepgramDefaultsToOneSpeaker(t *testing.T) {
	result, err := CleanDeepgram(deepgramJSON("hi"))
	if err != nil {
		t.Fatalf("CleanDeepgram: %v", err)
	}
	if result.SpeakerCount != 1 {
		t.Fatalf("SpeakerCount = %d, want 1", result.SpeakerCount)
	}
}

func TestCleanDeepgramRejectsMalformedJSON(t *testing.T) {
	if _, err := CleanDeepgram([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := CleanDeepgram([]byte(`{"results": {"channels": []}}`)); err == nil {
		t.Fatal("expected error when no transcript alternative exists")
	}
}
