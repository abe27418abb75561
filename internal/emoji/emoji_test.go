package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	t.Cleanup(func() { SetEmojiDisabled(false) })

	SetEmojiDisabled(false)
	if got := GetEmoji("success"); got != "✅" {
		t.Errorf("Expected ✅, got %s", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Fatal("Expected emoji to be disabled")
	}
	if got := GetEmoji("success"); got != "[OK]" {
		t.Errorf("Expected [OK] fallback, got %s", got)
	}

	if got := GetEmoji("does-not-exist"); got != "[?]" {
		t.Errorf("Expected [?] for unknown key, got %s", got)
	}
}
