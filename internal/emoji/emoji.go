package emoji

// [emoji, fallback]
var emojiMap = map[string][2]string{
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"statistics": {"📊", "[STATS]"},
	"history":    {"📜", "[LOG]"},
	"chart":      {"📈", "[CHART]"},
	"gibberish":  {"🔤", "[GIB]"},
	"emotion":    {"💬", "[EMO]"},
	"trash":      {"🗑️", "[DEL]"},
	"watch":      {"👀", "[WATCH]"},
	"server":     {"🌐", "[HTTP]"},
	"file":       {"📄", "[FILE]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	mapping, exists := emojiMap[key]
	if !exists {
		return "[?]"
	}
	if emojiDisabled {
		return mapping[1]
	}
	return mapping[0]
}
