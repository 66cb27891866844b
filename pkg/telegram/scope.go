package telegram

import "strconv"

// ChatScope returns the scope identifier for a numeric chat or group id.
// Scope identifiers key the per-target windows; a chat and the group it
// belongs to never share one.
func ChatScope(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// UsernameScope returns the scope identifier for a username target.
func UsernameScope(username string) string {
	return username
}
