// Package logging provides structured logging for telepace on top of
// log/slog.
//
// # Overview
//
// The Logger wraps slog with:
//
//   - Level and format parsing from configuration (json, text, console)
//   - Redaction of Telegram credentials and phone numbers in log fields
//   - Context field extraction (call_id, method, chat_id) so every log
//     line for one call attempt correlates
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil { ... }
//	defer logger.Shutdown()
//
//	ctx = logging.WithCallID(ctx, callID)
//	logger.InfoContext(ctx, "message sent", "chat_id", chatID)
//
// # Redaction
//
// Telegram session credentials (api_hash, bot tokens) and phone numbers
// must never reach log output; redaction is on by default and rewrites
// string fields in place before the handler sees them.
package logging
