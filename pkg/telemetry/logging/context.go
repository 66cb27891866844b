package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// CallIDKey is the context key for per-call attempt IDs.
	CallIDKey contextKey = "call_id"

	// MethodKey is the context key for platform method names.
	MethodKey contextKey = "method"

	// ChatIDKey is the context key for target chat identifiers.
	ChatIDKey contextKey = "chat_id"
)

// WithCallID adds a call attempt ID to the context.
func WithCallID(ctx context.Context, callID string) context.Context {
	return context.WithValue(ctx, CallIDKey, callID)
}

// GetCallID retrieves the call attempt ID from the context.
func GetCallID(ctx context.Context) string {
	if callID, ok := ctx.Value(CallIDKey).(string); ok {
		return callID
	}
	return ""
}

// WithMethod adds a platform method name to the context.
func WithMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, MethodKey, method)
}

// GetMethod retrieves the platform method name from the context.
func GetMethod(ctx context.Context) string {
	if method, ok := ctx.Value(MethodKey).(string); ok {
		return method
	}
	return ""
}

// WithChatID adds a target chat identifier to the context.
func WithChatID(ctx context.Context, chatID string) context.Context {
	return context.WithValue(ctx, ChatIDKey, chatID)
}

// GetChatID retrieves the target chat identifier from the context.
func GetChatID(ctx context.Context) string {
	if chatID, ok := ctx.Value(ChatIDKey).(string); ok {
		return chatID
	}
	return ""
}

// extractContextFields collects known context values as alternating
// key/value log args.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if callID := GetCallID(ctx); callID != "" {
		fields = append(fields, string(CallIDKey), callID)
	}
	if method := GetMethod(ctx); method != "" {
		fields = append(fields, string(MethodKey), method)
	}
	if chatID := GetChatID(ctx); chatID != "" {
		fields = append(fields, string(ChatIDKey), chatID)
	}

	return fields
}
