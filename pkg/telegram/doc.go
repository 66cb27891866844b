// Package telegram is the boundary between the admission engine and the
// platform client.
//
// # Overview
//
// The Invoker wraps every outbound call in the full traffic-shaping
// sequence: classify the method, acquire an admission grant, run the
// call with flood-aware retries, and release the grant with the call's
// outcome. Callers supply the actual platform interaction as a CallFunc
// and never talk to the limiter directly.
//
// # Usage
//
//	inv := telegram.NewInvoker(limiter, logger)
//
//	err := inv.Call(ctx, "send_message", telegram.ChatScope(chatID), func(ctx context.Context) error {
//		return client.SendMessage(ctx, chatID, text)
//	})
//
// Errors raised by the platform in FLOOD_WAIT form are mapped to
// *limits.FloodWaitError by MapError so the retry loop can honor the
// server-mandated wait.
package telegram
