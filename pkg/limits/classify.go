package limits

import "strings"

// Priority tiers assigned to call methods. Higher tiers get shorter pacing
// delays.
const (
	PriorityLow    = 1
	PriorityNormal = 2
	PriorityMedium = 3
	PriorityHigh   = 5
)

// groupMethods are the group-management operations whose target scope is
// limited as a group (per-minute window) rather than a one-to-one chat
// (per-second window). This is a heuristic on the method name: the real
// peer type is not queried before classification, so a generically named
// call targeting a group still gets chat limits and vice versa.
var groupMethods = map[string]bool{
	"get_chat_members":      true,
	"get_chat_admins":       true,
	"ban_chat_member":       true,
	"unban_chat_member":     true,
	"kick_chat_member":      true,
	"promote_to_admin":      true,
	"add_chat_member":       true,
	"get_chat_online_count": true,
}

// resolveMethods are the lookup/search operations subject to the daily
// resolve quota. Telegram counts these toward account-level abuse scoring,
// so they get a hard per-day ceiling on top of the windows.
var resolveMethods = map[string]bool{
	"resolve_username": true,
	"search_global":    true,
	"search_chats":     true,
	"search_users":     true,
	"get_entity_info":  true,
	"resolve_phone":    true,
	"check_username":   true,
}

var highPriorityMethods = map[string]bool{
	"send_message":     true,
	"reply_to_message": true,
	"get_me":           true,
	"get_user_info":    true,
	"edit_message":     true,
	"delete_message":   true,
	"forward_message":  true,
}

var mediumPriorityMethods = map[string]bool{
	"send_file":        true,
	"get_chat_info":    true,
	"get_chat_history": true,
	"get_chat_members": true,
	"search_messages":  true,
	"download_file":    true,
}

var lowPriorityMethods = map[string]bool{
	"get_all_chats":   true,
	"get_folders":     true,
	"search_global":   true,
	"get_entity_info": true,
}

// IsGroupMethod reports whether a method's target scope should be limited
// with group-style (per-minute) windows. Matching is case-insensitive.
func IsGroupMethod(method string) bool {
	return groupMethods[strings.ToLower(method)]
}

// IsResolveMethod reports whether a method counts against the daily
// resolve quota.
func IsResolveMethod(method string) bool {
	return resolveMethods[method]
}

// Priority returns the pacing priority tier (1-5) for a method. Methods in
// no tier set default to PriorityNormal.
func Priority(method string) int {
	switch {
	case highPriorityMethods[method]:
		return PriorityHigh
	case mediumPriorityMethods[method]:
		return PriorityMedium
	case lowPriorityMethods[method]:
		return PriorityLow
	default:
		return PriorityNormal
	}
}
