// Package moderation holds the member-facing moderation commands: ban, kick,
// mute, unmute, unban, warn and role.
package moderation

// cleanupLimit is how many of the target's recent messages ban and mute remove.
const cleanupLimit = 4

// from returns args[i:], or nil when there are not that many.
func from(args []string, i int) []string {
	if i >= len(args) {
		return nil
	}
	return args[i:]
}
