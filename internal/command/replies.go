package command

// Replies is the fixed text catalogue for user-facing messages.
var Replies = struct {
	NoPermission   string
	DeniedBan      string
	DeniedKick     string
	DeniedMute     string
	DeniedUnmute   string
	DeniedUnban    string
	DeniedWarn     string
	DeniedChannels string
	DeniedRoles    string
	NoReason       string

	MentionUser    string
	CannotBan      string
	CannotKick     string
	CannotMute     string
	MissingTime    string
	InvalidTime    string
	MaxTimeout     string
	NotMuted       string
	UnmutedReason  string
	UnbanUsage     string
	UnbanFailed    string
	SlowmodeUsage  string
	SlowmodeRange  string
	SlowmodeOff    string
	SlowmodeOn     string
	SlowmodeKilled string
	Locked         string
	Unlocked       string
	WarnedDM       string
	WarnedClosedDM string
	RoleUsage      string
	RoleTooHigh    string
	Nuked          string

	BanFailed      string
	KickFailed     string
	MuteFailed     string
	UnmuteFailed   string
	SlowmodeFailed string
	LockFailed     string
	UnlockFailed   string
	RoleFailed     string
	NukeFailed     string
	InfoFailed     string
}{
	NoPermission:   "You don't have permission to use this command.",
	DeniedBan:      "You don't have permission to ban.",
	DeniedKick:     "You don't have permission to kick.",
	DeniedMute:     "You don't have permission to mute.",
	DeniedUnmute:   "You don't have permission to unmute.",
	DeniedUnban:    "You don't have permission to unban.",
	DeniedWarn:     "You don't have permission to warn.",
	DeniedChannels: "You don't have permission to manage channels.",
	DeniedRoles:    "You don't have permission to manage roles.",
	NoReason:       "No reason given",

	MentionUser:    "Mention a valid user.",
	CannotBan:      "I can't ban that user.",
	CannotKick:     "I can't kick that user.",
	CannotMute:     "I can't mute that user.",
	MissingTime:    "Give a duration (e.g. 10m).",
	InvalidTime:    "Invalid duration (s/m/h/d).",
	MaxTimeout:     "Maximum 28 days.",
	NotMuted:       "User is not muted.",
	UnmutedReason:  "Unmuted",
	UnbanUsage:     "Usage: `%sunban <ID>`",
	UnbanFailed:    "User is not banned or the unban failed.",
	SlowmodeUsage:  "Usage: `%sslowmode <seconds>` or `%sslowmode off`",
	SlowmodeRange:  "Invalid duration (0 to 21600 seconds).",
	SlowmodeOff:    "Slowmode disabled in this channel.",
	SlowmodeOn:     "Slowmode enabled: 1 message every %d seconds.",
	SlowmodeKilled: "Slowmode removed from this channel.",
	Locked:         "Channel locked.",
	Unlocked:       "Channel unlocked.",
	WarnedDM:       "%s was warned in DMs.",
	WarnedClosedDM: "%s was warned (DMs closed).",
	RoleUsage:      "Usage: `%srole @role @user`",
	RoleTooHigh:    "That role is higher than mine.",
	Nuked:          "Channel nuked and recreated! All clean.",

	BanFailed:      "Error while banning.",
	KickFailed:     "Error while kicking.",
	MuteFailed:     "Error while muting.",
	UnmuteFailed:   "Error while unmuting.",
	SlowmodeFailed: "Error while changing slowmode.",
	LockFailed:     "Error while locking the channel.",
	UnlockFailed:   "Error while unlocking the channel.",
	RoleFailed:     "Error while updating the role.",
	NukeFailed:     "Error while nuking.",
	InfoFailed:     "Couldn't load server information.",
}
