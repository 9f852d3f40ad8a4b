// Package filter classifies raw session-log lines into kept and excluded
// sequences, separating connectivity-relevant lines from operational noise.
package filter

// transportTokens mark lines touching any connection medium or the
// connection manager. A line must mention one of these, a shutdown token, or
// a resolved device pattern to be a candidate at all.
var transportTokens = []string{
	"TCP",
	"UDP",
	"socket",
	"mDNS",
	"DirectConnect",
	"WiFi",
	"BLE",
	"Bluetooth",
	"ANT+",
	"ConnectionManager",
}

// shutdownTokens mark lines from the graceful-shutdown lifecycle.
var shutdownTokens = []string{
	"shutdown",
	"Shutdown",
	"gracefully",
	"destroyed",
	"Watchdog",
}

// forceExcludeMarkers are high-frequency noise dropped unconditionally,
// before any keep rule runs. These two account for the bulk of BLE chatter
// in a typical session log.
var forceExcludeMarkers = []string{
	"Advertising characteristic",
	"Battery level",
}

// gracefulMarkers force a candidate line to be kept: shutdown-sequence
// evidence must survive filtering for session boundaries to be found.
var gracefulMarkers = []string{
	"gracefully",
	"Shutting down",
}

// standardExclusions drop candidate lines from subsystems unrelated to
// connectivity that happen to mention a transport token.
var standardExclusions = []string{
	"Loading asset",
	"Loading WAD",
	"Texture",
	"GroupEvents",
	"UI_",
	"Steering",
	"VideoCapture",
	"SocialFeed",
}
