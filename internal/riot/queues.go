package riot

import "fmt"

// queueNames maps Riot queue ids to the labels the clan site displays.
var queueNames = map[int64]string{
	0:    "Custom",
	400:  "Normal Draft",
	420:  "Ranked Solo/Duo",
	430:  "Normal Blind",
	440:  "Ranked Flex",
	450:  "ARAM",
	480:  "Swiftplay",
	490:  "Quickplay",
	700:  "Clash",
	720:  "ARAM Clash",
	830:  "Co-op vs. AI Intro",
	840:  "Co-op vs. AI Beginner",
	850:  "Co-op vs. AI Intermediate",
	900:  "URF",
	1020: "One for All",
	1300: "Nexus Blitz",
	1400: "Ultimate Spellbook",
	1700: "Arena",
	1900: "Pick URF",
	2000: "Tutorial",
	2010: "Tutorial",
	2020: "Tutorial",
}

// QueueName resolves a queue id to a display label. Unknown ids fall back
// to a coarse range-based guess, then to a numeric label.
func QueueName(queueID int64) string {
	if name, ok := queueNames[queueID]; ok {
		return name
	}
	switch {
	case queueID >= 400 && queueID < 500:
		return "Summoner's Rift"
	case queueID >= 800 && queueID < 900:
		return "Co-op vs. AI"
	case queueID >= 2000 && queueID < 2100:
		return "Tutorial"
	}
	return fmt.Sprintf("Queue %d", queueID)
}

// deniedQueues are game modes whose spectator signal is inherently
// unreliable (customs and practice tool report as queue 0). These are
// never treated as a live game.
var deniedQueues = map[int64]bool{
	0: true,
}

// QueueDenied reports whether the queue id is excluded from live-game
// detection regardless of staleness.
func QueueDenied(queueID int64) bool {
	return deniedQueues[queueID]
}
