package promotions

import "strings"

// Admit applies channel targeting and creator exposure rules. Channel names
// match case-insensitively after trimming surrounding whitespace, and an empty
// channel matches nothing.
func Admit(p Promotion, channel string, agent AgentContext) bool {
	if !hasChannel(p.Channels, channel) {
		return false
	}
	if !agent.IsCreatorAgent {
		return true
	}
	if !p.ExposeToCreators {
		return false
	}
	if !hasAny(p.AllowedCreatorIDs) {
		return true
	}
	return contains(p.AllowedCreatorIDs, agent.CreatorID)
}

func hasChannel(channels []string, channel string) bool {
	channel = normalizeChannel(channel)
	if channel == "" {
		return false
	}
	for _, c := range channels {
		if normalizeChannel(c) == channel {
			return true
		}
	}
	return false
}

func normalizeChannel(channel string) string {
	return strings.ToLower(strings.TrimSpace(channel))
}
