package assistant

import "strings"

// Route identifies which specialist flow handles a message.
type Route string

const (
	// RouteResearch handles inventory questions, comparisons, and general
	// vehicle queries. It is the default when no rule fires.
	RouteResearch Route = "research"

	// RouteScheduling handles test drive and appointment requests.
	RouteScheduling Route = "scheduling"
)

// Agent labels reported back to callers in agents_used.
const (
	agentResearch   = "research"
	agentScheduling = "scheduling"
	agentQualifier  = "qualifier"
)

// routeRule maps trigger keywords to a route. Rules are evaluated in order
// and the first hit wins, so scheduling cues take strict priority over
// everything else.
type routeRule struct {
	keywords []string
	route    Route
}

var routeRules = []routeRule{
	{keywords: []string{"schedule", "test drive", "appointment", "book", "visit"}, route: RouteScheduling},
}

// qualifierCues mark purchase intent worth capturing as a lead. They never
// change the route; they only add the qualifier agent to a research reply.
var qualifierCues = []string{"interested", "want", "need", "looking for", "buy"}

// Decision is the outcome of routing a message.
type Decision struct {
	Route     Route
	Qualified bool
}

// DecideRoute classifies a message by case-insensitive keyword matching.
func DecideRoute(message string) Decision {
	lower := strings.ToLower(message)
	for _, rule := range routeRules {
		if containsAny(lower, rule.keywords) {
			return Decision{Route: rule.route}
		}
	}
	return Decision{
		Route:     RouteResearch,
		Qualified: containsAny(lower, qualifierCues),
	}
}
