package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/crm"
	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/knowledge"
	"github.com/dealerdesk/dealerdesk/internal/llm"
	"github.com/dealerdesk/dealerdesk/internal/observability"
	"github.com/dealerdesk/dealerdesk/internal/session"
	"github.com/dealerdesk/dealerdesk/internal/vector"
)

// ErrEmptyMessage rejects requests whose message is blank.
var ErrEmptyMessage = errors.New("message must not be empty")

// apologyResponse is the fixed fallback whenever generation fails. The
// failure itself is logged; the customer never sees internals.
const apologyResponse = "I apologize, I encountered an error. Please try again."

// actionAgentResponse is the only action type the pipeline currently emits.
const actionAgentResponse = "agent_response"

// Action records one observable step taken while answering.
type Action struct {
	Type   string   `json:"type"`
	Agents []string `json:"agents,omitempty"`
}

// Reply is the pipeline's answer to one message.
type Reply struct {
	Response       string         `json:"response"`
	ConversationID string         `json:"conversation_id"`
	ActionsTaken   []Action       `json:"actions_taken"`
	AgentsUsed     []string       `json:"agents_used"`
	Metadata       map[string]any `json:"metadata"`
}

// Options tunes the pipeline.
type Options struct {
	// Temperature is passed through to every generation request.
	Temperature float64
	// SearchTopK is how many semantic snippets to request. Zero means 3.
	SearchTopK int
}

// Assistant orchestrates routing, retrieval, and generation for the chat
// endpoint. All fields except Searcher, Appointments, and Leads are
// required; the optional ones degrade to skipping their step.
type Assistant struct {
	inventory    *inventory.Store
	knowledge    *knowledge.Base
	sessions     session.Store
	generator    llm.Generator
	searcher     vector.Searcher
	appointments *crm.AppointmentStore
	leads        *crm.LeadStore
	logger       *observability.Logger
	opts         Options
}

// Deps wires an Assistant.
type Deps struct {
	Inventory    *inventory.Store
	Knowledge    *knowledge.Base
	Sessions     session.Store
	Generator    llm.Generator
	Searcher     vector.Searcher
	Appointments *crm.AppointmentStore
	Leads        *crm.LeadStore
	Logger       *observability.Logger
}

// New builds an Assistant from its dependencies.
func New(deps Deps, opts Options) (*Assistant, error) {
	if deps.Inventory == nil || deps.Knowledge == nil || deps.Sessions == nil || deps.Generator == nil {
		return nil, fmt.Errorf("assistant: inventory, knowledge, sessions, and generator are required")
	}
	if deps.Logger == nil {
		deps.Logger = observability.Nop()
	}
	if opts.SearchTopK <= 0 {
		opts.SearchTopK = 3
	}
	return &Assistant{
		inventory:    deps.Inventory,
		knowledge:    deps.Knowledge,
		sessions:     deps.Sessions,
		generator:    deps.Generator,
		searcher:     deps.Searcher,
		appointments: deps.Appointments,
		leads:        deps.Leads,
		logger:       deps.Logger,
		opts:         opts,
	}, nil
}

// HandleMessage runs one message through the pipeline. The user turn is
// recorded before dispatch, so it survives even when generation fails and
// the apology fallback is returned.
func (a *Assistant) HandleMessage(ctx context.Context, conversationID, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	if conversationID == "" {
		conversationID = a.sessions.Create()
	}
	a.sessions.Append(conversationID, session.Turn{
		Role:      session.RoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
	})

	logger := a.logger.WithConversation(conversationID)
	decision := DecideRoute(message)

	var (
		text   string
		agents []string
		err    error
	)
	switch decision.Route {
	case RouteScheduling:
		agents = []string{agentScheduling}
		text, err = a.handleScheduling(ctx, logger, message)
	default:
		agents = []string{agentResearch}
		if decision.Qualified {
			agents = append(agents, agentQualifier)
			a.captureLead(logger, message)
		}
		text, err = a.handleResearch(ctx, logger, message)
	}

	if err != nil {
		logger.Error().Err(err).Str("route", string(decision.Route)).Msg("Pipeline failed, returning fallback")
		return Reply{
			Response:       apologyResponse,
			ConversationID: conversationID,
			ActionsTaken:   []Action{},
			AgentsUsed:     []string{},
			Metadata:       map[string]any{},
		}, nil
	}

	logger.Info().
		Str("route", string(decision.Route)).
		Strs("agents", agents).
		Msg("Message handled")

	return Reply{
		Response:       text,
		ConversationID: conversationID,
		ActionsTaken:   []Action{{Type: actionAgentResponse, Agents: agents}},
		AgentsUsed:     agents,
		Metadata:       map[string]any{},
	}, nil
}

// handleResearch retrieves matching inventory and context blocks, then asks
// the generator for a recommendation.
func (a *Assistant) handleResearch(ctx context.Context, logger *observability.Logger, message string) (string, error) {
	criteria := ExtractCriteria(message)
	matches := a.inventory.Search(criteria)
	if len(matches) > presentationLimit {
		matches = matches[:presentationLimit]
	}

	summaries := make([]string, 0, len(matches))
	for i := range matches {
		rec := &matches[i]
		entry, _ := a.knowledge.Lookup(rec.Make, rec.Model)
		summaries = append(summaries, FormatVehicleSummary(rec, entry))
	}

	knowledgeBlock := formatKnowledgeContext(a.knowledge, matches)
	semanticBlock := a.semanticContext(ctx, logger, message)

	prompt := buildResearchPrompt(message, summaries, knowledgeBlock, semanticBlock)
	return a.generator.Generate(ctx, llm.Request{
		System:      researchSystem,
		Prompt:      prompt,
		Temperature: a.opts.Temperature,
	})
}

// handleScheduling books a pending appointment and asks the generator to
// confirm it. A booking-store failure is logged and the confirmation still
// goes out; the number was already issued.
func (a *Assistant) handleScheduling(ctx context.Context, logger *observability.Logger, message string) (string, error) {
	confirmation := crm.NewConfirmationNumber()

	if a.appointments != nil {
		if _, err := a.appointments.Book(crm.Appointment{
			ConfirmationNumber: confirmation,
			ContactInfo:        message,
		}); err != nil {
			logger.Warn().Err(err).Msg("Appointment store write failed")
		}
	}

	prompt := buildSchedulingPrompt(message, confirmation)
	return a.generator.Generate(ctx, llm.Request{
		System:      schedulingSystem,
		Prompt:      prompt,
		Temperature: a.opts.Temperature,
	})
}

// semanticContext queries the configured searcher. Any failure degrades to
// an empty context block.
func (a *Assistant) semanticContext(ctx context.Context, logger *observability.Logger, message string) string {
	if a.searcher == nil {
		return ""
	}
	snippets, err := a.searcher.Search(ctx, message, a.opts.SearchTopK)
	if err != nil {
		logger.Warn().Err(err).Msg("Semantic search failed, continuing without context")
		return ""
	}
	return vector.FormatContext(snippets)
}

// captureLead records a qualified inquiry. Lead capture is best effort and
// never blocks the reply.
func (a *Assistant) captureLead(logger *observability.Logger, message string) {
	if a.leads == nil {
		return
	}

	criteria := ExtractCriteria(message)
	lead := crm.Lead{Interest: message}
	if criteria.MaxPrice != nil {
		lead.Budget = fmt.Sprintf("Under $%s", formatThousands(*criteria.MaxPrice))
	}

	created, err := a.leads.Create(lead)
	if err != nil {
		logger.Warn().Err(err).Msg("Lead capture failed")
		return
	}
	logger.Info().Str("lead_id", created.LeadID).Msg("Captured lead")
}
