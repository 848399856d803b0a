package assistant

import (
	"fmt"
	"strings"

	"github.com/dealerdesk/dealerdesk/internal/crm"
)

const researchSystem = `You are a Vehicle Research Specialist at a premium automotive dealership. You know the current inventory and manufacturer specifications in depth, and you help customers find the right vehicle with accurate, specific recommendations. Never invent vehicles or figures that are not in the provided context.`

const schedulingSystem = `You are an Appointment Scheduling Coordinator at a premium automotive dealership. You confirm test drive appointments warmly and efficiently, always including the confirmation number, location, and available hours.`

// buildResearchPrompt assembles the research task: the customer question, the
// matched inventory, optional manufacturer and semantic context, and the
// fixed response shape the reply must follow.
func buildResearchPrompt(message string, summaries []string, knowledgeBlock, semanticBlock string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer inquiry: %q\n\n", message)

	if len(summaries) == 0 {
		b.WriteString("No vehicles in the current inventory match this inquiry. Say so politely and suggest the customer broaden their criteria or ask about other categories.\n")
	} else {
		b.WriteString("Matching vehicles from current inventory:\n\n")
		for _, summary := range summaries {
			b.WriteString(summary)
			b.WriteString("\n")
		}
	}

	if knowledgeBlock != "" {
		b.WriteString(knowledgeBlock)
	}
	if semanticBlock != "" {
		b.WriteString(semanticBlock)
	}

	b.WriteString("\nResponse requirements:\n")
	b.WriteString("- Keep the entire reply under 150 words.\n")
	b.WriteString("- If comparing vehicles, use a markdown table with at most 3 rows.\n")
	b.WriteString("- Highlight 2-3 standout points as bullet points.\n")
	b.WriteString("- Only reference vehicles listed above.\n")
	b.WriteString("- End with one short question that moves the conversation forward.\n")

	return b.String()
}

// buildSchedulingPrompt assembles the scheduling task around an
// already-issued confirmation number.
func buildSchedulingPrompt(message, confirmationNumber string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer request: %q\n\n", message)
	b.WriteString("A test drive appointment has been reserved with these details:\n")
	fmt.Fprintf(&b, "- Confirmation number: %s\n", confirmationNumber)
	fmt.Fprintf(&b, "- Location: %s\n", crm.DealershipLocation)
	b.WriteString("- Available hours: Monday-Saturday, 9 AM - 6 PM\n\n")
	b.WriteString("Confirm the appointment in a warm, concise reply under 100 words. Include the confirmation number, the location, and the available hours, and ask what day and time works best if the customer did not name one.\n")

	return b.String()
}
