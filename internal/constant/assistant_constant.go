// Package constant centralises the tier identifiers, chat roles, and
// user-facing message texts shared across the pipeline, services, and
// clients.
package constant

// Tier identifiers recorded on every answered query. A tier is set exactly
// once per query and never overwritten downstream.
const (
	TierDataset   = "dataset"
	TierSLM       = "slm"
	TierRAG       = "rag"
	TierGuardrail = "guardrail"
	TierUnknown   = "unknown"
)

// Chat turn roles stored in session history.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// User-facing messages. These are part of the observable behaviour of the
// assistant; change them deliberately.
const (
	EmptyQueryMessage = "Please enter a valid question."

	OutOfDomainMessage = "I'm sorry, but I can only help with banking, financial services, " +
		"and insurance related queries. Could you please ask a BFSI-related " +
		"question? For example, you can ask about loans, accounts, cards, " +
		"insurance, or digital banking."

	HarmfulContentMessage = "I'm unable to assist with that request as it may involve illegal " +
		"or harmful activities. If you have a legitimate banking query, " +
		"I'm happy to help."

	GenerationUnavailableMessage = "I'm sorry, our answer generation service is temporarily " +
		"unavailable. Please try again shortly, or contact your bank branch " +
		"or customer care helpline for assistance."

	WelcomeMessage = "Hello! I'm your BFSI assistant. I can help with questions about " +
		"loans, accounts, cards, insurance, and digital banking. How can I help you today?"

	ComplianceDisclaimer = "\n\n*Disclaimer: This information is for general guidance only. " +
		"For specific rates, charges, or account-level details, please " +
		"contact your bank branch or customer care helpline.*"
)

// System prompts for the generation tiers.
const (
	SystemPromptPlain = "You are a helpful BFSI (Banking, Financial Services, and Insurance) " +
		"call center assistant. Provide accurate, concise, and compliant " +
		"responses. Never guess financial numbers or rates. If unsure, advise " +
		"the customer to contact the branch or helpline."

	SystemPromptGrounded = "You are a helpful BFSI (Banking, Financial Services, and Insurance) " +
		"call center assistant. Use the context provided below to answer the " +
		"customer's question. If the request involves drafting content (emails, letters), " +
		"structure it as requested while ensuring factual details align with the context. " +
		"If the context is irrelevant, state that you cannot answer."
)
