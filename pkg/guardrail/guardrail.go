// Package guardrail implements the pre-query and post-response safety
// filters for the BFSI assistant: domain gating, harmful-intent blocking,
// PII redaction, fabrication redaction and compliance disclaimers.
package guardrail

import (
	"regexp"
	"strings"

	"bfsi-assistant-be/internal/constant"
)

// bfsiKeywords is the domain vocabulary. A query must contain at least one
// of these (or be a greeting) to pass the pre-check. Substring match on the
// lowercased query, no ML involved, so the gate stays fast and auditable.
var bfsiKeywords = []string{
	"loan", "emi", "interest", "bank", "account", "deposit", "credit",
	"debit", "insurance", "policy", "premium", "claim", "mortgage",
	"savings", "current account", "fixed deposit", "fd", "rd",
	"recurring", "neft", "rtgs", "imps", "upi", "cheque", "check",
	"atm", "kyc", "aadhaar", "pan", "ifsc", "swift", "nominee",
	"pension", "mutual fund", "sip", "tax", "tds", "gst", "npa",
	"cibil", "credit score", "card", "payment", "transaction",
	"balance", "transfer", "statement", "passbook", "overdraft",
	"collateral", "guarantee", "lien", "ppf", "epf", "sukanya",
	"mudra", "jan dhan", "locker", "forex", "remittance", "gold loan",
	"vehicle loan", "car loan", "home loan", "personal loan",
	"education loan", "business loan", "rera", "ombudsman", "rbi",
	"sarfaesi", "pmjjby", "pmsby", "dicgc", "nbfc", "microfinance",
	"fintech", "digital banking", "mobile banking", "net banking",
}

// greetings pass the domain gate so the assistant can respond to small
// talk and meta questions. Matched exact or as a prefix of the query.
var greetings = []string{
	"hi", "hello", "hey", "good morning", "good evening",
	"thanks", "thank you", "bye", "help", "what can you do",
}

var harmfulIntentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(hack|steal|fraud|launder|illegal|evade|forge|counterfeit)\b`),
	regexp.MustCompile(`\b(bypass\s+kyc|fake\s+id|money\s+laundering)\b`),
}

// redactionRule pairs a PII pattern with its placeholder. piiRules is
// ORDER SENSITIVE: specific patterns (Aadhaar, PAN, account numbers) must
// run before the generic 10-digit phone pattern, which would otherwise
// consume substrings of the earlier matches. Placeholders contain no
// digits, which makes redaction idempotent.
type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var piiRules = []redactionRule{
	{regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`), "[AADHAAR_REDACTED]"},            // Aadhaar
	{regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`), "[PAN_REDACTED]"},                   // PAN
	{regexp.MustCompile(`\b\d{9,18}\b`), "[ACCOUNT_NUMBER_REDACTED]"},                  // Account numbers
	{regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), "[PHONE_REDACTED]"},      // Phone (US-style)
	{regexp.MustCompile(`\b\d{10}\b`), "[PHONE_REDACTED]"},                             // Indian phone
}

// Phrases suggesting fabricated specifics the model has no way of knowing.
var fabricationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\byour\s+(exact|specific)\s+(balance|amount|rate)\s+is\b`),
	regexp.MustCompile(`(?i)\byour\s+account\s+number\s+is\b`),
	regexp.MustCompile(`(?i)\byour\s+otp\s+is\b`),
}

const fabricationMarker = "[REDACTED - contact your branch for specifics]"

// financialAdviceKeywords trigger the compliance disclaimer when they show
// up in a generated response.
var financialAdviceKeywords = []string{
	"interest rate", "emi", "premium", "tax benefit",
	"loan amount", "eligibility", "credit score",
}

// Guardrail applies pre- and post-processing safety filters. It is
// stateless and safe for concurrent use.
type Guardrail struct{}

func New() *Guardrail {
	return &Guardrail{}
}

// CheckQuery validates the user query before any tier runs. Returns
// (false, message) when the query must be rejected; the message is the
// user-facing rejection text, never an error.
func (g *Guardrail) CheckQuery(query string) (bool, string) {
	qLower := strings.ToLower(strings.TrimSpace(query))

	// 1. Empty query
	if qLower == "" {
		return false, constant.EmptyQueryMessage
	}

	// 2. Harmful intent. Checked before the domain gate so a harmful query
	// containing banking vocabulary is still blocked with the harmful
	// message, not waved through.
	for _, pattern := range harmfulIntentPatterns {
		if pattern.MatchString(qLower) {
			return false, constant.HarmfulContentMessage
		}
	}

	// 3. Domain check: at least one BFSI keyword should appear
	for _, kw := range bfsiKeywords {
		if strings.Contains(qLower, kw) {
			return true, ""
		}
	}

	// Allow greetings / meta questions through
	for _, greeting := range greetings {
		if qLower == greeting || strings.HasPrefix(qLower, greeting) {
			return true, ""
		}
	}

	return false, constant.OutOfDomainMessage
}

// SanitiseResponse cleans a generated response before it reaches the user.
// Pure and total: a response matching nothing comes back unchanged apart
// from whitespace trimming.
func (g *Guardrail) SanitiseResponse(response string) string {
	// 1. Redact any PII that leaked through, in rule order
	for _, rule := range piiRules {
		response = rule.pattern.ReplaceAllString(response, rule.replacement)
	}

	// 2. Flag fabricated-sounding specifics
	for _, pattern := range fabricationPatterns {
		response = pattern.ReplaceAllString(response, fabricationMarker)
	}

	// 3. Add disclaimer for financial advice, at most once
	respLower := strings.ToLower(response)
	for _, kw := range financialAdviceKeywords {
		if strings.Contains(respLower, kw) {
			if !strings.Contains(response, "Disclaimer") {
				response += constant.ComplianceDisclaimer
			}
			break
		}
	}

	return strings.TrimSpace(response)
}
