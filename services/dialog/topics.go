package dialog

import "strings"

// The five consultation topics an advisor session can cover.
const (
	TopicTaxPlanning        = "tax_planning"
	TopicRetirementPlanning = "retirement_planning"
	TopicInsuranceReview    = "insurance_review"
	TopicLoanConsultation   = "loan_consultation"
	TopicEstatePlanning     = "estate_planning"
)

// Topics lists the fixed topic set in presentation order.
var Topics = []string{
	TopicTaxPlanning,
	TopicRetirementPlanning,
	TopicInsuranceReview,
	TopicLoanConsultation,
	TopicEstatePlanning,
}

var topicKeywords = map[string][]string{
	TopicTaxPlanning:        {"tax", "taxes", "itr", "deduction", "deductions", "80c", "filing", "income tax", "tds"},
	TopicRetirementPlanning: {"retirement", "retire", "pension", "nps", "ppf", "corpus", "annuity"},
	TopicInsuranceReview:    {"insurance", "policy", "premium", "cover", "coverage", "term plan", "health plan", "claim"},
	TopicLoanConsultation:   {"loan", "emi", "mortgage", "home loan", "borrow", "refinance", "interest rate"},
	TopicEstatePlanning:     {"estate", "will", "inheritance", "nominee", "succession", "trust", "legacy"},
}

// TopicLabels maps topic IDs to the names used in assistant replies.
var TopicLabels = map[string]string{
	TopicTaxPlanning:        "tax planning",
	TopicRetirementPlanning: "retirement planning",
	TopicInsuranceReview:    "insurance review",
	TopicLoanConsultation:   "loan consultation",
	TopicEstatePlanning:     "estate planning",
}

// MapToTopic scores each topic by keyword hits in the normalized text and
// returns the topic with the strictly highest non-zero score. Ties are not
// broken: an ambiguous utterance maps to "" and triggers a re-prompt.
func MapToTopic(text string) string {
	lower := strings.ToLower(text)

	best, bestScore := "", 0
	tied := false
	for _, topic := range Topics {
		score := 0
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = topic, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}
	if bestScore == 0 || tied {
		return ""
	}
	return best
}

// IsValidTopic checks membership in the fixed topic set.
func IsValidTopic(topic string) bool {
	_, ok := topicKeywords[topic]
	return ok
}

// PreparationChecklists holds the fixed what-to-prepare guidance per topic.
var PreparationChecklists = map[string]string{
	TopicTaxPlanning:        "Please bring: last year's ITR, Form 16, investment proofs (80C/80D), rent receipts if claiming HRA, and any capital gains statements.",
	TopicRetirementPlanning: "Please bring: current retirement account statements (EPF/PPF/NPS), a rough monthly expense estimate, existing SIP details, and your target retirement age.",
	TopicInsuranceReview:    "Please bring: all active policy documents, premium payment receipts, nominee details, and any recent claim correspondence.",
	TopicLoanConsultation:   "Please bring: latest loan statements, sanction letters, your credit report if available, and income documents for the last 3 months.",
	TopicEstatePlanning:     "Please bring: a list of assets and liabilities, existing will or trust deeds if any, nominee records, and family member details.",
}
