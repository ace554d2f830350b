package dialog

import "testing"

func TestMapToTopic(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"tax keyword", "I need help with my income tax filing", TopicTaxPlanning},
		{"retirement keyword", "planning for retirement and my NPS corpus", TopicRetirementPlanning},
		{"insurance keyword", "want to review my term plan premium", TopicInsuranceReview},
		{"loan keyword", "my home loan EMI is too high", TopicLoanConsultation},
		{"estate keyword", "I want to write a will for my kids", TopicEstatePlanning},
		{"no match", "I like long walks on the beach", ""},
		{"tie is ambiguous", "loan and insurance", ""},
		{"higher score wins tie-breaks", "home loan refinance vs my insurance", TopicLoanConsultation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapToTopic(tc.text); got != tc.want {
				t.Errorf("MapToTopic(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestEveryTopicHasLabelAndChecklist(t *testing.T) {
	for _, topic := range Topics {
		if !IsValidTopic(topic) {
			t.Errorf("topic %q not in keyword set", topic)
		}
		if TopicLabels[topic] == "" {
			t.Errorf("topic %q has no label", topic)
		}
		if PreparationChecklists[topic] == "" {
			t.Errorf("topic %q has no preparation checklist", topic)
		}
	}
}
