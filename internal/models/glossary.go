package models

// GlossaryResponse is the top-level response for the glossary endpoint.
type GlossaryResponse struct {
	Categories []GlossaryCategory `json:"categories"`
}

// GlossaryCategory groups related glossary terms.
type GlossaryCategory struct {
	Name  string         `json:"name"`
	Terms []GlossaryTerm `json:"terms"`
}

// GlossaryTerm defines a single term, optionally with its formula.
type GlossaryTerm struct {
	Term       string `json:"term"`
	Label      string `json:"label"`
	Definition string `json:"definition"`
	Formula    string `json:"formula,omitempty"`
}

// Glossary returns the cash-matching vocabulary used in results and reports.
func Glossary() GlossaryResponse {
	return GlossaryResponse{Categories: []GlossaryCategory{
		{
			Name: "Technique",
			Terms: []GlossaryTerm{
				{
					Term:       "cash_matching",
					Label:      "Cash matching / dedication",
					Definition: "Selecting fixed-income assets whose cash flows fund a known liability schedule.",
				},
				{
					Term:       "lp",
					Label:      "Linear program",
					Definition: "Linear objective with linear equality constraints over continuous non-negative variables.",
					Formula:    "min price·x  s.t.  CF·x + g·s[t-1] - s[t] = need[t],  x, s >= 0",
				},
			},
		},
		{
			Name: "Timeline",
			Terms: []GlossaryTerm{
				{
					Term:       "semiannual_period",
					Label:      "Semiannual period",
					Definition: "One step on the timeline; coupons and reinvestment compounding both occur at this cadence.",
				},
				{
					Term:       "surplus",
					Label:      "Surplus",
					Definition: "Cash left after meeting a period's requirement, carried forward at the reinvestment rate.",
					Formula:    "s[t] = g·s[t-1] + flow[t] - need[t],  g = 1 + rate/200",
				},
			},
		},
		{
			Name: "Holdings",
			Terms: []GlossaryTerm{
				{
					Term:       "face_value",
					Label:      "Face value",
					Definition: "Nominal principal held, on which coupon and redemption payments are computed.",
				},
				{
					Term:       "cost",
					Label:      "Cost",
					Definition: "Upfront purchase cost of a holding.",
					Formula:    "price × face_value",
				},
			},
		},
	}}
}
