package contracts

// ContractID keys the history lineage of a document. It is derived from the
// document label and a bounded prefix of its text, so re-analyzing identical
// content lands on the same lineage. It is an advisory grouping key, not a
// unique identity.
type ContractID string

// FrameworkKey enum
type FrameworkKey string

const (
	FrameworkGDPR  FrameworkKey = "gdpr"
	FrameworkSOC2  FrameworkKey = "soc2"
	FrameworkCCPA  FrameworkKey = "ccpa"
	FrameworkHIPAA FrameworkKey = "hipaa"
)

// FrameworkKeys lists the four scored frameworks in display order.
var FrameworkKeys = []FrameworkKey{FrameworkGDPR, FrameworkSOC2, FrameworkCCPA, FrameworkHIPAA}

// ChecklistItem is one requirement line of a framework verdict.
type ChecklistItem struct {
	Requirement string `json:"requirement"`
	Present     bool   `json:"present"`
	Note        string `json:"note,omitempty"`
}

// Gap pairs a missing element with suggested contract language.
type Gap struct {
	Issue       string `json:"issue"`
	Remediation string `json:"remediation"`
}

// FrameworkResult value object
type FrameworkResult struct {
	Score      int             `json:"score"`
	Applicable bool            `json:"applicable"`
	Checklist  []ChecklistItem `json:"checklist"`
	Gaps       []Gap           `json:"gaps"`
}

// Report is the full compliance verdict for one contract, shaped exactly
// like the analyzer's JSON output.
type Report struct {
	OverallScore int             `json:"overallScore"`
	GDPR         FrameworkResult `json:"gdpr"`
	SOC2         FrameworkResult `json:"soc2"`
	CCPA         FrameworkResult `json:"ccpa"`
	HIPAA        FrameworkResult `json:"hipaa"`
	Summary      string          `json:"summary"`
}

// Framework returns the result block for a known framework key, nil otherwise.
func (r *Report) Framework(key FrameworkKey) *FrameworkResult {
	switch key {
	case FrameworkGDPR:
		return &r.GDPR
	case FrameworkSOC2:
		return &r.SOC2
	case FrameworkCCPA:
		return &r.CCPA
	case FrameworkHIPAA:
		return &r.HIPAA
	}
	return nil
}
