package reports

// Delivery is the payload shipped to the external report delivery endpoint.
// ReportPDF carries the rendered document base64-encoded.
type Delivery struct {
	Email          string `json:"email"`
	Source         string `json:"source"`
	Feedback       string `json:"feedback,omitempty"`
	ReportPDF      string `json:"reportPdf"`
	ReportFileName string `json:"reportFileName"`
	ContractName   string `json:"contractName"`
	OverallScore   int    `json:"overallScore"`
}
