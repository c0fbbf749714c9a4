package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/grmcai/grmc-api/internal/application"
	"github.com/grmcai/grmc-api/internal/application/analysis"
	domain "github.com/grmcai/grmc-api/internal/domain/reports"
)

// ErrExportUnavailable is returned when no artifact store is configured.
var ErrExportUnavailable = errors.New("report storage not configured")

// Service implements report export and delivery. Artifacts may be nil when
// object storage is not configured; Deliverer owns its own not-configured
// failure mode.
type Service struct {
	Artifacts domain.ArtifactStore
	Deliverer domain.Deliverer
	Clock     application.Clock
}

// artifact is the exported report document. PriorOverallScore and
// OverallDelta annotate the verdict with the previous run, when one exists.
type artifact struct {
	GeneratedAt       time.Time               `json:"generatedAt"`
	FileLabel         string                  `json:"fileLabel"`
	ContractID        string                  `json:"contractId"`
	Result            analysis.DocumentResult `json:"result"`
	PriorOverallScore *int                    `json:"priorOverallScore,omitempty"`
	OverallDelta      *int                    `json:"overallDelta,omitempty"`
}

// Export renders a document result into a JSON report artifact, uploads it
// to object storage and returns its URL.
func (s *Service) Export(ctx context.Context, result analysis.DocumentResult) (string, error) {
	if s.Artifacts == nil {
		return "", ErrExportUnavailable
	}

	a := artifact{
		GeneratedAt: s.Clock.Now(),
		FileLabel:   result.Label,
		ContractID:  string(result.ID),
		Result:      result,
	}
	if result.Previous != nil {
		prior := result.Previous.OverallScore
		a.PriorOverallScore = &prior
	}
	if result.Deltas != nil {
		a.OverallDelta = result.Deltas.Overall
	}

	data, err := json.MarshalIndent(&a, "", "  ")
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	localPath := filepath.Join(os.TempDir(), fmt.Sprintf("grmc-report-%s.json", id))
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return "", err
	}

	key := fmt.Sprintf("reports/%s/%s.json", s.Clock.Now().Format("2006-01-02"), id)
	url, err := s.Artifacts.UploadAndCleanup(ctx, localPath, key)
	if err != nil {
		os.Remove(localPath)
		return "", err
	}
	return url, nil
}

// SendCommand carries a client-rendered report to the delivery endpoint.
type SendCommand struct {
	Email          string
	Feedback       string
	ReportPDF      string // base64
	ReportFileName string
	ContractName   string
	OverallScore   int
}

// Send ships the report. Failures surface only as the deliverer's generic
// send error.
func (s *Service) Send(ctx context.Context, cmd SendCommand) error {
	return s.Deliverer.Send(ctx, domain.Delivery{
		Email:          cmd.Email,
		Source:         "grmc-api",
		Feedback:       cmd.Feedback,
		ReportPDF:      cmd.ReportPDF,
		ReportFileName: cmd.ReportFileName,
		ContractName:   cmd.ContractName,
		OverallScore:   cmd.OverallScore,
	})
}
