package analysis

import (
	"context"
	"errors"
	"log"

	"github.com/grmcai/grmc-api/internal/application"
	"github.com/grmcai/grmc-api/internal/domain/contracts"
	"github.com/grmcai/grmc-api/internal/domain/faults"
	"github.com/grmcai/grmc-api/internal/domain/history"
)

// ErrNothingToAnalyze is returned when a batch is requested with no documents.
var ErrNothingToAnalyze = errors.New("nothing to analyze")

// Contract text beyond this many characters is silently dropped before the
// analyzer call. Documented limitation, no warning surfaced.
const maxContractChars = 50000

// Document is one batch item: a label (file name, empty for pasted text)
// plus extracted text, or the extraction error that prevented text from
// being obtained.
type Document struct {
	Label string
	Text  string
	Err   error
}

// ScoreDeltas annotates a result with score changes against the immediately
// preceding recorded run for the same contract identity.
type ScoreDeltas struct {
	Overall    *int                            `json:"overall,omitempty"`
	Frameworks map[contracts.FrameworkKey]*int `json:"frameworks,omitempty"`
}

// DocumentResult is the per-document outcome of a batch. Exactly one of
// Report and Error is set. Previous and Deltas are only present on success,
// and only when the contract had prior history.
type DocumentResult struct {
	Label    string               `json:"fileLabel"`
	ID       contracts.ContractID `json:"contractId"`
	Report   *contracts.Report    `json:"report,omitempty"`
	Error    string               `json:"error,omitempty"`
	Previous *history.Snapshot    `json:"previous,omitempty"`
	Deltas   *ScoreDeltas         `json:"deltas,omitempty"`

	// Cause keeps the typed failure for in-process callers; the wire only
	// carries Error.
	Cause error `json:"-"`
}

// Succeeded reports whether the document produced a verdict.
func (r *DocumentResult) Succeeded() bool { return r.Report != nil }

// ProgressFunc reports batch progress: index is the zero-based position of
// the item that just started, total the batch size.
type ProgressFunc func(index, total int)

// Service implements the analysis use-cases. One analyzer call is in flight
// at a time by design; documents are processed strictly in input order.
type Service struct {
	Analyzer contracts.Analyzer
	History  history.Store
	Faults   faults.Repository // optional, best-effort failure audit
	Clock    application.Clock
}

// AnalyzeBatch analyzes documents sequentially and returns one result per
// input, in input order. A single document failing never aborts the batch;
// after the empty-input check the method itself cannot fail.
func (s *Service) AnalyzeBatch(ctx context.Context, docs []Document, progress ProgressFunc) ([]DocumentResult, error) {
	if len(docs) == 0 {
		return nil, ErrNothingToAnalyze
	}

	results := make([]DocumentResult, 0, len(docs))
	for i, doc := range docs {
		if progress != nil {
			progress(i, len(docs))
		}
		results = append(results, s.analyzeOne(ctx, doc))
	}
	return results, nil
}

func (s *Service) analyzeOne(ctx context.Context, doc Document) DocumentResult {
	id := contracts.Identify(doc.Label, doc.Text)
	res := DocumentResult{Label: displayName(doc), ID: id}

	if doc.Err != nil {
		res.Error = "text extraction failed: " + doc.Err.Error()
		res.Cause = doc.Err
		s.recordFault(ctx, id, doc.Label, faults.StageExtract, doc.Err)
		return res
	}

	// The delta baseline must be read before the new snapshot is recorded:
	// Record mutates the sequence Previous reads from.
	prior, err := s.History.Previous(ctx, id)
	if err != nil {
		// Persistence trouble degrades to "no history", never fails the item.
		log.Printf("history read failed: id=%s err=%v", id, err)
		prior = nil
	}

	text := doc.Text
	if runes := []rune(text); len(runes) > maxContractChars {
		text = string(runes[:maxContractChars])
	}

	raw, err := s.Analyzer.Analyze(ctx, text)
	if err != nil {
		res.Error = "analysis failed: " + err.Error()
		res.Cause = err
		s.recordFault(ctx, id, doc.Label, faults.StageAnalyze, err)
		return res
	}

	report, err := contracts.ParseReport(raw)
	if err != nil {
		res.Error = "analysis failed: " + err.Error()
		res.Cause = err
		s.recordFault(ctx, id, doc.Label, faults.StageParse, err)
		return res
	}

	snap := history.SnapshotOf(report, s.Clock.Now())
	if err := s.History.Record(ctx, id, res.Label, snap); err != nil {
		log.Printf("history write failed: id=%s err=%v", id, err)
	}

	res.Report = report
	res.Previous = prior
	res.Deltas = deltasFor(report, prior)
	return res
}

// HistoryFor returns the oldest-first snapshot log for one contract identity.
func (s *Service) HistoryFor(ctx context.Context, id contracts.ContractID) ([]history.Snapshot, error) {
	return s.History.History(ctx, id)
}

// AllHistory returns the complete identifier -> history mapping.
func (s *Service) AllHistory(ctx context.Context) (map[contracts.ContractID]history.ContractHistory, error) {
	return s.History.All(ctx)
}

// ResetHistory drops all recorded history.
func (s *Service) ResetHistory(ctx context.Context) error {
	return s.History.Reset(ctx)
}

func displayName(doc Document) string {
	if doc.Label != "" {
		return doc.Label
	}
	return "Pasted text"
}

// deltasFor computes overall and per-framework deltas against the prior
// snapshot. A framework whose applicability flipped between runs gets no
// delta; no synthetic baseline is invented.
func deltasFor(r *contracts.Report, prior *history.Snapshot) *ScoreDeltas {
	if prior == nil {
		return nil
	}
	prevOverall := prior.OverallScore
	d := &ScoreDeltas{
		Overall:    contracts.Delta(r.OverallScore, &prevOverall),
		Frameworks: make(map[contracts.FrameworkKey]*int),
	}
	for _, key := range contracts.FrameworkKeys {
		fw := r.Framework(key)
		if !fw.Applicable {
			continue
		}
		prev, ok := prior.Scores[key]
		if !ok || !prev.Applicable || prev.Score == nil {
			continue
		}
		d.Frameworks[key] = contracts.Delta(fw.Score, prev.Score)
	}
	return d
}

func (s *Service) recordFault(ctx context.Context, id contracts.ContractID, label string, stage faults.Stage, cause error) {
	if s.Faults == nil {
		return
	}
	f := &faults.Fault{
		ContractID: string(id),
		Label:      label,
		Stage:      stage,
		Reason:     cause.Error(),
		CreatedAt:  s.Clock.Now(),
	}
	if err := s.Faults.Save(ctx, f); err != nil {
		log.Printf("fault save failed: id=%s err=%v", id, err)
	}
}
