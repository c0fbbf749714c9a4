package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
	"github.com/grmcai/grmc-api/internal/domain/faults"
	"github.com/grmcai/grmc-api/internal/domain/history"
	"github.com/grmcai/grmc-api/internal/infra/localstore"
)

// stubAnalyzer returns canned verdicts in order, recording each received text.
type stubAnalyzer struct {
	responses []string
	errs      []error
	calls     []string
}

func (a *stubAnalyzer) Analyze(ctx context.Context, contractText string) (string, error) {
	i := len(a.calls)
	a.calls = append(a.calls, contractText)
	if i < len(a.errs) && a.errs[i] != nil {
		return "", a.errs[i]
	}
	if i < len(a.responses) {
		return a.responses[i], nil
	}
	return a.responses[len(a.responses)-1], nil
}

type stubFaults struct {
	saved []*faults.Fault
}

func (f *stubFaults) Save(ctx context.Context, fault *faults.Fault) error {
	f.saved = append(f.saved, fault)
	return nil
}

func (f *stubFaults) Latest(ctx context.Context, limit int) ([]*faults.Fault, error) {
	return f.saved, nil
}

// brokenStore fails every operation, standing in for a dead database.
type brokenStore struct{}

func (brokenStore) Previous(ctx context.Context, id contracts.ContractID) (*history.Snapshot, error) {
	return nil, errors.New("store down")
}
func (brokenStore) Record(ctx context.Context, id contracts.ContractID, displayName string, snap history.Snapshot) error {
	return errors.New("store down")
}
func (brokenStore) History(ctx context.Context, id contracts.ContractID) ([]history.Snapshot, error) {
	return nil, errors.New("store down")
}
func (brokenStore) All(ctx context.Context) (map[contracts.ContractID]history.ContractHistory, error) {
	return nil, errors.New("store down")
}
func (brokenStore) Reset(ctx context.Context) error { return errors.New("store down") }

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func verdict(t *testing.T, overall, gdpr int) string {
	t.Helper()
	b, err := json.Marshal(&contracts.Report{
		OverallScore: overall,
		GDPR:         contracts.FrameworkResult{Score: gdpr, Applicable: true},
		SOC2:         contracts.FrameworkResult{Score: overall, Applicable: true},
		Summary:      "ok",
	})
	require.NoError(t, err)
	return string(b)
}

func newService(analyzer contracts.Analyzer, store history.Store, fr faults.Repository) *Service {
	return &Service{
		Analyzer: analyzer,
		History:  store,
		Faults:   fr,
		Clock:    fixedClock{at: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	svc := newService(&stubAnalyzer{}, localstore.NewMemory(), nil)

	_, err := svc.AnalyzeBatch(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNothingToAnalyze)
}

func TestAnalyzeBatchMixedOutcomes(t *testing.T) {
	ctx := context.Background()
	analyzer := &stubAnalyzer{
		responses: []string{verdict(t, 70, 80), ""},
		errs:      []error{nil, errors.New("model unavailable")},
	}
	store := localstore.NewMemory()
	fr := &stubFaults{}
	svc := newService(analyzer, store, fr)

	docs := []Document{
		{Label: "good.txt", Text: "a data processing agreement"},
		{Label: "broken.pdf", Err: errors.New("pdftotext failed")},
		{Label: "flaky.txt", Text: "another agreement"},
	}
	results, err := svc.AnalyzeBatch(ctx, docs, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results stay in input order and a failure never aborts the batch.
	assert.True(t, results[0].Succeeded())
	assert.Equal(t, "good.txt", results[0].Label)
	assert.Equal(t, 70, results[0].Report.OverallScore)

	assert.False(t, results[1].Succeeded())
	assert.Contains(t, results[1].Error, "text extraction failed")

	assert.False(t, results[2].Succeeded())
	assert.Contains(t, results[2].Error, "model unavailable")

	// The extraction failure never reached the analyzer.
	assert.Len(t, analyzer.calls, 2)

	// Only the success was recorded.
	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Contains(t, all, results[0].ID)

	// Both failures landed in the audit log with their stage.
	require.Len(t, fr.saved, 2)
	assert.Equal(t, faults.StageExtract, fr.saved[0].Stage)
	assert.Equal(t, faults.StageAnalyze, fr.saved[1].Stage)
}

func TestAnalyzeBatchProgress(t *testing.T) {
	analyzer := &stubAnalyzer{responses: []string{verdict(t, 70, 80)}}
	svc := newService(analyzer, localstore.NewMemory(), nil)

	var seen [][2]int
	docs := []Document{
		{Label: "a.txt", Text: "one"},
		{Label: "b.txt", Text: "two"},
		{Label: "c.txt", Text: "three"},
	}
	_, err := svc.AnalyzeBatch(context.Background(), docs, func(index, total int) {
		seen = append(seen, [2]int{index, total})
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 3}, {1, 3}, {2, 3}}, seen)
}

func TestAnalyzeTruncatesLongText(t *testing.T) {
	analyzer := &stubAnalyzer{responses: []string{verdict(t, 70, 80)}}
	svc := newService(analyzer, localstore.NewMemory(), nil)

	long := strings.Repeat("é", 60000)
	_, err := svc.AnalyzeBatch(context.Background(), []Document{{Text: long}}, nil)
	require.NoError(t, err)

	require.Len(t, analyzer.calls, 1)
	assert.Equal(t, 50000, len([]rune(analyzer.calls[0])))
}

func TestAnalyzeDeltasAgainstPriorRun(t *testing.T) {
	ctx := context.Background()
	analyzer := &stubAnalyzer{responses: []string{verdict(t, 60, 50), verdict(t, 75, 80)}}
	svc := newService(analyzer, localstore.NewMemory(), nil)

	doc := Document{Label: "msa.txt", Text: "master services agreement"}

	first, err := svc.AnalyzeBatch(ctx, []Document{doc}, nil)
	require.NoError(t, err)
	assert.Nil(t, first[0].Previous)
	assert.Nil(t, first[0].Deltas)

	second, err := svc.AnalyzeBatch(ctx, []Document{doc}, nil)
	require.NoError(t, err)
	res := second[0]

	require.NotNil(t, res.Previous)
	assert.Equal(t, 60, res.Previous.OverallScore)

	require.NotNil(t, res.Deltas)
	require.NotNil(t, res.Deltas.Overall)
	assert.Equal(t, 15, *res.Deltas.Overall)
	require.NotNil(t, res.Deltas.Frameworks[contracts.FrameworkGDPR])
	assert.Equal(t, 30, *res.Deltas.Frameworks[contracts.FrameworkGDPR])
}

func TestAnalyzeApplicabilityFlipSkipsDelta(t *testing.T) {
	ctx := context.Background()

	first, err := json.Marshal(&contracts.Report{
		OverallScore: 60,
		SOC2:         contracts.FrameworkResult{Score: 60, Applicable: true},
		HIPAA:        contracts.FrameworkResult{Applicable: false},
	})
	require.NoError(t, err)
	second, err := json.Marshal(&contracts.Report{
		OverallScore: 65,
		SOC2:         contracts.FrameworkResult{Score: 62, Applicable: true},
		HIPAA:        contracts.FrameworkResult{Score: 70, Applicable: true},
	})
	require.NoError(t, err)

	analyzer := &stubAnalyzer{responses: []string{string(first), string(second)}}
	svc := newService(analyzer, localstore.NewMemory(), nil)

	doc := Document{Label: "baa.txt", Text: "business associate agreement"}
	_, err = svc.AnalyzeBatch(ctx, []Document{doc}, nil)
	require.NoError(t, err)

	results, err := svc.AnalyzeBatch(ctx, []Document{doc}, nil)
	require.NoError(t, err)
	res := results[0]

	require.NotNil(t, res.Deltas)

	// HIPAA flipped from inapplicable to applicable: no synthetic baseline.
	_, ok := res.Deltas.Frameworks[contracts.FrameworkHIPAA]
	assert.False(t, ok)

	require.NotNil(t, res.Deltas.Frameworks[contracts.FrameworkSOC2])
	assert.Equal(t, 2, *res.Deltas.Frameworks[contracts.FrameworkSOC2])
}

func TestAnalyzeParseFailure(t *testing.T) {
	analyzer := &stubAnalyzer{responses: []string{"not a verdict at all"}}
	fr := &stubFaults{}
	svc := newService(analyzer, localstore.NewMemory(), fr)

	results, err := svc.AnalyzeBatch(context.Background(), []Document{{Text: "x"}}, nil)
	require.NoError(t, err)

	assert.False(t, results[0].Succeeded())
	assert.Contains(t, results[0].Error, "analysis failed")
	require.Len(t, fr.saved, 1)
	assert.Equal(t, faults.StageParse, fr.saved[0].Stage)
}

func TestAnalyzeStoreFailureDegrades(t *testing.T) {
	analyzer := &stubAnalyzer{responses: []string{verdict(t, 70, 80)}}
	svc := newService(analyzer, brokenStore{}, nil)

	results, err := svc.AnalyzeBatch(context.Background(), []Document{{Label: "a.txt", Text: "x"}}, nil)
	require.NoError(t, err)

	// Persistence trouble means "no history", not a failed item.
	res := results[0]
	assert.True(t, res.Succeeded())
	assert.Nil(t, res.Previous)
	assert.Nil(t, res.Deltas)
}

func TestAnalyzePastedTextLabel(t *testing.T) {
	analyzer := &stubAnalyzer{responses: []string{verdict(t, 70, 80)}}
	svc := newService(analyzer, localstore.NewMemory(), nil)

	results, err := svc.AnalyzeBatch(context.Background(), []Document{{Text: "pasted body"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Pasted text", results[0].Label)
	assert.True(t, strings.HasPrefix(string(results[0].ID), "text_"))
}
