package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/grmcai/grmc-api/internal/application/analysis"
	appreports "github.com/grmcai/grmc-api/internal/application/reports"
	"github.com/grmcai/grmc-api/internal/domain/contracts"
	"github.com/grmcai/grmc-api/internal/domain/history"
	domreports "github.com/grmcai/grmc-api/internal/domain/reports"
	"github.com/grmcai/grmc-api/internal/infra/extract"
	"github.com/grmcai/grmc-api/internal/middleware"
)

// errBadRequest marks caller mistakes for the wrap adapter.
var errBadRequest = errors.New("bad request")

type Router struct {
	analysisSvc *appanalysis.Service
	reportsSvc  *appreports.Service
	extractor   *extract.Extractor
}

func NewRouter(analysisSvc *appanalysis.Service, reportsSvc *appreports.Service, extractor *extract.Extractor) http.Handler {
	r := &Router{analysisSvc: analysisSvc, reportsSvc: reportsSvc, extractor: extractor}
	mux := chi.NewRouter()

	// The API is consumed straight from browsers; CORS is wide open and the
	// preflight succeeds with no body.
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/analyze/batch", r.wrap(r.handleAnalyzeBatch))
		rt.Get("/history", r.wrap(r.handleHistoryAll))
		rt.Get("/history/{id}", r.wrap(r.handleHistory))
		rt.Delete("/history", r.wrap(r.handleHistoryReset))
		rt.Post("/reports/export", r.wrap(r.handleReportExport))
		rt.Post("/reports/send", r.wrap(r.handleReportSend))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, errBadRequest), errors.Is(err, appanalysis.ErrNothingToAnalyze):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, contracts.ErrQuotaExceeded):
				http.Error(w, "analyzer quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, appreports.ErrExportUnavailable):
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			case errors.Is(err, domreports.ErrSendFailed):
				http.Error(w, domreports.ErrSendFailed.Error(), http.StatusBadGateway)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// documentRequest is one inbound document: pasted text, or a base64 upload
// that still needs extraction.
type documentRequest struct {
	FileName     string `json:"fileName"`
	ContractText string `json:"contractText"`
	FileData     string `json:"fileData"` // base64
}

func (r *Router) buildDocument(req *http.Request, d documentRequest) (appanalysis.Document, error) {
	if err := middleware.ValidateDocumentName(d.FileName); err != nil {
		return appanalysis.Document{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	doc := appanalysis.Document{Label: d.FileName, Text: d.ContractText}
	if d.FileData != "" {
		data, err := base64.StdEncoding.DecodeString(d.FileData)
		if err != nil {
			doc.Err = fmt.Errorf("invalid base64 file data: %v", err)
			return doc, nil
		}
		text, err := r.extractor.Text(req.Context(), d.FileName, data)
		if err != nil {
			doc.Err = err
			return doc, nil
		}
		doc.Text = text
	}
	return doc, nil
}

// POST /v1/analyze
// Body: {"contractText": "...", "fileName": "...", "fileData": "<base64>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body documentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if body.ContractText == "" && body.FileData == "" {
		return fmt.Errorf("%w: contract text is required", errBadRequest)
	}

	doc, err := r.buildDocument(req, body)
	if err != nil {
		return err
	}

	results, err := r.analysisSvc.AnalyzeBatch(req.Context(), []appanalysis.Document{doc}, nil)
	if err != nil {
		return err
	}

	res := results[0]
	middleware.IncrementAnalyses()
	if !res.Succeeded() {
		middleware.IncrementAnalysesFailed()
		return res.Cause
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// POST /v1/analyze/batch
// Body: {"documents": [{"fileName": "...", "contractText": "...", "fileData": "<base64>"}]}
func (r *Router) handleAnalyzeBatch(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Documents []documentRequest `json:"documents"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := middleware.ValidateBatchSize(len(body.Documents)); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	docs := make([]appanalysis.Document, 0, len(body.Documents))
	for _, d := range body.Documents {
		doc, err := r.buildDocument(req, d)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	results, err := r.analysisSvc.AnalyzeBatch(req.Context(), docs, func(index, total int) {
		log.Printf("analyzing document %d/%d", index+1, total)
	})
	if err != nil {
		return err
	}

	for _, res := range results {
		middleware.IncrementAnalyses()
		if !res.Succeeded() {
			middleware.IncrementAnalysesFailed()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{"results": results})
}

// GET /v1/history
func (r *Router) handleHistoryAll(w http.ResponseWriter, req *http.Request) error {
	all, err := r.analysisSvc.AllHistory(req.Context())
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(all)
}

// GET /v1/history/{id}
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	id := contracts.ContractID(chi.URLParam(req, "id"))
	snaps, err := r.analysisSvc.HistoryFor(req.Context(), id)
	if err != nil {
		return err
	}
	if snaps == nil {
		snaps = []history.Snapshot{}
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"contractId": id,
		"analyses":   snaps,
	})
}

// DELETE /v1/history
func (r *Router) handleHistoryReset(w http.ResponseWriter, req *http.Request) error {
	if err := r.analysisSvc.ResetHistory(req.Context()); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /v1/reports/export
// Body: a DocumentResult previously returned by analyze.
func (r *Router) handleReportExport(w http.ResponseWriter, req *http.Request) error {
	var result appanalysis.DocumentResult
	if err := json.NewDecoder(req.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if result.Report == nil {
		return fmt.Errorf("%w: result has no report", errBadRequest)
	}

	url, err := r.reportsSvc.Export(req.Context(), result)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// POST /v1/reports/send
func (r *Router) handleReportSend(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email          string `json:"email"`
		Feedback       string `json:"feedback"`
		ReportPDF      string `json:"reportPdf"`
		ReportFileName string `json:"reportFileName"`
		ContractName   string `json:"contractName"`
		OverallScore   int    `json:"overallScore"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := middleware.ValidateEmail(body.Email); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if body.ReportPDF == "" {
		return fmt.Errorf("%w: reportPdf is required", errBadRequest)
	}

	if err := r.reportsSvc.Send(req.Context(), appreports.SendCommand{
		Email:          body.Email,
		Feedback:       body.Feedback,
		ReportPDF:      body.ReportPDF,
		ReportFileName: body.ReportFileName,
		ContractName:   body.ContractName,
		OverallScore:   body.OverallScore,
	}); err != nil {
		return err
	}
	middleware.IncrementReportsSent()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"status": "sent"})
}
