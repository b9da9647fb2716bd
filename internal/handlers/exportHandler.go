package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akolanti/PDFInsight/internal/adapter/utils"
	"github.com/akolanti/PDFInsight/internal/analysis/export"
	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/internal/domain/jobModel"
)

// ExportHandler godoc
// @Summary      Export analysis results
// @Description  Downloads the results of a completed job (or a batch, by batch ID) as plain text or JSON.
// @Tags         Export
// @Produce      plain
// @Param        id      path   string  true   "Job ID or batch ID"
// @Param        format  query  string  false  "text (default) or json"
// @Success      200  {string}  string "The exported results"
// @Failure      400  {object}  api.JobResponse "Unknown format"
// @Failure      404  {object}  api.JobResponse "No results found"
// @Failure      409  {object}  api.JobResponse "Job not finished yet"
// @Router       /export/{id} [get]
func ExportHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	traceId := r.Context().Value(config.TRACE_ID_KEY).(string)
	idString := utils.GetChiURLParam(r, "id")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		WriteErrorResponse(w, http.StatusBadRequest, idString, fmt.Sprintf("unknown format %q", format))
		return
	}

	results, isBatch, ok := resolveResults(w, idString, traceId)
	if !ok {
		return
	}

	if format == "json" {
		payload, err := export.ResultsJSON(results)
		if err != nil {
			logRH.Error("Export marshal failed", "id", idString, "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, idString, "Export failed")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", idString+".json"))
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", idString+".txt"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(exportText(results, isBatch)))
}

// resolveResults accepts either a job ID or a batch ID. Batch results live in
// the result store so an export works even while the batch is still running.
func resolveResults(w http.ResponseWriter, idString string, traceId string) ([]commonModels.AnalysisResult, bool, bool) {
	job, isFound := validateId(idString, traceId)
	if !isFound {
		if results, exists := GetBatchResults(idString, traceId); exists {
			return results, true, true
		}
		WriteErrorResponse(w, http.StatusNotFound, idString, "No results found")
		return nil, false, false
	}

	if job.JobType == jobModel.JobTypeBatch {
		if results, exists := GetBatchResults(job.BatchId, traceId); exists {
			return results, true, true
		}
	}

	if job.Status != jobModel.JobStatusComplete {
		WriteErrorResponse(w, http.StatusConflict, idString, "Job has not finished yet")
		return nil, false, false
	}
	if len(job.JobPayload.Results) == 0 {
		WriteErrorResponse(w, http.StatusNotFound, idString, "No results found")
		return nil, false, false
	}
	return job.JobPayload.Results, job.JobType == jobModel.JobTypeBatch, true
}

// exportText renders the plain-text download. A single-document job exports
// the bare Q&A blocks; batch exports get one titled section per document.
func exportText(results []commonModels.AnalysisResult, isBatch bool) string {
	if !isBatch && len(results) == 1 {
		return export.QAText(results[0].QAPairs)
	}

	var sections []string
	for _, result := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "=== %s ===\n", result.Filename)
		if result.Summary != nil {
			fmt.Fprintf(&b, "Summary:\n%s\n", *result.Summary)
		}
		if len(result.QAPairs) > 0 {
			b.WriteString("\n")
			b.WriteString(export.QAText(result.QAPairs))
			b.WriteString("\n")
		}
		if result.Summary == nil && len(result.QAPairs) == 0 {
			b.WriteString("Analysis failed for this document.\n")
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n")
}
