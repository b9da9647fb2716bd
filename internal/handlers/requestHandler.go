package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akolanti/PDFInsight/internal/adapter"
	"github.com/akolanti/PDFInsight/internal/adapter/utils"
	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/internal/domain/jobModel"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
)

var logRH *logger_i.Logger

const maxUploadSize = 32 << 20 //32mb

type newJobData struct {
	id           string
	traceId      string
	jobType      jobModel.JobType
	batchId      string
	documents    []jobModel.DocumentRef
	parser       commonModels.ParserChoice
	questionType commonModels.QuestionType
	numQuestions int
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// AnalyzeHandler godoc
// @Summary      Analyze a single document
// @Description  Receives a PDF (or docx/txt/rtf) via multipart/form-data, queues an analysis job producing a summary and Q&A pairs, and returns a job ID.
// @Tags         Analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  true   "The display name of the document"
// @Param        document       formData  file    true   "The file to analyze"
// @Param        parser         formData  string  false  "PDF parser: layout (default) or sequential"
// @Param        question_type  formData  string  false  "factual | conceptual | analytical | application"
// @Param        num_questions  formData  int     false  "How many Q&A pairs to request (1-10)"
// @Success      202  {object}  api.InitJobResponse "Accepted"
// @Failure      400  {object}  api.JobResponse "Bad Request"
// @Failure      500  {object}  api.JobResponse "Storage error"
// @Router       /analyze [post]
func AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "addr", r.RemoteAddr)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	docName := r.FormValue("document_name")
	if docName == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
		return
	}

	parser := commonModels.ParserChoice(r.FormValue("parser"))
	if parser == "" {
		parser = commonModels.ParserLayout
	}
	if !parser.Valid() {
		WriteErrorResponse(w, http.StatusBadRequest, docName, fmt.Sprintf("unknown parser %q", parser))
		return
	}

	questionType := commonModels.QuestionType(r.FormValue("question_type"))
	if questionType == "" {
		questionType = commonModels.QuestionFactual
	}
	if !questionType.Valid() {
		WriteErrorResponse(w, http.StatusBadRequest, docName, fmt.Sprintf("unknown question_type %q", questionType))
		return
	}

	numQuestions := 5
	if v := r.FormValue("num_questions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > config.MaxQuestionCount {
			WriteErrorResponse(w, http.StatusBadRequest, docName, "num_questions must be between 1 and 10")
			return
		}
		numQuestions = n
	}

	ref, ok := spoolUpload(w, r, "document", docName)
	if !ok {
		return
	}

	newJob := newJobData{
		id:           utils.GetNewUUID(),
		traceId:      r.Context().Value(config.TRACE_ID_KEY).(string),
		jobType:      jobModel.JobTypeAnalyze,
		documents:    []jobModel.DocumentRef{ref},
		parser:       parser,
		questionType: questionType,
		numQuestions: numQuestions,
	}
	acceptJob(w, newJob)
}

// BatchHandler godoc
// @Summary      Analyze a batch of documents
// @Description  Receives multiple files via multipart/form-data and queues one batch job. Each document gets a summary and three factual Q&A pairs; per-document failures do not abort the batch.
// @Tags         Analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        documents  formData  file  true  "The files to analyze (repeatable)"
// @Success      202  {object}  api.InitJobResponse "Accepted - includes batch_id for export"
// @Failure      400  {object}  api.JobResponse "Bad Request"
// @Failure      500  {object}  api.JobResponse "Storage error"
// @Router       /batch [post]
func BatchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "addr", r.RemoteAddr)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["documents"]) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "at least one document is required")
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	var refs []jobModel.DocumentRef
	for _, header := range r.MultipartForm.File["documents"] {
		ref, err := spoolFileHeader(targetDir, header)
		if err != nil {
			logRH.Error("Couldn't spool upload", "file", header.Filename, "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, header.Filename, "Storage error")
			return
		}
		refs = append(refs, ref)
	}

	newJob := newJobData{
		id:        utils.GetNewUUID(),
		traceId:   r.Context().Value(config.TRACE_ID_KEY).(string),
		jobType:   jobModel.JobTypeBatch,
		batchId:   utils.GetNewUUID(),
		documents: refs,
		parser:    commonModels.ParserLayout,
	}
	acceptJob(w, newJob)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status and any results of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse "The current status of the job"
// @Failure      404  {object}  api.JobResponse "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

func acceptJob(w http.ResponseWriter, newJob newJobData) {
	CreateNewJob(newJob)
	res := adapter.ToInitJobResponse(jobModel.Job{Id: newJob.id, BatchId: newJob.batchId})
	writeJsonResponse(w, http.StatusAccepted, res)
}

func spoolUpload(w http.ResponseWriter, r *http.Request, field string, docName string) (jobModel.DocumentRef, bool) {
	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, docName, errString)
		return jobModel.DocumentRef{}, false
	}

	fileReader, fileMetadata, err := r.FormFile(field)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
		return jobModel.DocumentRef{}, false
	}
	defer fileReader.Close()

	ref, err := spoolStream(targetDir, fileMetadata.Filename, docName, fileReader)
	if err != nil {
		logRH.Error("Couldn't spool upload", "file", docName, "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
		return jobModel.DocumentRef{}, false
	}
	return ref, true
}

func spoolFileHeader(targetDir string, header *multipart.FileHeader) (jobModel.DocumentRef, error) {
	src, err := header.Open()
	if err != nil {
		return jobModel.DocumentRef{}, err
	}
	defer src.Close()

	return spoolStream(targetDir, header.Filename, header.Filename, src)
}

// spoolStream writes one upload into the temp directory. A failed copy never
// leaves a partial file behind.
func spoolStream(targetDir string, uploadName string, displayName string, src io.Reader) (jobModel.DocumentRef, error) {
	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(uploadName))
	tempFilePath := filepath.Join(targetDir, filename)
	dst, err := os.Create(tempFilePath)
	if err != nil {
		return jobModel.DocumentRef{}, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tempFilePath)
		return jobModel.DocumentRef{}, err
	}
	return jobModel.DocumentRef{DisplayName: displayName, Path: tempFilePath}, nil
}
