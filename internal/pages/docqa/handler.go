// Package docqa implements document question-answering: uploaded PDFs,
// DOCX, or plain text are chunked and embedded into the similarity index,
// then questions are answered from the top-matching chunks.
package docqa

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/docindex"
	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/pages"

	structValidator "github.com/go-playground/validator/v10"
)

const (
	ToolName = "docqa"

	// FormFileField is the multipart field carrying uploaded documents.
	FormFileField = "documents"

	maxUploadBytes = 32 << 20

	answerTemperature float32 = 0.3
)

// answerPromptTemplate carries the grounding contract: the model must
// refuse with the fixed "answer is not available in the context" phrase
// rather than invent an answer.
const answerPromptTemplate = `
Answer the question as detailed as possible from the provided context, make sure to provide all the details. If the answer is not in
provided context, just say, "answer is not available in the context", don't provide the wrong answer.

Context:
%s

Question:
%s

Answer:
`

type IngestResponse struct {
	Message       string `json:"message"`
	ChunksIndexed int    `json:"chunks_indexed"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

// Handler serves the /api/docs endpoints.
type Handler struct {
	pages.Base

	Index        *docindex.Index
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

func NewHandler(generator interfaces.TextGenerator, index *docindex.Index,
	cfg *config.DocIndexConfig, metrics interfaces.Metrics,
	logger interfaces.Logger, validate *structValidator.Validate,
) *Handler {
	return &Handler{
		Base: pages.Base{
			Tool:      ToolName,
			Generator: generator,
			Metrics:   metrics,
			Logger:    logger,
			Validator: validate,
		},
		Index:        index,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		TopK:         cfg.TopK,
	}
}

// Ingest accepts a multipart upload, extracts and chunks the text, and
// rebuilds the similarity index.
func (h *Handler) Ingest(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		h.Fail(w, http.StatusMethodNotAllowed,
			fmt.Errorf("method %s not allowed", req.Method), "Method not allowed")
		return
	}

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		h.Fail(w, http.StatusBadRequest, err, "Invalid multipart upload")
		return
	}

	files := req.MultipartForm.File[FormFileField]
	if len(files) == 0 {
		h.Fail(w, http.StatusBadRequest,
			fmt.Errorf("no files in field %q", FormFileField),
			"Upload at least one PDF, DOCX, or text file")
		return
	}

	var combined strings.Builder
	for _, header := range files {
		text, err := extractUpload(header)
		if err != nil {
			h.Fail(w, http.StatusBadRequest, err,
				fmt.Sprintf("Failed to extract text from %s", header.Filename))
			return
		}
		combined.WriteString(text)
		combined.WriteString("\n")
	}

	chunks := docindex.SplitText(combined.String(), h.ChunkSize, h.ChunkOverlap)
	if len(chunks) == 0 {
		h.Fail(w, http.StatusBadRequest,
			fmt.Errorf("documents contained no extractable text"),
			"Documents contained no extractable text")
		return
	}

	start := time.Now()
	err := h.Index.Ingest(req.Context(), chunks)
	h.Observe(start)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Failed to index documents")
		return
	}

	h.OK(w, &IngestResponse{
		Message:       "Documents processed and index updated",
		ChunksIndexed: len(chunks),
	})
}

// Ask answers a question from the indexed documents.
func (h *Handler) Ask(w http.ResponseWriter, req *http.Request) {
	request := &AskRequest{}
	if !h.DecodeAndValidate(w, req, request) {
		return
	}

	matches, err := h.Index.Search(req.Context(), request.Question, h.TopK)
	if err != nil {
		h.Fail(w, http.StatusBadRequest, err, "Failed to search indexed documents")
		return
	}

	prompt := fmt.Sprintf(answerPromptTemplate,
		strings.Join(matches, "\n\n"), request.Question)

	temperature := answerTemperature
	start := time.Now()
	answer, err := h.Generator.Generate(req.Context(), prompt, interfaces.GenerateOptions{
		Temperature: &temperature,
	})
	h.Observe(start)
	if err != nil {
		h.Fail(w, http.StatusBadGateway, err, "Failed to answer the question")
		return
	}

	h.OK(w, &AskResponse{Answer: answer})
}

// extractUpload reads one uploaded file and extracts its text, resolving
// the document type from the declared content type or the file extension.
func extractUpload(header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := docindex.ReadAll(f)
	if err != nil {
		return "", err
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = mimeFromExtension(header.Filename)
	}
	return docindex.ExtractText(mime, data)
}

func mimeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return ""
	}
}
