package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"mdkb/internal/contextutil"
	"mdkb/internal/service"
)

// PreviewHandler serves stored documents as rendered HTML pages.
// It renders the content kept in the store, not the file on disk.
type PreviewHandler struct {
	svc      service.KnowledgeBaseService
	parser   goldmark.Markdown
	template *template.Template
}

// previewPageData holds template data for rendered document pages.
type previewPageData struct {
	Title      string
	Path       string
	Chunks     int
	Keywords   []string
	ImportedAt string
	Content    template.HTML
}

var previewTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #ddd;
    }
    pre {
      background: #f5f5f5;
      padding: 1rem;
      overflow-x: auto;
    }
    .meta {
      color: #666;
      font-size: 0.9rem;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Path}} &middot; {{.Chunks}} chunks &middot; imported {{.ImportedAt}}{{if .Keywords}} &middot; {{range $i, $k := .Keywords}}{{if $i}}, {{end}}{{$k}}{{end}}{{end}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

// NewPreviewHandler creates a new handler for rendering stored documents.
// Raw HTML in documents is escaped rather than passed through.
func NewPreviewHandler(svc service.KnowledgeBaseService) *PreviewHandler {
	return &PreviewHandler{
		svc: svc,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: previewTemplate,
	}
}

// ServeHTTP handles GET /api/documents/{docID}/html.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	docID := chi.URLParam(r, "docID")

	doc, found, err := h.svc.GetDocument(ctx, docID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get document")
		return
	}
	if !found {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(doc.Content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "doc_id", docID, "error", err)
		http.Error(w, "failed to render document", http.StatusInternalServerError)
		return
	}

	pageData := previewPageData{
		Title:      doc.Title,
		Path:       doc.Path,
		Chunks:     len(doc.Chunks),
		Keywords:   doc.Metadata.Keywords,
		ImportedAt: doc.CreatedAt.Format(time.RFC3339),
		Content:    template.HTML(htmlContent),
	}

	var buf bytes.Buffer
	if err := h.template.Execute(&buf, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute document template", "doc_id", docID, "error", err)
		http.Error(w, "failed to render document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *PreviewHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
