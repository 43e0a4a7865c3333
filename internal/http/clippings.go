package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/clippings/internal/database"
	"github.com/mrlokans/clippings/internal/entities"
	"github.com/mrlokans/clippings/internal/exporters"
	"github.com/mrlokans/clippings/internal/kindle"
)

const (
	defaultMaxUploadSize = 10 * 1024 * 1024 // 10 MB
	clippingsFormField   = "clippings_file"
	defaultUploadSource  = "upload"
)

var errUploadTooLarge = errors.New("clippings file too large")

type ClippingsController struct {
	parser        *kindle.Parser
	store         EntryStore
	template      *exporters.Template
	delimiter     string
	maxUploadSize int64
}

func NewClippingsController(parser *kindle.Parser, store EntryStore, template *exporters.Template, delimiter string, maxUploadSize int64) *ClippingsController {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	if template == nil {
		template = exporters.NewTemplate(exporters.DefaultTemplate)
	}
	return &ClippingsController{
		parser:        parser,
		store:         store,
		template:      template,
		delimiter:     delimiter,
		maxUploadSize: maxUploadSize,
	}
}

type ParseResponse struct {
	Count   int              `json:"count"`
	Entries []entities.Entry `json:"entries"`
}

type RenderResponse struct {
	Count    int      `json:"count"`
	Template string   `json:"template"`
	Rendered []string `json:"rendered"`
	Text     string   `json:"text"`
}

type ImportResponse struct {
	Success bool                    `json:"success"`
	Import  *entities.ImportSession `json:"import"`
}

type MalformedLineDetails struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// Parse returns the entries of an uploaded clippings file as JSON.
func (c *ClippingsController) Parse(ctx *gin.Context) {
	entries, _, ok := c.parseUpload(ctx)
	if !ok {
		return
	}
	entries = filterFromQuery(ctx).Apply(entries)
	if entries == nil {
		entries = []entities.Entry{}
	}

	ctx.JSON(http.StatusOK, ParseResponse{Count: len(entries), Entries: entries})
}

// Render parses an uploaded file and renders every entry with the template
// given in the "template" parameter, or the configured one.
func (c *ClippingsController) Render(ctx *gin.Context) {
	entries, _, ok := c.parseUpload(ctx)
	if !ok {
		return
	}
	entries = filterFromQuery(ctx).Apply(entries)

	template := c.template
	if text := queryOrForm(ctx, "template"); text != "" {
		template = exporters.NewTemplate(text)
	}

	delimiter := c.delimiter
	if v, ok := ctx.GetQuery("delimiter"); ok {
		delimiter = v
	}

	rendered := make([]string, len(entries))
	for i, entry := range entries {
		rendered[i] = template.Render(entry)
	}

	ctx.JSON(http.StatusOK, RenderResponse{
		Count:    len(rendered),
		Template: template.Text(),
		Rendered: rendered,
		Text:     template.RenderAll(entries, delimiter),
	})
}

// Import parses an uploaded file and stores every entry.
func (c *ClippingsController) Import(ctx *gin.Context) {
	entries, source, ok := c.parseUpload(ctx)
	if !ok {
		return
	}

	session, err := c.store.SaveImport(source, entries)
	if err != nil {
		respondInternalError(ctx, err, "save import")
		return
	}

	ctx.JSON(http.StatusCreated, ImportResponse{Success: true, Import: session})
}

func (c *ClippingsController) ListEntries(ctx *gin.Context) {
	entries, err := c.store.ListEntries(filterFromQuery(ctx))
	if err != nil {
		respondInternalError(ctx, err, "list entries")
		return
	}
	ctx.JSON(http.StatusOK, ParseResponse{Count: len(entries), Entries: entries})
}

func (c *ClippingsController) ListImports(ctx *gin.Context) {
	imports, err := c.store.ListImports()
	if err != nil {
		respondInternalError(ctx, err, "list imports")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"imports": imports})
}

func (c *ClippingsController) GetImport(ctx *gin.Context) {
	session, err := c.store.GetImport(ctx.Param("id"))
	if errors.Is(err, database.ErrImportNotFound) {
		respondError(ctx, http.StatusNotFound, "not_found", err.Error(), nil)
		return
	}
	if err != nil {
		respondInternalError(ctx, err, "get import")
		return
	}
	ctx.JSON(http.StatusOK, ImportResponse{Success: true, Import: session})
}

// parseUpload reads the clippings either from the multipart field
// "clippings_file" or from the raw request body, and parses it. On failure
// the response has already been written.
func (c *ClippingsController) parseUpload(ctx *gin.Context) ([]entities.Entry, string, bool) {
	content, source, err := c.readUpload(ctx)
	if errors.Is(err, errUploadTooLarge) {
		respondError(ctx, http.StatusRequestEntityTooLarge, "too_large",
			fmt.Sprintf("File too large (max %d bytes)", c.maxUploadSize), nil)
		return nil, "", false
	}
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return nil, "", false
	}

	entries, err := c.parser.Parse(content)
	if err != nil {
		var malformed *kindle.MalformedActionLineError
		switch {
		case errors.As(err, &malformed):
			respondError(ctx, http.StatusUnprocessableEntity, "malformed_action_line", err.Error(),
				MalformedLineDetails{Line: malformed.Line, Text: malformed.Text})
		case errors.Is(err, kindle.ErrTruncatedBlock):
			respondError(ctx, http.StatusUnprocessableEntity, "truncated_block", err.Error(), nil)
		default:
			respondBadRequest(ctx, fmt.Sprintf("Failed to parse clippings: %v", err))
		}
		return nil, "", false
	}

	return entries, source, true
}

func (c *ClippingsController) readUpload(ctx *gin.Context) (string, string, error) {
	var (
		r      io.Reader
		source = queryOrForm(ctx, "source")
	)

	if ctx.ContentType() == gin.MIMEMultipartPOSTForm {
		file, header, err := ctx.Request.FormFile(clippingsFormField)
		if err != nil {
			return "", "", fmt.Errorf("clippings file not provided")
		}
		defer file.Close()
		if header.Size > c.maxUploadSize {
			return "", "", errUploadTooLarge
		}
		if source == "" {
			source = header.Filename
		}
		r = file
	} else {
		r = ctx.Request.Body
	}

	data, err := io.ReadAll(io.LimitReader(r, c.maxUploadSize+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to read clippings: %w", err)
	}
	if int64(len(data)) > c.maxUploadSize {
		return "", "", errUploadTooLarge
	}

	if source == "" {
		source = defaultUploadSource
	}
	return string(data), source, nil
}

func filterFromQuery(ctx *gin.Context) entities.EntryFilter {
	return entities.EntryFilter{
		Title:  queryOrForm(ctx, "title"),
		Author: queryOrForm(ctx, "author"),
	}
}
