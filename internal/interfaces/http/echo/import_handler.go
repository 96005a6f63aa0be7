package echo

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	app "github.com/pipelinecrm/crm-server/internal/application/contact"
)

const csvContentType = "text/csv; charset=utf-8"

type ImportHandler struct {
	preview app.PreviewContactImport
	confirm app.ConfirmContactImport
	export  app.ExportContacts
}

func NewImportHandler(preview app.PreviewContactImport, confirm app.ConfirmContactImport, export app.ExportContacts) *ImportHandler {
	return &ImportHandler{preview: preview, confirm: confirm, export: export}
}

var importErrorCases = []errorCase{
	{err: app.ErrMalformedCSV, status: http.StatusBadRequest, code: "malformed_csv"},
	{err: app.ErrInvalidCompanyID, status: http.StatusBadRequest, code: "invalid_company_id"},
	{err: errInvalidFilter, status: http.StatusBadRequest, code: "bad_request"},
}

func (h *ImportHandler) Preview(c echo.Context) error {
	in, closeFile, err := h.importInput(c)
	if err != nil {
		return err
	}
	if closeFile == nil {
		return nil
	}
	defer closeFile()

	preview, err := h.preview.Execute(c.Request().Context(), in)
	if err != nil {
		return respondUseCaseError(c, err, "failed to preview import", importErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: preview})
}

func (h *ImportHandler) Confirm(c echo.Context) error {
	in, closeFile, err := h.importInput(c)
	if err != nil {
		return err
	}
	if closeFile == nil {
		return nil
	}
	defer closeFile()

	out, err := h.confirm.Execute(c.Request().Context(), in)
	if err != nil {
		return respondUseCaseError(c, err, "failed to import contacts", importErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Template(c echo.Context) error {
	setAttachment(c, app.TemplateFilename)
	return c.Blob(http.StatusOK, csvContentType, app.ContactImportTemplate())
}

// Export serves the filtered contacts as CSV. ids narrows the export to a
// comma separated selection.
func (h *ImportHandler) Export(c echo.Context) error {
	filters, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var ids []string
	for _, id := range strings.Split(c.QueryParam("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	out, err := h.export.Execute(c.Request().Context(), app.ExportContactsInput{
		CompanyID: sessionFrom(c).CompanyID,
		Filters:   filters,
		IDs:       ids,
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to export contacts", importErrorCases...)
	}

	setAttachment(c, out.Filename)
	return c.Blob(http.StatusOK, csvContentType, out.Content)
}

// importInput opens the uploaded file. A nil close func with a nil error
// means the error response has already been written.
func (h *ImportHandler) importInput(c echo.Context) (app.PreviewContactImportInput, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return app.PreviewContactImportInput{}, nil, badRequest(c, "file is required")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		return app.PreviewContactImportInput{}, nil, respondError(c, http.StatusBadRequest, "invalid_file", "file must be a .csv file")
	}

	file, err := header.Open()
	if err != nil {
		return app.PreviewContactImportInput{}, nil, badRequest(c, "failed to read uploaded file")
	}

	in := app.PreviewContactImportInput{CompanyID: sessionFrom(c).CompanyID, File: file}
	return in, func() { _ = file.Close() }, nil
}

func setAttachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}
