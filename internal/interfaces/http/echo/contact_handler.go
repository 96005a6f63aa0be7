package echo

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	app "github.com/pipelinecrm/crm-server/internal/application/contact"
	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

var errInvalidFilter = errors.New("invalid filter")

type ContactHandler struct {
	list   app.ListContacts
	board  app.BoardColumns
	get    app.GetContact
	create app.CreateContact
	update app.UpdateContact
	delete app.DeleteContact
	move   app.MoveContactStage
}

func NewContactHandler(
	list app.ListContacts,
	board app.BoardColumns,
	get app.GetContact,
	create app.CreateContact,
	update app.UpdateContact,
	del app.DeleteContact,
	move app.MoveContactStage,
) *ContactHandler {
	return &ContactHandler{list: list, board: board, get: get, create: create, update: update, delete: del, move: move}
}

type contactRequest struct {
	Name     string           `json:"name" validate:"required"`
	Email    string           `json:"email" validate:"omitempty,email"`
	Phone    string           `json:"phone"`
	Address  string           `json:"address"`
	Notes    string           `json:"notes"`
	Estimate *decimal.Decimal `json:"estimate"`
	Stage    string           `json:"stage"`
}

func (r contactRequest) fields() domain.Fields {
	return domain.Fields{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		Notes:    r.Notes,
		Estimate: r.Estimate,
		Stage:    r.Stage,
	}
}

type moveStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

var contactErrorCases = []errorCase{
	{err: app.ErrInvalidContactID, status: http.StatusBadRequest, code: "invalid_contact_id", message: "id must be a valid UUID"},
	{err: app.ErrInvalidCompanyID, status: http.StatusBadRequest, code: "invalid_company_id"},
	{err: app.ErrInvalidContact, status: http.StatusBadRequest, code: "invalid_contact"},
	{err: app.ErrInvalidStage, status: http.StatusBadRequest, code: "invalid_stage"},
	{err: app.ErrContactNotFound, status: http.StatusNotFound, code: "not_found", message: "contact not found"},
}

func (h *ContactHandler) List(c echo.Context) error {
	filters, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	contacts, err := h.list.Execute(c.Request().Context(), app.ListContactsInput{
		CompanyID: sessionFrom(c).CompanyID,
		Filters:   filters,
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to list contacts", contactErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: newContactResponses(contacts)})
}

func (h *ContactHandler) Board(c echo.Context) error {
	filters, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	columns, err := h.board.Execute(c.Request().Context(), app.ListContactsInput{
		CompanyID: sessionFrom(c).CompanyID,
		Filters:   filters,
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to load board", contactErrorCases...)
	}

	out := make([]boardColumnResponse, 0, len(columns))
	for _, col := range columns {
		out = append(out, boardColumnResponse{Stage: col.Stage, Title: col.Title, Contacts: newContactResponses(col.Contacts)})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ContactHandler) Get(c echo.Context) error {
	found, err := h.get.Execute(c.Request().Context(), h.ref(c))
	if err != nil {
		return respondUseCaseError(c, err, "failed to get contact", contactErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: newContactResponse(found)})
}

func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	created, err := h.create.Execute(c.Request().Context(), app.CreateContactInput{
		CompanyID: sessionFrom(c).CompanyID,
		Fields:    req.fields(),
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to create contact", contactErrorCases...)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: newContactResponse(created)})
}

func (h *ContactHandler) Update(c echo.Context) error {
	var req contactRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	updated, err := h.update.Execute(c.Request().Context(), app.UpdateContactInput{
		ContactRef: h.ref(c),
		Fields:     req.fields(),
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to update contact", contactErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: newContactResponse(updated)})
}

func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.delete.Execute(c.Request().Context(), h.ref(c)); err != nil {
		return respondUseCaseError(c, err, "failed to delete contact", contactErrorCases...)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContactHandler) MoveStage(c echo.Context) error {
	var req moveStageRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	stage, err := h.move.Execute(c.Request().Context(), app.MoveContactStageInput{
		ContactRef: h.ref(c),
		Stage:      req.Stage,
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to move contact", contactErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: map[string]string{"id": c.Param("id"), "stage": stage.String()}})
}

func (h *ContactHandler) ref(c echo.Context) app.ContactRef {
	return app.ContactRef{CompanyID: sessionFrom(c).CompanyID, ContactID: c.Param("id")}
}

// parseFilters reads the listing filters from the query string:
// stage (repeatable or comma separated), has_email, has_phone,
// created_from and created_to (YYYY-MM-DD) and q.
func parseFilters(c echo.Context) (domain.Filters, error) {
	query := c.QueryParams()

	filters := domain.Filters{
		HasEmail: domain.ParsePresence(query.Get("has_email")),
		HasPhone: domain.ParsePresence(query.Get("has_phone")),
		Search:   query.Get("q"),
	}

	for _, raw := range query["stage"] {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			stage, ok := domain.ParseStage(part)
			if !ok {
				return domain.Filters{}, fmt.Errorf("%w: unknown stage %q", errInvalidFilter, strings.TrimSpace(part))
			}
			filters.Stages = append(filters.Stages, stage)
		}
	}

	var err error
	if filters.CreatedFrom, err = parseDay(query.Get("created_from")); err != nil {
		return domain.Filters{}, err
	}
	if filters.CreatedTo, err = parseDay(query.Get("created_to")); err != nil {
		return domain.Filters{}, err
	}
	return filters, nil
}

func parseDay(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(dayLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", errInvalidFilter)
	}
	return &day, nil
}
