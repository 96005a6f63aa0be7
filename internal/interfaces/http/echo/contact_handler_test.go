package echo_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	app "github.com/pipelinecrm/crm-server/internal/application/contact"
	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	httpecho "github.com/pipelinecrm/crm-server/internal/interfaces/http/echo"
)

type listContactsFunc func(ctx context.Context, in app.ListContactsInput) ([]domain.Contact, error)

func (f listContactsFunc) Execute(ctx context.Context, in app.ListContactsInput) ([]domain.Contact, error) {
	return f(ctx, in)
}

type boardFunc func(ctx context.Context, in app.ListContactsInput) ([]domain.BoardColumn, error)

func (f boardFunc) Execute(ctx context.Context, in app.ListContactsInput) ([]domain.BoardColumn, error) {
	return f(ctx, in)
}

type getContactFunc func(ctx context.Context, in app.ContactRef) (domain.Contact, error)

func (f getContactFunc) Execute(ctx context.Context, in app.ContactRef) (domain.Contact, error) {
	return f(ctx, in)
}

type createContactFunc func(ctx context.Context, in app.CreateContactInput) (domain.Contact, error)

func (f createContactFunc) Execute(ctx context.Context, in app.CreateContactInput) (domain.Contact, error) {
	return f(ctx, in)
}

type updateContactFunc func(ctx context.Context, in app.UpdateContactInput) (domain.Contact, error)

func (f updateContactFunc) Execute(ctx context.Context, in app.UpdateContactInput) (domain.Contact, error) {
	return f(ctx, in)
}

type deleteContactFunc func(ctx context.Context, in app.ContactRef) error

func (f deleteContactFunc) Execute(ctx context.Context, in app.ContactRef) error {
	return f(ctx, in)
}

type moveStageFunc func(ctx context.Context, in app.MoveContactStageInput) (domain.Stage, error)

func (f moveStageFunc) Execute(ctx context.Context, in app.MoveContactStageInput) (domain.Stage, error) {
	return f(ctx, in)
}

func TestContactListRequiresSession(t *testing.T) {
	t.Parallel()

	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, nil, nil, nil, nil, nil, nil)})

	req := jsonRequest(http.MethodGet, "/api/v1/contacts", "")
	req.Header.Del("Cookie")
	expectErrorCode(t, serve(e, req), http.StatusUnauthorized, "unauthorized")
}

func TestContactListPassesFilters(t *testing.T) {
	t.Parallel()

	var got app.ListContactsInput
	list := listContactsFunc(func(ctx context.Context, in app.ListContactsInput) ([]domain.Contact, error) {
		got = in
		return []domain.Contact{{ID: contactID, CompanyID: in.CompanyID, Name: "Mario", Stage: domain.StageLost}}, nil
	})
	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(list, nil, nil, nil, nil, nil, nil)})

	rec := serve(e, jsonRequest(http.MethodGet,
		"/api/v1/contacts?stage=perso,Negoziazione&has_email=yes&created_from=2024-05-01&created_to=2024-05-31&q=rossi", ""))
	env := decode(t, rec, http.StatusOK)

	if got.CompanyID != testCompID {
		t.Fatalf("expected session company, got %q", got.CompanyID)
	}
	if len(got.Filters.Stages) != 2 || got.Filters.Stages[0] != domain.StageLost || got.Filters.Stages[1] != domain.StageNegotiating {
		t.Fatalf("unexpected stages: %v", got.Filters.Stages)
	}
	if got.Filters.HasEmail != domain.PresenceYes || got.Filters.HasPhone != domain.PresenceAll {
		t.Fatalf("unexpected presence filters: %+v", got.Filters)
	}
	if got.Filters.CreatedFrom == nil || !got.Filters.CreatedFrom.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_from: %v", got.Filters.CreatedFrom)
	}
	if got.Filters.CreatedTo == nil || got.Filters.Search != "rossi" {
		t.Fatalf("unexpected filters: %+v", got.Filters)
	}

	var data []map[string]any
	unmarshalData(t, env, &data)
	if len(data) != 1 || data[0]["id"] != contactID || data[0]["stage"] != "perso" {
		t.Fatalf("unexpected data: %#v", data)
	}
}

func TestContactListRejectsBadFilters(t *testing.T) {
	t.Parallel()

	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, nil, nil, nil, nil, nil, nil)})

	for _, query := range []string{"stage=boh", "created_from=01/05/2024"} {
		rec := serve(e, jsonRequest(http.MethodGet, "/api/v1/contacts?"+query, ""))
		expectErrorCode(t, rec, http.StatusBadRequest, "bad_request")
	}
}

func TestContactBoard(t *testing.T) {
	t.Parallel()

	board := boardFunc(func(ctx context.Context, in app.ListContactsInput) ([]domain.BoardColumn, error) {
		return domain.GroupByStage([]domain.Contact{{ID: contactID, Name: "Mario", Stage: domain.StageWon}}), nil
	})
	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, board, nil, nil, nil, nil, nil)})

	env := decode(t, serve(e, jsonRequest(http.MethodGet, "/api/v1/contacts/board", "")), http.StatusOK)

	var data []struct {
		Stage    string           `json:"stage"`
		Title    string           `json:"title"`
		Contacts []map[string]any `json:"contacts"`
	}
	unmarshalData(t, env, &data)
	if len(data) != len(domain.Stages()) {
		t.Fatalf("expected a column per stage, got %d", len(data))
	}
	if data[0].Stage != "da contattare" || len(data[0].Contacts) != 0 {
		t.Fatalf("unexpected first column: %+v", data[0])
	}
	if data[3].Title != "Acquisito" || len(data[3].Contacts) != 1 {
		t.Fatalf("unexpected won column: %+v", data[3])
	}
}

func TestContactCreate(t *testing.T) {
	t.Parallel()

	var got app.CreateContactInput
	create := createContactFunc(func(ctx context.Context, in app.CreateContactInput) (domain.Contact, error) {
		got = in
		return domain.Contact{ID: contactID, CompanyID: in.CompanyID, Name: in.Fields.Name, Stage: domain.DefaultStage}, nil
	})
	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, nil, nil, create, nil, nil, nil)})

	body := `{"name":"Mario Rossi","email":"mario@example.com","phone":"+39 333 1234567","estimate":1200.5}`
	env := decode(t, serve(e, jsonRequest(http.MethodPost, "/api/v1/contacts", body)), http.StatusCreated)

	if got.CompanyID != testCompID || got.Fields.Name != "Mario Rossi" || got.Fields.Phone != "+39 333 1234567" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Fields.Estimate == nil || got.Fields.Estimate.String() != "1200.5" {
		t.Fatalf("unexpected estimate: %v", got.Fields.Estimate)
	}

	var data map[string]any
	unmarshalData(t, env, &data)
	if data["id"] != contactID || data["name"] != "Mario Rossi" {
		t.Fatalf("unexpected data: %#v", data)
	}
}

func TestContactCreateValidation(t *testing.T) {
	t.Parallel()

	create := createContactFunc(func(ctx context.Context, in app.CreateContactInput) (domain.Contact, error) {
		return domain.Contact{}, fmt.Errorf("%w: %v", app.ErrInvalidContact, domain.ErrInvalidPhone)
	})
	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, nil, nil, create, nil, nil, nil)})

	rec := serve(e, jsonRequest(http.MethodPost, "/api/v1/contacts", `{"email":"mario@example.com"}`))
	expectErrorCode(t, rec, http.StatusBadRequest, "validation_failed")

	rec = serve(e, jsonRequest(http.MethodPost, "/api/v1/contacts", `{"name":"Mario","phone":"12"}`))
	expectErrorCode(t, rec, http.StatusBadRequest, "invalid_contact")
}

func TestContactGetErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "invalid id", err: app.ErrInvalidContactID, status: http.StatusBadRequest, code: "invalid_contact_id"},
		{name: "not found", err: app.ErrContactNotFound, status: http.StatusNotFound, code: "not_found"},
		{name: "internal", err: fmt.Errorf("%w: boom", app.ErrListContacts), status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			get := getContactFunc(func(ctx context.Context, in app.ContactRef) (domain.Contact, error) {
				return domain.Contact{}, tc.err
			})
			e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, nil, get, nil, nil, nil, nil)})

			expectErrorCode(t, serve(e, jsonRequest(http.MethodGet, "/api/v1/contacts/"+contactID, "")), tc.status, tc.code)
		})
	}
}

func TestContactUpdateAndDelete(t *testing.T) {
	t.Parallel()

	var updated app.UpdateContactInput
	var deleted app.ContactRef
	update := updateContactFunc(func(ctx context.Context, in app.UpdateContactInput) (domain.Contact, error) {
		updated = in
		return domain.Contact{ID: in.ContactID, Name: in.Fields.Name, Stage: domain.StageContacted}, nil
	})
	del := deleteContactFunc(func(ctx context.Context, in app.ContactRef) error {
		deleted = in
		return nil
	})
	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, nil, nil, nil, update, del, nil)})

	decode(t, serve(e, jsonRequest(http.MethodPut, "/api/v1/contacts/"+contactID, `{"name":"Anna","stage":"contattato"}`)), http.StatusOK)
	if updated.ContactID != contactID || updated.CompanyID != testCompID || updated.Fields.Stage != "contattato" {
		t.Fatalf("unexpected update input: %+v", updated)
	}

	rec := serve(e, jsonRequest(http.MethodDelete, "/api/v1/contacts/"+contactID, ""))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted.ContactID != contactID || deleted.CompanyID != testCompID {
		t.Fatalf("unexpected delete input: %+v", deleted)
	}
}

func TestContactMoveStage(t *testing.T) {
	t.Parallel()

	move := moveStageFunc(func(ctx context.Context, in app.MoveContactStageInput) (domain.Stage, error) {
		stage, ok := domain.ParseStage(in.Stage)
		if !ok {
			return "", fmt.Errorf("%w: %q", app.ErrInvalidStage, in.Stage)
		}
		return stage, nil
	})
	e := newServer(httpecho.Handlers{Contact: httpecho.NewContactHandler(nil, nil, nil, nil, nil, nil, move)})

	env := decode(t, serve(e, jsonRequest(http.MethodPatch, "/api/v1/contacts/"+contactID+"/stage", `{"stage":"Acquisito"}`)), http.StatusOK)
	var data map[string]string
	unmarshalData(t, env, &data)
	if data["stage"] != "acquisito" || data["id"] != contactID {
		t.Fatalf("unexpected data: %#v", data)
	}

	rec := serve(e, jsonRequest(http.MethodPatch, "/api/v1/contacts/"+contactID+"/stage", `{"stage":"boh"}`))
	expectErrorCode(t, rec, http.StatusBadRequest, "invalid_stage")
}
