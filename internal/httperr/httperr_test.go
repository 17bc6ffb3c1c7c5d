package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

func respond(err error) (int, HTTPError) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)

	var body HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestRespondMapsTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Validation("date", "required"), http.StatusBadRequest, "validation_failed"},
		{"not found", NotFoundEntity("client", "c1"), http.StatusNotFound, "client_not_found"},
		{"conflict", ErrBusiness("conflict"), http.StatusConflict, "conflict"},
		{"load in progress", ErrBusiness("load_in_progress"), http.StatusConflict, "load_in_progress"},
		{"forbidden", ErrBusiness("forbidden"), http.StatusForbidden, "forbidden"},
		{"other business", ErrBusiness("empty_patch"), http.StatusBadRequest, "empty_patch"},
		{"remote", Remote("list_clients", errors.New("timeout")), http.StatusBadGateway, "remote_operation_failed"},
		{"wrapped remote", fmt.Errorf("load: %w", Remote("get_client", errors.New("x"))), http.StatusBadGateway, "remote_operation_failed"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(tc.err)
			if status != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, status)
			}
			if body.Code != tc.code {
				t.Errorf("expected code %q, got %q", tc.code, body.Code)
			}
		})
	}
}

func TestRespondPartialWriteWinsOverCause(t *testing.T) {
	err := &PartialWriteError{
		RootID: "a1",
		Failed: []string{"formulas"},
		Causes: []error{Validation("formula", "too long")},
	}

	status, body := respond(err)
	if status != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", status)
	}
	if body.Code != "partial_write" || len(body.Failed) != 1 || body.Failed[0] != "formulas" {
		t.Fatalf("unexpected body %+v", body)
	}
	if !IsValidation(err) {
		t.Fatal("expected the cause to stay reachable through errors.As")
	}
}

func TestFromPostgres(t *testing.T) {
	fk := FromPostgres("insert_client", &pgconn.PgError{Code: "23503", ConstraintName: "clients_venue_id_fkey"})
	var ve *ValidationError
	if !errors.As(fk, &ve) || ve.Field != "clients_venue_id_fkey" {
		t.Fatalf("expected validation error on constraint, got %v", fk)
	}

	if err := FromPostgres("insert_client", &pgconn.PgError{Code: "23505"}); !IsBusiness(err, "conflict") {
		t.Fatalf("expected conflict, got %v", err)
	}

	other := FromPostgres("list_clients", errors.New("connection reset"))
	if !IsRemote(other) {
		t.Fatalf("expected remote error, got %v", other)
	}

	if FromPostgres("noop", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
