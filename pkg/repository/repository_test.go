package repository_test

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/neura/pkg/failure"
	"github.com/JaimeStill/neura/pkg/repository"
)

var (
	errNotFound  = failure.New(failure.NotFound, "record not found")
	errDuplicate = failure.New(failure.Conflict, "record exists")
)

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	pgOther := &pgconn.PgError{Code: "42P01"}

	tests := []struct {
		name     string
		err      error
		wantIs   error
		wantKind failure.Kind
	}{
		{"no rows", sql.ErrNoRows, errNotFound, failure.NotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), errNotFound, failure.NotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate, failure.Conflict},
		{"other pg error", pgOther, pgOther, failure.Unexpected},
		{"bad conn", driver.ErrBadConn, repository.ErrUnavailable, failure.StorageUnavailable},
		{"net error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, repository.ErrUnavailable, failure.StorageUnavailable},
		{"other", other, other, failure.Unexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if !errors.Is(got, tt.wantIs) {
				t.Errorf("MapError() = %v, want %v", got, tt.wantIs)
			}
			if kind := failure.KindOf(got); kind != tt.wantKind {
				t.Errorf("KindOf() = %s, want %s", kind, tt.wantKind)
			}
		})
	}

	if repository.MapError(nil, errNotFound, errDuplicate) != nil {
		t.Error("MapError(nil) must be nil")
	}
}

type image struct {
	Filename string `json:"filename"`
	Page     int    `json:"page"`
}

func TestJSON_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    []image
		wantErr bool
	}{
		{"bytes", []byte(`[{"filename":"a.png","page":1}]`), []image{{"a.png", 1}}, false},
		{"string", `[{"filename":"b.png","page":2}]`, []image{{"b.png", 2}}, false},
		{"null leaves value", nil, nil, false},
		{"unsupported type", 42, nil, true},
		{"invalid json", []byte(`{`), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []image
			err := repository.JSON[[]image]{V: &got}.Scan(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Scan() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Scan()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	got, err := repository.MarshalJSON([]image{{"c.png", 3}})
	if err != nil {
		t.Fatal(err)
	}
	if want := `[{"filename":"c.png","page":3}]`; got != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}
