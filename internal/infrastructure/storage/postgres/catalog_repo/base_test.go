package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"caterbase/internal/domain"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any]("test_table", []string{"id", "code", "name"}, func() any { return nil })
}

func TestBaseSelect_ListFilterSQL(t *testing.T) {
	repo := newTestRepo()

	q := repo.baseSelect()
	filter := domain.ListFilter{Search: "onion"}
	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	pattern := "%" + filter.Search + "%"
	q = q.Where(squirrel.Or{
		squirrel.ILike{"name": pattern},
		squirrel.ILike{"code": pattern},
	})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, code, name FROM test_table WHERE deletion_mark = $1 AND (name ILIKE $2 OR code ILIKE $3)"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 || args[1] != "%onion%" {
		t.Errorf("Args mismatch: %v", args)
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "default", orderBy: "", want: "name ASC"},
		{name: "plain", orderBy: "code", want: "code ASC"},
		{name: "descending", orderBy: "-name", want: "name DESC"},
		{name: "explicit ascending", orderBy: "+code", want: "code ASC"},
		{name: "unknown column", orderBy: "password", wantErr: true},
		{name: "bare dash", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.orderBy)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
