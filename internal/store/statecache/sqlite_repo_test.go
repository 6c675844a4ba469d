package statecache

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLiteRepository(db), mock, db
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+value\s+FROM\s+statecache\s+WHERE\s+key\s*=\s*\?\s*$`
	rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":"1"}]`))
	mock.ExpectQuery(q).WithArgs(KeyPosts).WillReturnRows(rows)

	got, err := repo.Get(context.Background(), KeyPosts)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestGet_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+value\s+FROM\s+statecache\s+WHERE\s+key\s*=\s*\?\s*$`
	mock.ExpectQuery(q).WithArgs(KeySession).WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), KeySession)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a missing key, got %s", got)
	}
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+value\s+FROM\s+statecache\s+WHERE\s+key\s*=\s*\?\s*$`
	mock.ExpectQuery(q).WithArgs(KeyPosts).WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), KeyPosts)
	if err == nil || !regexp.MustCompile(`failed to get statecache\[posts\]: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSet_Upsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+statecache\s*\(key,\s*value\)\s*VALUES\s*\(\?,\s*\?\)\s*ON\s+CONFLICT\(key\)\s+DO\s+UPDATE\s+SET\s+value\s*=\s*excluded\.value\s*$`
	mock.ExpectExec(q).WithArgs(KeyPosts, []byte(`[]`)).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Set(context.Background(), KeyPosts, []byte(`[]`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+statecache\s+WHERE\s+key\s*=\s*\?\s*$`
	mock.ExpectExec(q).WithArgs(KeySession).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), KeySession); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
