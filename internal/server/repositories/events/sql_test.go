package events

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pulsepal/pulsepal/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

func TestCreate_MarshalsTags(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	msgID := int64(3)
	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(11))
	mock.ExpectQuery(`INSERT\s+INTO\s+events`).
		WithArgs(int64(1), &msgID, "symptom", "Low energy", "User mentioned tiredness or fatigue.",
			"medium", "today", `["fatigue"]`, sqlmock.AnyArg()).
		WillReturnRows(rows)

	e := &models.Event{
		UserID:          1,
		SourceMessageID: &msgID,
		EventType:       "symptom",
		Title:           "Low energy",
		Details:         "User mentioned tiredness or fatigue.",
		Severity:        "medium",
		TimeRef:         "today",
		Tags:            []string{"fatigue"},
		CreatedAt:       time.Now(),
	}
	got, err := repo.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 11 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
}

func TestCreate_NilTagsStoredAsEmptyList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(12))
	mock.ExpectQuery(`INSERT\s+INTO\s+events`).
		WithArgs(int64(1), nil, "incident", "Event", "", "low", "unknown", `[]`, sqlmock.AnyArg()).
		WillReturnRows(rows)

	e := &models.Event{UserID: 1, EventType: "incident", Title: "Event", Severity: "low", TimeRef: "unknown", CreatedAt: time.Now()}
	if _, err := repo.Create(context.Background(), e); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestListRecent_ParsesTagsAndOrder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*source_message_id,.*FROM\s+events.*ORDER\s+BY\s+id\s+DESC`

	now := models.FormatTime(time.Now())
	rows := sqlmock.NewRows([]string{"id", "source_message_id", "event_type", "title", "details", "severity", "time_ref", "tags_json", "created_at"}).
		AddRow(int64(2), nil, "stress", "Stress spike", "", "medium", "today", `["stress"]`, now).
		AddRow(int64(1), int64(9), "symptom", "Dizziness", "", "medium", "today", `["dizziness"]`, now)
	mock.ExpectQuery(q).
		WithArgs(int64(1), 20).
		WillReturnRows(rows)

	got, err := repo.ListRecent(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].ID != 2 || got[0].Tags[0] != "stress" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].SourceMessageID == nil || *got[1].SourceMessageID != 9 {
		t.Fatalf("expected source message id 9, got %+v", got[1].SourceMessageID)
	}
}
