package repository

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"event-api/core/database"
	"event-api/core/params"
	"event-api/modules/event/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*EventRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewEventRepository(database.New(sqlx.NewDb(db, "sqlmock"))), mock
}

var eventRowColumns = []string{"id", "title", "slug", "description", "date", "location", "at_created", "at_updated"}

func TestCreateEventWithOrganizerCommits(t *testing.T) {
	repo, mock := newMockRepo(t)

	eventID, organizerID := uuid.New(), uuid.New()
	date := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events (title, slug, description, date, location)")).
		WithArgs("Go Meetup", "go-meetup", "talks", date, "Lisbon").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow(eventID.String(), "Go Meetup", "go-meetup", "talks", date, "Lisbon", now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO event_participants (event_id, member_id, role)")).
		WithArgs(eventID, organizerID, "organizer").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateEventWithOrganizer(context.Background(), &entity.Event{
		Title:       "Go Meetup",
		Slug:        "go-meetup",
		Description: "talks",
		Date:        date,
		Location:    "Lisbon",
	}, organizerID)
	if err != nil {
		t.Fatalf("CreateEventWithOrganizer: %v", err)
	}
	if created.ID != eventID || !created.Date.Equal(date) {
		t.Fatalf("created = %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateEventWithOrganizerRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	boom := stderrors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events")).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow(uuid.NewString(), "t", "t", "d", now, "l", now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO event_participants")).WillReturnError(boom)
	mock.ExpectRollback()

	created, err := repo.CreateEventWithOrganizer(context.Background(), &entity.Event{Title: "t"}, uuid.New())
	if !stderrors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if created != nil {
		t.Fatalf("created = %+v, want nil", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetEventByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	event, err := repo.GetEventByID(context.Background(), id)
	if err != nil || event != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", event, err)
	}
}

func TestGetEventsBuildsFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	p := params.QueryParams{
		PageNumber: 2,
		PageSize:   10,
		Search:     "go",
		Filters:    map[string]string{"location": "Lisbon"},
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events WHERE location = $1 AND (title ILIKE $2 OR location ILIKE $2)")).
		WithArgs("Lisbon", "%go%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY date, id LIMIT $3 OFFSET $4")).
		WithArgs("Lisbon", "%go%", 10, 10).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow(uuid.NewString(), "Go", "go", "d", time.Now(), "Lisbon", time.Now(), time.Now()))

	page, err := repo.GetEvents(context.Background(), p)
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if page.TotalItems != 11 || len(page.Items) != 1 || page.PageNumber != 2 {
		t.Fatalf("page = %+v", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
