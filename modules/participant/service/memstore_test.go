package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"event-api/core/params"
	authEntity "event-api/modules/auth/entity"
	eventEntity "event-api/modules/event/entity"
	"event-api/modules/participant/entity"
	"event-api/modules/participant/repository"

	"github.com/google/uuid"
)

// memStore keeps users, events and participations in memory and mirrors the
// database constraints the services rely on: one row per (event, member) and
// cascading deletes from events.
type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*authEntity.User
	events       map[uuid.UUID]*eventEntity.Event
	participants []*entity.Participant
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[uuid.UUID]*authEntity.User{},
		events: map[uuid.UUID]*eventEntity.Event{},
	}
}

func (s *memStore) addUser(email, first, last string) *authEntity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &authEntity.User{Email: email, FirstName: first, LastName: last, IsActive: true}
	u.ID = uuid.New()
	s.users[u.ID] = u
	return u
}

func (s *memStore) addEvent(title string, date time.Time) *eventEntity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &eventEntity.Event{ID: uuid.New(), Title: title, Date: date, Location: "Berlin"}
	s.events[e.ID] = e
	return e
}

func (s *memStore) addParticipant(eventID, memberID uuid.UUID, role entity.Role) *entity.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Participant{ID: uuid.New(), EventID: eventID, MemberID: memberID, Role: role, RegisterTime: time.Now()}
	s.participants = append(s.participants, p)
	return p
}

func (s *memStore) rowsFor(eventID uuid.UUID) []entity.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []entity.Participant
	for _, p := range s.participants {
		if p.EventID == eventID {
			rows = append(rows, *p)
		}
	}
	return rows
}

func (s *memStore) GetUserByID(_ context.Context, id uuid.UUID) (*authEntity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) GetEventByID(_ context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) GetEvents(_ context.Context, p params.QueryParams) (*eventEntity.PaginatedEventEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []eventEntity.Event{}
	for _, e := range s.events {
		items = append(items, *e)
	}
	return &eventEntity.PaginatedEventEntity{Items: items, TotalItems: len(items), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (s *memStore) CreateEventWithOrganizer(_ context.Context, event *eventEntity.Event, organizerID uuid.UUID) (*eventEntity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *event
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.events[created.ID] = &created
	s.participants = append(s.participants, &entity.Participant{
		ID: uuid.New(), EventID: created.ID, MemberID: organizerID, Role: entity.RoleOrganizer, RegisterTime: time.Now(),
	})
	return &created, nil
}

func (s *memStore) UpdateEvent(_ context.Context, event *eventEntity.Event) (*eventEntity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return nil, nil
	}
	updated := *event
	s.events[event.ID] = &updated
	return &updated, nil
}

func (s *memStore) DeleteEvent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	kept := s.participants[:0]
	for _, p := range s.participants {
		if p.EventID != id {
			kept = append(kept, p)
		}
	}
	s.participants = kept
	return nil
}

func (s *memStore) CreateParticipant(_ context.Context, participant *entity.Participant) (*entity.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.EventID == participant.EventID && p.MemberID == participant.MemberID {
			return nil, repository.ErrDuplicateParticipant
		}
	}
	created := *participant
	created.ID = uuid.New()
	created.RegisterTime = time.Now()
	s.participants = append(s.participants, &created)
	cp := created
	return &cp, nil
}

func (s *memStore) GetParticipantByID(_ context.Context, id uuid.UUID) (*entity.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetParticipantByEventAndMember(_ context.Context, eventID, memberID uuid.UUID) (*entity.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.EventID == eventID && p.MemberID == memberID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetParticipants(_ context.Context, q params.QueryParams) (*entity.PaginatedParticipantEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []entity.Participant{}
	for _, p := range s.participants {
		if v, ok := q.Filter("event"); ok && p.EventID.String() != v {
			continue
		}
		if v, ok := q.Filter("member"); ok && p.MemberID.String() != v {
			continue
		}
		if v, ok := q.Filter("role"); ok && !strings.EqualFold(p.Role.String(), v) {
			continue
		}
		items = append(items, *p)
	}
	return &entity.PaginatedParticipantEntity{Items: items, TotalItems: len(items), PageNumber: q.PageNumber, PageSize: q.PageSize}, nil
}

func (s *memStore) UpdateParticipantRole(_ context.Context, id uuid.UUID, role entity.Role) (*entity.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.ID == id {
			p.Role = role
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) DeleteParticipant(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.participants {
		if p.ID == id {
			s.participants = append(s.participants[:i], s.participants[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) CountOrganizers(_ context.Context, eventID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.participants {
		if p.EventID == eventID && p.IsOrganizer() {
			count++
		}
	}
	return count, nil
}

type sentNotification struct {
	participantID uuid.UUID
	email         string
	name          string
	eventDate     time.Time
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeNotifier) NotifyRegistration(participantID uuid.UUID, email, displayName string, eventDate time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{participantID, email, displayName, eventDate})
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
