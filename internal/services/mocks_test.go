package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"confdesk/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	topics    map[string][]domain.TopicInput
	schedules map[string][]domain.ScheduleInput
	nextID    int

	createErr error
	updateErr error

	lastPatch *domain.EventPatch
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:      make(map[string]*domain.Event),
		topics:    make(map[string][]domain.TopicInput),
		schedules: make(map[string][]domain.ScheduleInput),
		nextID:    1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event, topics []domain.TopicInput, schedules []domain.ScheduleInput) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	f.topics[e.ID] = topics
	f.schedules[e.ID] = schedules
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, patch *domain.EventPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	e, ok := f.byID[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	f.lastPatch = patch
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.StartDate != nil {
		e.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		e.EndDate = *patch.EndDate
	}
	if patch.Topics != nil {
		f.topics[eventID] = *patch.Topics
	}
	if patch.Schedules != nil {
		f.schedules[eventID] = *patch.Schedules
	}
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, topicIDs []string, offset, limit int) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRegistrationRepo is an in-memory EventRegistrationRepository for tests.
type fakeRegistrationRepo struct {
	byKey     map[string]*domain.EventRegistration // key: eventID + "/" + userID
	nextID    int
	createErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byKey: make(map[string]*domain.EventRegistration), nextID: 1}
}

func regKey(eventID, userID string) string { return eventID + "/" + userID }

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := regKey(reg.EventID, reg.UserID)
	if _, ok := f.byKey[key]; ok {
		return fmt.Errorf("already registered for event: %w", domain.ErrConflict)
	}
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	f.byKey[key] = reg
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	if reg, ok := f.byKey[regKey(eventID, userID)]; ok {
		return reg, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) DeleteByEventAndUser(ctx context.Context, eventID, userID string) error {
	key := regKey(eventID, userID)
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byKey, key)
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	nextID    int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return fmt.Errorf("email already in use: %w", domain.ErrConflict)
	}
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID string, patch *domain.UserProfilePatch) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Affiliation != nil {
		u.Affiliation = patch.Affiliation
	}
	if patch.Background != nil {
		u.Background = patch.Background
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	return nil
}

// fakeHasher is a reversible stand-in for bcrypt in tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// fakeTokens issues predictable tokens.
type fakeTokens struct{ issueErr error }

func (f fakeTokens) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "token-for-" + userID, nil
}

// fakePaperRepo is an in-memory PaperRepository for tests.
type fakePaperRepo struct {
	byID      map[string]*domain.Paper
	nextID    int
	createErr error
}

func newFakePaperRepo() *fakePaperRepo {
	return &fakePaperRepo{byID: make(map[string]*domain.Paper), nextID: 1}
}

func (f *fakePaperRepo) Create(ctx context.Context, p *domain.Paper) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("paper-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakePaperRepo) GetByID(ctx context.Context, id string) (*domain.Paper, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePaperRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Paper, error) {
	var out []*domain.Paper
	for _, p := range f.byID {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaperRepo) UpdateStatus(ctx context.Context, id string, status domain.PaperStatus) error {
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePaperRepo) UpdatePDFPath(ctx context.Context, id, pdfPath string) error {
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PDFPath = &pdfPath
	return nil
}

// fakeStorage records saved and deleted blob paths.
type fakeStorage struct {
	saved   []string
	deleted []string
	nextID  int
	saveErr error
}

func (f *fakeStorage) Save(ctx context.Context, folder, originalFilename string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.nextID++
	path := fmt.Sprintf("%s/blob-%d.pdf", folder, f.nextID)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

// fakeEmailService records sends.
type fakeEmailService struct {
	registrations []*domain.RegistrationEmailData
	decisions     []*domain.PaperDecisionEmailData
	sendErr       error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.registrations = append(f.registrations, data)
	return nil
}

func (f *fakeEmailService) SendPaperDecision(ctx context.Context, data *domain.PaperDecisionEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.decisions = append(f.decisions, data)
	return nil
}

// fakeTopicRepo is an in-memory TopicRepository for tests.
type fakeTopicRepo struct {
	byID      map[string]*domain.Topic
	renameErr error
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{byID: make(map[string]*domain.Topic)}
}

func (f *fakeTopicRepo) List(ctx context.Context) ([]*domain.Topic, error) {
	var out []*domain.Topic
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTopicRepo) UpdateName(ctx context.Context, topicID, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	t, ok := f.byID[topicID]
	if !ok {
		return domain.ErrNotFound
	}
	t.Name = name
	return nil
}

func (f *fakeTopicRepo) Delete(ctx context.Context, topicID string) error {
	if _, ok := f.byID[topicID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, topicID)
	return nil
}

// fakeContactRepo is an in-memory ContactMessageRepository for tests.
type fakeContactRepo struct {
	byID   map[string]*domain.ContactMessage
	nextID int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{byID: make(map[string]*domain.ContactMessage), nextID: 1}
}

func (f *fakeContactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	msg.ID = fmt.Sprintf("msg-%d", f.nextID)
	f.nextID++
	f.byID[msg.ID] = msg
	return nil
}

func (f *fakeContactRepo) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	if m, ok := f.byID[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContactRepo) List(ctx context.Context, ownerID *string) ([]*domain.ContactMessage, error) {
	var out []*domain.ContactMessage
	for _, m := range f.byID {
		if ownerID == nil || m.UserID == *ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}
