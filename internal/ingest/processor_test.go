package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-intake/internal/cv"
	"resume-intake/internal/storage"
)

// fakeStore keeps submissions in memory and resolves identity the same way
// the SQL store does: exact equality on all four fields.
type fakeStore struct {
	mu          sync.Mutex
	submissions []*storage.Submission
	versions    map[string][]*storage.ResumeVersion

	findErr   error
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{versions: make(map[string][]*storage.ResumeVersion)}
}

func (f *fakeStore) FindCandidate(ctx context.Context, firstName, lastName, email, phone string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return "", false, f.findErr
	}
	for _, sub := range f.submissions {
		p := sub.Profile
		if p.FirstName == firstName && p.LastName == lastName && p.Email == email && p.PhoneNumber == phone {
			return p.CandidateID, true, nil
		}
	}
	return "", false, nil
}

func (f *fakeStore) LatestVersion(ctx context.Context, candidateID string) (*storage.ResumeVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chain := f.versions[candidateID]
	if len(chain) == 0 {
		return nil, nil
	}
	return chain[len(chain)-1], nil
}

func (f *fakeStore) AppendSubmission(ctx context.Context, sub *storage.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.submissions = append(f.submissions, sub)
	if sub.Version != nil {
		cid := sub.Version.CandidateID
		f.versions[cid] = append(f.versions[cid], sub.Version)
	}
	return nil
}

// staticBackend replies with the same payload on every call.
type staticBackend struct {
	reply string
	err   error
}

func (s *staticBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestProcessor(store Store, reply string) *Processor {
	extractor := cv.NewExtractor(&staticBackend{reply: reply}, "%s")
	p := NewProcessor(store, func(path string) (string, error) { return "resume text for " + path, nil }, extractor)
	p.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	seq := 0
	p.newID = func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}
	return p
}

const fullReply = `{
  "user_info": {"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com", "phone_number": "+44 123"},
  "skills": {"soft_skills": ["communication"], "hard_skills": ["Go"]},
  "relevant_work_experience": [
    {"title": "Engineer", "company": "Analytical Engines", "start_date": "Jan 2020 - Present", "end_date": ""}
  ],
  "education": [
    {"title": "BSc Mathematics", "institution": "University of London", "start_date": "Sept 2010", "end_date": "junio 2014"},
    {"degrees": [{"title": "MSc", "institution": "UCL"}], "certifications": [{"title": "AWS SAA", "institution": "Amazon"}]}
  ],
  "languages": [
    {"language": "English", "level": "native"},
    {"notes": "no language named"},
    "just a string"
  ]
}`

func TestProcessStoresFullSubmission(t *testing.T) {
	store := newFakeStore()
	p := newTestProcessor(store, fullReply)

	res, err := p.Process(context.Background(), "/tmp/ada.pdf")
	require.NoError(t, err)
	assert.False(t, res.Existing)
	assert.Equal(t, "id-0001", res.CandidateID)

	require.Len(t, store.submissions, 1)
	sub := store.submissions[0]

	assert.Equal(t, "Ada", sub.Profile.FirstName)
	assert.Equal(t, "/tmp/ada.pdf", sub.Profile.PDFPath)

	require.NotNil(t, sub.Skills)
	assert.Equal(t, []string{"Go"}, sub.Skills.HardSkills)

	require.Len(t, sub.Experience, 1)
	assert.Equal(t, "2020-01", sub.Experience[0].StartDate)
	assert.Equal(t, "", sub.Experience[0].EndDate, "open-ended range leaves the end empty")

	require.Len(t, sub.Education, 3)
	assert.Equal(t, "BSc Mathematics", sub.Education[0].Title)
	assert.Equal(t, "degree", sub.Education[0].Type)
	assert.Equal(t, "2010-09", sub.Education[0].StartDate)
	assert.Equal(t, "2014-06", sub.Education[0].EndDate)
	assert.Equal(t, "MSc", sub.Education[1].Title)
	assert.Equal(t, "degree", sub.Education[1].Type)
	assert.Equal(t, "AWS SAA", sub.Education[2].Title)
	assert.Equal(t, "certification", sub.Education[2].Type)

	require.Len(t, sub.Languages, 1, "items without language or level are dropped")
	assert.Equal(t, "English", sub.Languages[0].Language)
}

func TestProcessResolvesExistingCandidate(t *testing.T) {
	store := newFakeStore()
	p := newTestProcessor(store, fullReply)

	first, err := p.Process(context.Background(), "/tmp/ada-v1.pdf")
	require.NoError(t, err)

	second, err := p.Process(context.Background(), "/tmp/ada-v2.pdf")
	require.NoError(t, err)

	assert.True(t, second.Existing)
	assert.Equal(t, first.CandidateID, second.CandidateID)
	assert.Len(t, store.submissions, 2, "resubmission appends, never overwrites")
}

func TestProcessTreatsDifferentPhoneAsNewCandidate(t *testing.T) {
	store := newFakeStore()
	p := newTestProcessor(store, fullReply)

	first, err := p.Process(context.Background(), "/tmp/ada.pdf")
	require.NoError(t, err)

	otherPhone := `{
  "user_info": {"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com", "phone_number": "+44 999"}
}`
	p2 := newTestProcessor(store, otherPhone)
	p2.newID = func() string { return "id-fresh" }
	second, err := p2.Process(context.Background(), "/tmp/ada-other.pdf")
	require.NoError(t, err)

	assert.False(t, second.Existing)
	assert.NotEqual(t, first.CandidateID, second.CandidateID)
}

func TestProcessToleratesMissingSections(t *testing.T) {
	store := newFakeStore()
	p := newTestProcessor(store, `{"user_info": {"first_name": "Bo", "last_name": "Li", "email": "bo@example.com", "phone_number": ""}}`)

	_, err := p.Process(context.Background(), "/tmp/bo.pdf")
	require.NoError(t, err)

	sub := store.submissions[0]
	assert.Nil(t, sub.Skills, "no skills section means no skills record")
	assert.Empty(t, sub.Experience)
	assert.Empty(t, sub.Education)
	assert.Empty(t, sub.Languages)
}

func TestProcessRejectsEmptyTextLayer(t *testing.T) {
	store := newFakeStore()
	p := newTestProcessor(store, fullReply)
	p.extractor = func(path string) (string, error) { return "   \n ", nil }

	_, err := p.Process(context.Background(), "/tmp/scanned.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoText)
	assert.Empty(t, store.submissions)
}

func TestProcessPropagatesExtractionFailure(t *testing.T) {
	store := newFakeStore()
	p := newTestProcessor(store, fullReply)
	boom := errors.New("corrupt document")
	p.extractor = func(path string) (string, error) { return "", boom }

	_, err := p.Process(context.Background(), "/tmp/bad.pdf")
	assert.ErrorIs(t, err, boom)
}

func TestProcessKeepsUnparseableDatesRaw(t *testing.T) {
	store := newFakeStore()
	p := newTestProcessor(store, `{
  "user_info": {"first_name": "Cy", "last_name": "Quinn", "email": "cy@example.com", "phone_number": "1"},
  "relevant_work_experience": [{"title": "Temp", "company": "X", "start_date": "early spring", "end_date": "later"}]
}`)

	_, err := p.Process(context.Background(), "/tmp/cy.pdf")
	require.NoError(t, err)

	exp := store.submissions[0].Experience[0]
	assert.Equal(t, "early spring", exp.StartDate)
	assert.Equal(t, "later", exp.EndDate)
}
