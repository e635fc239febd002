package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/outreach-tracker/internal/handler"
	"github.com/unclebandit/outreach-tracker/internal/model"
	"github.com/unclebandit/outreach-tracker/internal/repository"
	"github.com/unclebandit/outreach-tracker/internal/service"
)

type MockCallLogBackend struct {
	entries []model.CallLogEntry
}

func (m *MockCallLogBackend) Kind() repository.BackendKind { return repository.BackendSheets }

func (m *MockCallLogBackend) Append(_ context.Context, e *model.CallLogEntry) error {
	m.entries = append(m.entries, *e)
	return nil
}

func (m *MockCallLogBackend) ReadAll(context.Context) ([]model.CallLogEntry, error) {
	return m.entries, nil
}

type MockStatus struct{ status repository.BackendStatus }

func (m MockStatus) Status() repository.BackendStatus { return m.status }

func newPageHandler(t *testing.T, status repository.BackendStatus) *handler.PageHandler {
	t.Helper()
	repo := repository.NewCatalogRepository()
	require.NoError(t, repo.Add(&model.Campaign{Name: "Conquest"}, []model.Customer{
		{ID: "C-1", Name: "Acme"},
		{ID: "C-2", Name: "Globex"},
	}))
	return &handler.PageHandler{
		CampaignService: &service.CampaignService{
			CampaignRepo: repo,
			CustomerRepo: repo,
			CallLog: &MockCallLogBackend{entries: []model.CallLogEntry{
				{Campaign: "Conquest", CustomerID: "C-1", Outcome: model.OutcomeFollowUp},
			}},
		},
		Store:    MockStatus{status: status},
		Sessions: handler.NewSessionStore("test-secret-0123456789abcdef0123", time.Hour),
	}
}

func TestLandingShowsLoginAndStatus(t *testing.T) {
	h := newPageHandler(t, repository.BackendStatus{Backend: repository.BackendLocal})

	rr := httptest.NewRecorder()
	h.Landing(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "4 - Dublin")
	assert.Contains(t, body, "Local Mode")
	assert.Contains(t, body, "gs-off")
	assert.NotContains(t, body, "Conquest")
}

func TestLoginRequiresNameAndBranch(t *testing.T) {
	h := newPageHandler(t, repository.BackendStatus{Backend: repository.BackendLocal})

	for _, form := range []url.Values{
		{"name": {"  "}, "branch": {"4"}},
		{"name": {"Dana"}},
		{"name": {"Dana"}, "branch": {"8"}},
	} {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, form.Encode())
		assert.Contains(t, rr.Body.String(), "Please enter your name and select a branch")
		assert.Empty(t, rr.Result().Cookies())
	}
}

func TestLoginThenLanding(t *testing.T) {
	h := newPageHandler(t, repository.BackendStatus{Backend: repository.BackendSheets, Remote: true})

	form := url.Values{"name": {"Dana <ops>"}, "branch": {"20"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	h.Landing(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Dana &lt;ops&gt; | Novi")
	assert.Contains(t, body, "Conquest")
	assert.Contains(t, body, "1 called | 1 follow-ups")
	assert.Contains(t, body, "Sheets Connected")
	assert.NotContains(t, body, `action="/login"`)
}

func TestLogoutExpiresSession(t *testing.T) {
	h := newPageHandler(t, repository.BackendStatus{Backend: repository.BackendLocal})

	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}
