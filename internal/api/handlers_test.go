package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Rhman101/fcc0404/internal/domain"
	"github.com/Rhman101/fcc0404/internal/persistence/memory"
)

func newTestRouter() *mux.Router {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service := domain.NewService(memory.NewUserRepository(), memory.NewExerciseRepository())
	handler := NewHandler(service, logger)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func postForm(t *testing.T, router *mux.Router, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, router *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func createUser(t *testing.T, router *mux.Router, username string) UserView {
	t.Helper()
	rr := postForm(t, router, "/api/exercise/new-user", url.Values{"username": {username}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var user UserView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	require.NotEmpty(t, user.ID)
	return user
}

func addExercise(t *testing.T, router *mux.Router, form url.Values) AddExerciseResponse {
	t.Helper()
	rr := postForm(t, router, "/api/exercise/add", form)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp AddExerciseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestCreateUserThenList(t *testing.T) {
	router := newTestRouter()

	user := createUser(t, router, "alice")
	require.Equal(t, "alice", user.Username)

	rr := get(t, router, "/api/exercise/users")
	require.Equal(t, http.StatusOK, rr.Code)

	var users []UserView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.Equal(t, user, users[0])
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	router := newTestRouter()
	createUser(t, router, "alice")

	rr := postForm(t, router, "/api/exercise/new-user", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "username already exists", body["error"])
}

func TestCreateUserMissingUsername(t *testing.T) {
	router := newTestRouter()

	rr := postForm(t, router, "/api/exercise/new-user", url.Values{})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Please add a username.", body["error"])

	users := get(t, router, "/api/exercise/users")
	require.Equal(t, "[]\n", users.Body.String())
}

func TestAddExerciseEchoesInputAndDefaultsDate(t *testing.T) {
	router := newTestRouter()
	user := createUser(t, router, "alice")

	resp := addExercise(t, router, url.Values{
		"userId":      {user.ID},
		"description": {"running"},
		"duration":    {"30"},
	})

	require.Equal(t, "alice", resp.Username)
	require.Equal(t, user.ID, resp.ID)
	require.Equal(t, "running", resp.Description)
	require.Equal(t, float64(30), resp.Duration)
	require.Equal(t, time.Now().UTC().Format(domain.DateLayout), resp.Date)

	rr := get(t, router, "/api/exercise/log?userId="+user.ID)
	require.Equal(t, http.StatusOK, rr.Code)

	var log ExerciseLogResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &log))
	require.Equal(t, 1, log.Count)
	require.Equal(t, "running", log.Log[0].Description)
}

func TestAddExerciseEchoesCallerDateFormatting(t *testing.T) {
	router := newTestRouter()
	user := createUser(t, router, "alice")

	resp := addExercise(t, router, url.Values{
		"userId":      {user.ID},
		"description": {"rowing"},
		"duration":    {"15"},
		"date":        {"2023-05-01T06:00:00Z"},
	})
	require.Equal(t, "2023-05-01T06:00:00Z", resp.Date)
}

func TestAddExerciseUnknownUser(t *testing.T) {
	router := newTestRouter()

	rr := postForm(t, router, "/api/exercise/add", url.Values{
		"userId":      {"does-not-exist"},
		"description": {"running"},
		"duration":    {"30"},
	})
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Invalid UserId.", body["error"])
}

func TestAddExerciseValidation(t *testing.T) {
	router := newTestRouter()
	user := createUser(t, router, "alice")

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{
			name: "missing description",
			form: url.Values{"userId": {user.ID}, "duration": {"30"}},
			want: "description is required",
		},
		{
			name: "missing duration",
			form: url.Values{"userId": {user.ID}, "description": {"running"}},
			want: "duration is required",
		},
		{
			name: "bad duration",
			form: url.Values{"userId": {user.ID}, "description": {"running"}, "duration": {"lots"}},
			want: "invalid duration",
		},
		{
			name: "bad date",
			form: url.Values{"userId": {user.ID}, "description": {"running"}, "duration": {"30"}, "date": {"someday"}},
			want: "invalid date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postForm(t, router, "/api/exercise/add", tc.form)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			require.Equal(t, tc.want, body["error"])
		})
	}
}

func TestExerciseLogFilterAndEcho(t *testing.T) {
	router := newTestRouter()
	user := createUser(t, router, "alice")

	for _, date := range []string{"2023-01-01", "2023-01-05", "2023-01-10"} {
		addExercise(t, router, url.Values{
			"userId":      {user.ID},
			"description": {"run " + date},
			"duration":    {"30"},
			"date":        {date},
		})
	}

	rr := get(t, router, "/api/exercise/log?userId="+user.ID+"&from=2023-01-02&to=2023-01-08")
	require.Equal(t, http.StatusOK, rr.Code)

	var log ExerciseLogResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &log))
	require.Equal(t, "alice", log.Username)
	require.Equal(t, "2023-01-02", log.From)
	require.Equal(t, "2023-01-08", log.To)
	require.Nil(t, log.Limit)
	require.Equal(t, 1, log.Count)
	require.Len(t, log.Log, 1)
	require.Equal(t, "run 2023-01-05", log.Log[0].Description)
	require.Equal(t, "2023-01-05", log.Log[0].Date)
}

func TestExerciseLogLimitKeepsEarliest(t *testing.T) {
	router := newTestRouter()
	user := createUser(t, router, "alice")

	for _, date := range []string{"2023-02-05", "2023-02-01", "2023-02-04", "2023-02-02", "2023-02-03"} {
		addExercise(t, router, url.Values{
			"userId":      {user.ID},
			"description": {date},
			"duration":    {"10"},
			"date":        {date},
		})
	}

	rr := get(t, router, "/api/exercise/log?userId="+user.ID+"&limit=2")
	require.Equal(t, http.StatusOK, rr.Code)

	var log ExerciseLogResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &log))
	require.NotNil(t, log.Limit)
	require.Equal(t, 2, *log.Limit)
	require.Equal(t, 2, log.Count)
	require.Equal(t, "2023-02-01", log.Log[0].Description)
	require.Equal(t, "2023-02-02", log.Log[1].Description)
}

func TestExerciseLogUnknownUserGetsOneResponse(t *testing.T) {
	router := newTestRouter()

	rr := get(t, router, "/api/exercise/log?userId=does-not-exist")
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Invalid UserId.", body["error"])
}

func TestExerciseLogRejectsBadQueryValues(t *testing.T) {
	router := newTestRouter()
	user := createUser(t, router, "alice")

	for _, query := range []string{"from=nope", "to=nope", "limit=nope", "limit=-1"} {
		rr := get(t, router, "/api/exercise/log?userId="+user.ID+"&"+query)
		require.Equal(t, http.StatusBadRequest, rr.Code, query)
	}
}

func TestUnmatchedRoutes(t *testing.T) {
	router := newTestRouter()

	rr := get(t, router, "/api/exercise/nope")
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "not found", body["error"])

	// Wrong method on a known path falls through to the same body.
	rr = postForm(t, router, "/api/exercise/users", url.Values{})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestIndexServesLandingPage(t *testing.T) {
	router := newTestRouter()

	rr := get(t, router, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rr.Body.String(), "Exercise Tracker")
}
