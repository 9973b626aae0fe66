package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/config"
	"github.com/learnhub-io/learnhub/models"
	"github.com/learnhub-io/learnhub/store/filestore"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type APITestSuite struct {
	suite.Suite
	cfg    *config.Config
	server *Server
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	root := s.T().TempDir()
	s.cfg = &config.Config{
		Listen:     ":0",
		DataDir:    filepath.Join(root, "data"),
		WebDir:     filepath.Join(root, "public"),
		UploadsDir: filepath.Join(root, "public", "uploads"),
	}
	require.NoError(s.T(), os.MkdirAll(s.cfg.WebDir, 0o755))
	require.NoError(s.T(), os.WriteFile(filepath.Join(s.cfg.WebDir, "index.html"), []byte("<html>spa</html>"), 0o644))

	st, err := filestore.New(s.cfg.DataDir)
	require.NoError(s.T(), err)
	require.NoError(s.T(), st.SeedDefaultCourses())

	server, err := New(s.cfg, st)
	require.NoError(s.T(), err)
	s.server = server
}

func (s *APITestSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.server.ginEngine.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) register(name, email, password string) models.User {
	w := s.request(http.MethodPost, "/api/register",
		fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user models.User
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func (s *APITestSuite) TestRegisterSeedsProgressForEveryCourse() {
	user := s.register("A", "a@x.com", "p")

	s.Equal(int64(1), user.ID)
	s.Require().Len(user.Courses, 3)
	for i, rec := range user.Courses {
		s.Equal(int64(i+1), rec.CourseID)
		s.Zero(rec.Progress)
	}
}

func (s *APITestSuite) TestRegisterNeverEchoesPassword() {
	w := s.request(http.MethodPost, "/api/register", `{"name":"A","email":"a@x.com","password":"secret"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "password")
	s.NotContains(w.Body.String(), "secret")
}

func (s *APITestSuite) TestRegisterMissingFields() {
	w := s.request(http.MethodPost, "/api/register", `{"name":"A"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestRegisterMalformedJSONReadsAsNoFields() {
	w := s.request(http.MethodPost, "/api/register", `{not json at all`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestOversizedBodyIsRejected() {
	w := s.request(http.MethodPost, "/api/register", strings.Repeat("x", 1<<20+1))
	s.Equal(http.StatusRequestEntityTooLarge, w.Code)
	s.JSONEq(`{"error":"Request body too large."}`, w.Body.String())
}

func (s *APITestSuite) TestRegisterDuplicateEmailIsCaseInsensitive() {
	s.register("A", "a@x.com", "p")

	w := s.request(http.MethodPost, "/api/register", `{"name":"B","email":"A@X.COM","password":"other"}`)
	s.Equal(http.StatusConflict, w.Code)
	s.JSONEq(`{"error":"Email already in use."}`, w.Body.String())
}

func (s *APITestSuite) TestRegisterAssignsIncreasingIDs() {
	first := s.register("A", "a@x.com", "p")
	second := s.register("B", "b@x.com", "p")
	s.Equal(first.ID+1, second.ID)
}

func (s *APITestSuite) TestLogin() {
	s.register("A", "a@x.com", "secret")

	w := s.request(http.MethodPost, "/api/login", `{"email":"A@X.com","password":"secret"}`)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/login", `{"email":"a@x.com","password":"SECRET"}`)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPost, "/api/login", `{"email":"nobody@x.com","password":"secret"}`)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPost, "/api/login", `{"email":"a@x.com"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestGetUserCoursesUnknownUser() {
	w := s.request(http.MethodGet, "/api/user/999/courses", "")
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"User not found."}`, w.Body.String())
}

func (s *APITestSuite) TestNonIntegerIDReadsAsNotFound() {
	w := s.request(http.MethodGet, "/api/user/abc/courses", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestUpdateProgress() {
	user := s.register("A", "a@x.com", "p")

	w := s.request(http.MethodPut, fmt.Sprintf("/api/user/%d/course/1/progress", user.ID), `{"progress":40}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"success":true}`, w.Body.String())

	w = s.request(http.MethodGet, fmt.Sprintf("/api/user/%d/courses", user.ID), "")
	s.Require().Equal(http.StatusOK, w.Code)
	var records []models.ProgressRecord
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &records))
	s.Equal(float64(40), records[0].Progress)
}

func (s *APITestSuite) TestUpdateProgressOutOfRangeLeavesStateUntouched() {
	user := s.register("A", "a@x.com", "p")

	w := s.request(http.MethodPut, fmt.Sprintf("/api/user/%d/course/1/progress", user.ID), `{"progress":150}`)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPut, fmt.Sprintf("/api/user/%d/course/1/progress", user.ID), `{"progress":-1}`)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPut, fmt.Sprintf("/api/user/%d/course/1/progress", user.ID), `{"progress":"forty"}`)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/user/%d/courses", user.ID), "")
	var records []models.ProgressRecord
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &records))
	s.Zero(records[0].Progress)
}

func (s *APITestSuite) TestUpdateProgressUnknownCourse() {
	user := s.register("A", "a@x.com", "p")

	w := s.request(http.MethodPut, fmt.Sprintf("/api/user/%d/course/999/progress", user.ID), `{"progress":10}`)
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"Course not found."}`, w.Body.String())
}

func (s *APITestSuite) TestCourseListingAndDetail() {
	w := s.request(http.MethodGet, "/api/courses", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var courses []models.Course
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &courses))
	s.Len(courses, 3)

	w = s.request(http.MethodGet, "/api/courses/2", "")
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/courses/999", "")
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"Course not found."}`, w.Body.String())
}

func (s *APITestSuite) TestAdminCreateCourseFansOutProgress() {
	user := s.register("A", "a@x.com", "p")

	w := s.request(http.MethodPost, "/api/admin/courses", `{"title":"Algorithms","description":"Sorting and searching"}`)
	s.Require().Equal(http.StatusCreated, w.Code)
	var course models.Course
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &course))
	s.Equal(int64(4), course.ID)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/user/%d/courses", user.ID), "")
	var records []models.ProgressRecord
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &records))
	s.Require().Len(records, 4)
	s.Equal(models.ProgressRecord{CourseID: 4, Progress: 0}, records[3])
}

func (s *APITestSuite) TestAdminCreateCourseRequiresTitle() {
	w := s.request(http.MethodPost, "/api/admin/courses", `{"description":"no title"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"Title is required."}`, w.Body.String())
}

func (s *APITestSuite) TestAdminUpdateCoursePartialOverwrite() {
	w := s.request(http.MethodPatch, "/api/admin/courses/1", `{"description":"rewritten"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var course models.Course
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &course))
	s.Equal("Introduction to Programming", course.Title)
	s.Equal("rewritten", course.Description)

	w = s.request(http.MethodPut, "/api/admin/courses/999", `{"title":"nope"}`)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestAdminListUsersStripsPasswords() {
	s.register("A", "a@x.com", "topsecret")
	s.register("B", "b@x.com", "hushhush")

	w := s.request(http.MethodGet, "/api/admin/users", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "topsecret")
	s.NotContains(w.Body.String(), "hushhush")

	var users []models.User
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &users))
	s.Len(users, 2)
}

func (s *APITestSuite) TestProfileUpdateEmailCollision() {
	s.register("A", "a@x.com", "p")
	second := s.register("B", "b@x.com", "p")

	w := s.request(http.MethodPut, fmt.Sprintf("/api/user/%d", second.ID), `{"email":"A@x.com"}`)
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodPatch, fmt.Sprintf("/api/user/%d", second.ID), `{"name":"Bea"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	var user models.User
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	s.Equal("Bea", user.Name)
	s.Equal("b@x.com", user.Email)
}

func (s *APITestSuite) TestProfilePictureUpload() {
	user := s.register("A", "a@x.com", "p")

	payload := base64.StdEncoding.EncodeToString([]byte("tiny png bytes"))
	body := fmt.Sprintf(`{"image":"data:image/png;base64,%s"}`, payload)

	w := s.request(http.MethodPost, fmt.Sprintf("/api/user/%d/profile-picture", user.ID), body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Regexp(fmt.Sprintf(`^/uploads/user-%d-\d+\.png$`, user.ID), resp.URL)

	saved, err := os.ReadFile(filepath.Join(s.cfg.UploadsDir, strings.TrimPrefix(resp.URL, "/uploads/")))
	s.Require().NoError(err)
	s.Equal("tiny png bytes", string(saved))
}

func (s *APITestSuite) TestProfilePictureRejectsInvalidDataURI() {
	user := s.register("A", "a@x.com", "p")

	w := s.request(http.MethodPost, fmt.Sprintf("/api/user/%d/profile-picture", user.ID), `{"image":"not a data uri"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"Invalid image data."}`, w.Body.String())
}

func (s *APITestSuite) TestProfilePictureUnknownUser() {
	w := s.request(http.MethodPost, "/api/user/999/profile-picture", `{"image":"data:image/png;base64,aGk="}`)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestWriteFailureIsGeneric500() {
	s.register("A", "a@x.com", "p")

	// turn the users document into a directory so every rewrite fails
	usersPath := filepath.Join(s.cfg.DataDir, "users.json")
	require.NoError(s.T(), os.Remove(usersPath))
	require.NoError(s.T(), os.Mkdir(usersPath, 0o755))

	w := s.request(http.MethodPost, "/api/register", `{"name":"B","email":"b@x.com","password":"p"}`)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.JSONEq(`{"error":"Internal server error."}`, w.Body.String())

	// reads against the intact courses document keep working
	w = s.request(http.MethodGet, "/api/courses", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestUnmatchedAPIRouteReturnsJSON404() {
	w := s.request(http.MethodGet, "/api/does-not-exist", "")
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"error":"Not found."}`, w.Body.String())

	w = s.request(http.MethodDelete, "/api/courses/1", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestStaticAssetAndSPAFallback() {
	require.NoError(s.T(), os.WriteFile(filepath.Join(s.cfg.WebDir, "app.js"), []byte("console.log(1)"), 0o644))

	w := s.request(http.MethodGet, "/app.js", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("console.log(1)", w.Body.String())

	w = s.request(http.MethodGet, "/courses/1/details", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "spa")
}

func (s *APITestSuite) TestTraversalAttemptIsForbidden() {
	w := s.request(http.MethodGet, "/static/../../etc/passwd", "")
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestMissingIndexDegradesTo404() {
	require.NoError(s.T(), os.Remove(filepath.Join(s.cfg.WebDir, "index.html")))

	w := s.request(http.MethodGet, "/courses/1/details", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/api/health", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
