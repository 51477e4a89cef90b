package router

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/models"
	"newsroom/internal/repository"
	"newsroom/internal/services"
	"newsroom/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []services.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg services.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testApp struct {
	t      *testing.T
	engine *gin.Engine
	repos  *repository.Repositories
	mailer *fakeMailer
	media  string
	jar    *cookiejar.Jar
}

var baseURL, _ = url.Parse("http://newsroom.test/")

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	conn := db.OpenTest(t)
	cfg := &config.Config{
		Env:       "development",
		SiteName:  "Newsroom",
		SiteURL:   "http://newsroom.test",
		LoginURL:  "/login/",
		PageSize:  2,
		MediaRoot: t.TempDir(),
		Session:   config.SessionConfig{Secret: "test-secret", Name: "newsroom_session", MaxAge: 3600},
		Mail:      config.MailConfig{From: "site@example.com", To: []string{"editor@example.com"}},
	}
	mailer := &fakeMailer{}
	engine, err := New(Deps{Config: cfg, DB: conn, Mailer: mailer})
	require.NoError(t, err)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testApp{
		t:      t,
		engine: engine,
		repos:  repository.NewRepositories(conn),
		mailer: mailer,
		media:  cfg.MediaRoot,
		jar:    jar,
	}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range a.jar.Cookies(baseURL) {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	a.jar.SetCookies(baseURL, w.Result().Cookies())
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) category(title string) *models.Category {
	a.t.Helper()
	c := &models.Category{Title: title}
	require.NoError(a.t, a.repos.Category.Create(context.Background(), c))
	return c
}

func (a *testApp) news(title string, category *models.Category, published bool) *models.News {
	a.t.Helper()
	n := &models.News{Title: title, Content: "Body of " + title, CategoryID: category.ID, IsPublished: published}
	require.NoError(a.t, a.repos.News.Create(context.Background(), n))
	return n
}

func (a *testApp) user(username, password, role string) *models.User {
	a.t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(a.t, err)
	u := &models.User{Username: username, Email: username + "@example.com", Password: hash, Role: role}
	require.NoError(a.t, a.repos.User.Create(context.Background(), u))
	return u
}

func (a *testApp) login(username, password string) {
	a.t.Helper()
	w := a.post("/login/", url.Values{"username": {username}, "password": {password}})
	require.Equal(a.t, http.StatusFound, w.Code, w.Body.String())
}

func (a *testApp) countNews() int {
	a.t.Helper()
	items, err := a.repos.News.Search(context.Background(), repository.ListQuery{})
	require.NoError(a.t, err)
	return len(items)
}

func TestHomeListsPublishedNews(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	app.news("Visible story", politics, true)
	app.news("Hidden draft", politics, false)

	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Home Page | Newsroom</title>")
	assert.Contains(t, body, "HELLO WORLD")
	assert.Contains(t, body, "Visible story")
	assert.NotContains(t, body, "Hidden draft")
	assert.Contains(t, body, `href="/category/`)
}

func TestHomePagination(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	for _, title := range []string{"One", "Two", "Three"} {
		app.news(title, politics, true)
	}

	w := app.get("/?page=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "&laquo; Previous")

	w = app.get("/?page=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This page does not exist.")

	w = app.get("/?page=abc")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryListing(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	empty := app.category("Empty")
	app.news("Budget 2024", politics, true)
	app.news("Secret memo", politics, false)

	w := app.get(politics.URL())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Politics | Newsroom</title>")
	assert.Contains(t, w.Body.String(), "Budget 2024")
	assert.NotContains(t, w.Body.String(), "Secret memo")

	assert.Equal(t, http.StatusNotFound, app.get(empty.URL()).Code)
	assert.Equal(t, http.StatusNotFound, app.get(politics.URL()+"?page=2").Code)
	assert.Equal(t, http.StatusNotFound, app.get("/category/999/").Code)
	assert.Equal(t, http.StatusNotFound, app.get("/category/abc/").Code)
}

func TestSidebarCounts(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	app.category("Quiet")

	w := app.get("/")
	assert.NotContains(t, w.Body.String(), `>Politics</a> <span class="badge">`)

	app.news("Budget 2024", politics, true)
	app.news("Draft", politics, false)

	w = app.get("/")
	body := w.Body.String()
	assert.Contains(t, body, `<a href="`+politics.URL()+`">Politics</a> <span class="badge">1</span>`)
	assert.NotContains(t, body, `>Quiet</a> <span class="badge">`)
}

func TestNewsDetail(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	item := app.news("Budget 2024", politics, true)
	require.NoError(t, app.repos.News.Update(context.Background(), &models.News{
		ID: item.ID, Title: item.Title, Content: "**bold** <script>alert(1)</script>",
		CategoryID: politics.ID, IsPublished: true,
	}))

	w := app.get(item.URL())
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Budget 2024 | Newsroom</title>")
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")

	app.get(item.URL())
	got, err := app.repos.News.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Views)

	assert.Equal(t, http.StatusNotFound, app.get("/news/999/").Code)
	assert.Equal(t, http.StatusNotFound, app.get("/news/0/").Code)
}

func TestCreateNewsRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")

	w := app.get("/news/add/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login/"))

	w = app.post("/news/add/", url.Values{
		"title":        {"Valid title"},
		"content":      {"text"},
		"is_published": {"true"},
		"category":     {itoa(politics.ID)},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login/"))
	assert.Equal(t, 0, app.countNews())
}

func TestCreateNews(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	app.user("alice", "s3cret-pass", models.RoleUser)
	app.login("alice", "s3cret-pass")

	w := app.get("/news/add/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="is_published" value="true" checked`)

	w = app.post("/news/add/", url.Values{
		"title":        {"Budget 2024"},
		"content":      {"Numbers"},
		"is_published": {"true"},
		"category":     {itoa(politics.ID)},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	items, err := app.repos.News.Search(context.Background(), repository.ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, items[0].URL(), w.Header().Get("Location"))
	assert.True(t, items[0].IsPublished)

	w = app.post("/news/add/", url.Values{"title": {"Draft"}, "category": {itoa(politics.ID)}})
	require.Equal(t, http.StatusFound, w.Code)
	items, err = app.repos.News.Search(context.Background(), repository.ListQuery{Search: "Draft", SearchFields: []string{"title"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsPublished)
}

func TestCreateNewsRejectsDigitTitle(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	app.user("alice", "s3cret-pass", models.RoleUser)
	app.login("alice", "s3cret-pass")

	for _, title := range []string{"2024 budget", "9 lives", "0"} {
		w := app.post("/news/add/", url.Values{"title": {title}, "category": {itoa(politics.ID)}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Title must not start with a digit.")
		assert.Contains(t, w.Body.String(), `value="`+title+`"`)
	}
	assert.Equal(t, 0, app.countNews())
}

func TestCreateNewsInvalidInput(t *testing.T) {
	app := newTestApp(t)
	app.category("Politics")
	app.user("alice", "s3cret-pass", models.RoleUser)
	app.login("alice", "s3cret-pass")

	w := app.post("/news/add/", url.Values{"title": {""}, "category": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required.")

	w = app.post("/news/add/", url.Values{"title": {"Fine"}, "category": {"999"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Select a valid choice.")
	assert.Equal(t, 0, app.countNews())
}

func TestCreateNewsWithPhoto(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	app.user("alice", "s3cret-pass", models.RoleUser)
	app.login("alice", "s3cret-pass")

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	multipartPost := func(filename string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", "With photo"))
		require.NoError(t, mw.WriteField("category", itoa(politics.ID)))
		require.NoError(t, mw.WriteField("is_published", "true"))
		part, err := mw.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/news/add/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return app.do(req)
	}

	w := multipartPost("notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, app.countNews())

	w = multipartPost("cover.png", png)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	items, err := app.repos.News.Search(context.Background(), repository.ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, strings.HasPrefix(items[0].Photo, "photos/"))
	_, err = os.Stat(filepath.Join(app.media, filepath.FromSlash(items[0].Photo)))
	assert.NoError(t, err)

	w = app.get(items[0].PhotoURL())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/register/", url.Values{
		"username":  {"bob"},
		"email":     {"bob@example.com"},
		"password1": {"one-password"},
		"password2": {"another-password"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "The two password fields didn")
	assert.Contains(t, w.Body.String(), "Registration failed")
	assert.Contains(t, w.Body.String(), `value="bob"`)
	_, err := app.repos.User.GetByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, models.ErrNotFound)

	w = app.post("/register/", url.Values{
		"username":  {"bob"},
		"email":     {"bob@example.com"},
		"password1": {"same-password"},
		"password2": {"same-password"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/", w.Header().Get("Location"))

	user, err := app.repos.User.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotEqual(t, "same-password", user.Password)
	assert.True(t, utils.CheckPasswordHash("same-password", user.Password))

	w = app.get("/")
	assert.Contains(t, w.Body.String(), "Your account has been registered successfully")
	assert.Equal(t, http.StatusOK, app.get("/news/add/").Code)

	// the flash is shown once
	assert.NotContains(t, app.get("/").Body.String(), "Your account has been registered successfully")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	app.user("bob", "whatever-pass", models.RoleUser)

	w := app.post("/register/", url.Values{
		"username":  {"bob"},
		"email":     {"bob2@example.com"},
		"password1": {"same-password"},
		"password2": {"same-password"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "A user with that username already exists.")
}

func TestLoginLogout(t *testing.T) {
	app := newTestApp(t)
	app.user("alice", "s3cret-pass", models.RoleUser)

	for _, form := range []url.Values{
		{"username": {"alice"}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {"s3cret-pass"}},
	} {
		w := app.post("/login/", form)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter a correct username and password.")
	}

	w := app.post("/login/", url.Values{"username": {"alice"}, "password": {"s3cret-pass"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, app.get("/").Body.String(), "You have been logged in successfully")

	w = app.get("/logout/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/", w.Header().Get("Location"))
	assert.Contains(t, app.get("/login/").Body.String(), "You have been logged out successfully")
	assert.Equal(t, http.StatusFound, app.get("/news/add/").Code)
}

func TestLoginFollowsLocalNext(t *testing.T) {
	app := newTestApp(t)
	app.user("alice", "s3cret-pass", models.RoleUser)

	w := app.post("/login/", url.Values{"username": {"alice"}, "password": {"s3cret-pass"}, "next": {"/news/add/"}})
	assert.Equal(t, "/news/add/", w.Header().Get("Location"))

	app.get("/logout/")
	w = app.post("/login/", url.Values{"username": {"alice"}, "password": {"s3cret-pass"}, "next": {"//evil.example.com/"}})
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestContact(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/contacts/", url.Values{"subject": {""}, "message": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required.")
	assert.Empty(t, app.mailer.sent)

	app.mailer.err = errors.Join(models.ErrNotificationFailure, errors.New("relay down"))
	w = app.post("/contacts/", url.Values{"subject": {"Hello"}, "message": {"Kept message"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email has not been sent")
	assert.Contains(t, w.Body.String(), "Kept message")

	app.mailer.err = nil
	w = app.post("/contacts/", url.Values{"subject": {"Hello"}, "message": {"Body"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.Len(t, app.mailer.sent, 1)
	assert.Equal(t, services.Message{
		Subject: "Hello",
		Body:    "Body",
		From:    "site@example.com",
		To:      []string{"editor@example.com"},
	}, app.mailer.sent[0])
	assert.Contains(t, app.get("/").Body.String(), "Email has been sent successfully")
}

func TestAdminAccess(t *testing.T) {
	app := newTestApp(t)
	app.user("alice", "s3cret-pass", models.RoleUser)

	w := app.get("/admin/news/")
	assert.Equal(t, http.StatusFound, w.Code)

	app.login("alice", "s3cret-pass")
	assert.Equal(t, http.StatusForbidden, app.get("/admin/news/").Code)
	assert.Equal(t, http.StatusForbidden, app.post("/admin/categories/", url.Values{"title": {"X"}}).Code)
}

func TestAdminCategoryDelete(t *testing.T) {
	app := newTestApp(t)
	app.user("root", "admin-pass", models.RoleAdmin)
	app.login("root", "admin-pass")

	used := app.category("Politics")
	app.news("Budget 2024", used, false)
	unused := app.category("Empty")

	w := app.post("/admin/categories/"+itoa(used.ID)+"/delete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	_, err := app.repos.Category.GetByID(context.Background(), used.ID)
	assert.NoError(t, err)

	w = app.post("/admin/categories/"+itoa(unused.ID)+"/delete", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	_, err = app.repos.Category.GetByID(context.Background(), unused.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, app.post("/admin/categories/999/delete", nil).Code)
}

func TestAdminLists(t *testing.T) {
	app := newTestApp(t)
	app.user("root", "admin-pass", models.RoleAdmin)
	app.login("root", "admin-pass")

	politics := app.category("Politics")
	sports := app.category("Sports")
	app.news("Budget 2024", politics, true)
	app.news("Cup final", sports, false)

	body := app.get("/admin/news/").Body.String()
	assert.Contains(t, body, "Budget 2024")
	assert.Contains(t, body, "Cup final")

	body = app.get("/admin/news/?q=budget").Body.String()
	assert.Contains(t, body, "Budget 2024")
	assert.NotContains(t, body, "Cup final")

	body = app.get("/admin/news/?is_published=false").Body.String()
	assert.NotContains(t, body, "Budget 2024")
	assert.Contains(t, body, "Cup final")

	body = app.get("/admin/news/?category_id=" + itoa(politics.ID) + "&views=7").Body.String()
	assert.Contains(t, body, "Budget 2024")
	assert.NotContains(t, body, "Cup final")

	body = app.get("/admin/categories/?q=spo").Body.String()
	assert.Contains(t, body, "Sports")
	assert.NotContains(t, body, ">Politics</a></td>")
}

func TestAdminEdits(t *testing.T) {
	app := newTestApp(t)
	app.user("root", "admin-pass", models.RoleAdmin)
	app.login("root", "admin-pass")
	ctx := context.Background()

	politics := app.category("Politics")
	item := app.news("Budget", politics, true)

	w := app.post("/admin/categories/", url.Values{"title": {"Science"}, "description": {"Labs"}})
	require.Equal(t, http.StatusFound, w.Code)
	found, err := app.repos.Category.Search(ctx, repository.ListQuery{Search: "science", SearchFields: []string{"title"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	science := found[0]

	w = app.post("/admin/categories/"+itoa(science.ID)+"/", url.Values{"title": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.post("/admin/categories/"+itoa(science.ID)+"/", url.Values{"title": {"Science & Tech"}})
	require.Equal(t, http.StatusFound, w.Code)
	got, err := app.repos.Category.GetByID(ctx, science.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science & Tech", got.Title)

	// admins may use titles that start with a digit
	w = app.post("/admin/news/"+itoa(item.ID)+"/", url.Values{
		"title":    {"2024 Budget"},
		"content":  {"Updated"},
		"category": {itoa(science.ID)},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	updated, err := app.repos.News.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024 Budget", updated.Title)
	assert.Equal(t, science.ID, updated.CategoryID)
	assert.False(t, updated.IsPublished)

	assert.Equal(t, http.StatusOK, app.get("/admin/news/"+itoa(item.ID)+"/").Code)
	w = app.post("/admin/news/"+itoa(item.ID)+"/delete", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, http.StatusNotFound, app.get(item.URL()).Code)
}

func TestAdminInlineEdits(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	politics := app.category("Politics")
	sports := app.category("Sports")
	budget := app.news("Budget 2024", politics, true)
	final := app.news("Cup final", sports, false)

	app.user("editor", "editor-pass", models.RoleUser)
	app.login("editor", "editor-pass")
	w := app.post("/admin/news/", url.Values{"ids": {itoa(budget.ID)}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	app.post("/logout/", nil)

	app.user("root", "admin-pass", models.RoleAdmin)
	app.login("root", "admin-pass")

	body := app.get("/admin/news/").Body.String()
	assert.Contains(t, body, `name="ids" value="`+itoa(budget.ID)+`"`)
	assert.Contains(t, body, `<select name="form-`+itoa(budget.ID)+`-category_id">`)
	assert.Contains(t, body, `name="form-`+itoa(budget.ID)+`-is_published" value="true" checked`)
	assert.NotContains(t, body, `name="form-`+itoa(final.ID)+`-is_published" value="true" checked`)

	// an unknown category rejects the whole submission
	form := url.Values{"ids": {itoa(budget.ID), itoa(final.ID)}}
	form.Set(inlineField(budget.ID, "category_id"), itoa(sports.ID))
	form.Set(inlineField(final.ID, "category_id"), "9999")
	w = app.post("/admin/news/", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	got, err := app.repos.News.GetByID(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, politics.ID, got.CategoryID)
	assert.True(t, got.IsPublished)

	// unchecked boxes are absent from the form and mean false
	form = url.Values{"ids": {itoa(budget.ID), itoa(final.ID)}}
	form.Set(inlineField(budget.ID, "category_id"), itoa(sports.ID))
	form.Set(inlineField(final.ID, "category_id"), itoa(politics.ID))
	form.Set(inlineField(final.ID, "is_published"), "true")
	w = app.post("/admin/news/", form)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/admin/news/", w.Header().Get("Location"))

	got, err = app.repos.News.GetByID(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, sports.ID, got.CategoryID)
	assert.False(t, got.IsPublished)

	got, err = app.repos.News.GetByID(ctx, final.ID)
	require.NoError(t, err)
	assert.Equal(t, politics.ID, got.CategoryID)
	assert.True(t, got.IsPublished)

	assert.Contains(t, app.get("/admin/news/").Body.String(), "2 news were changed successfully.")
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	app.get("/")
	w = app.get("/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `newsroom_http_requests_total{method="GET",route="/",status="200"} 1`)

	w = app.get("/static/css/style.css")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.get("/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found.")
}

func TestSEOEndpoints(t *testing.T) {
	app := newTestApp(t)
	politics := app.category("Politics")
	app.category("Empty")
	visible := app.news("Visible story", politics, true)
	hidden := app.news("Hidden draft", politics, false)

	w := app.get("/robots.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Disallow: /admin/")
	assert.Contains(t, w.Body.String(), "Sitemap: http://newsroom.test/sitemap.xml")

	w = app.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<loc>http://newsroom.test/</loc>")
	assert.Contains(t, body, "<loc>http://newsroom.test"+politics.URL()+"</loc>")
	assert.Contains(t, body, "<loc>http://newsroom.test"+visible.URL()+"</loc>")
	assert.NotContains(t, body, "<loc>http://newsroom.test"+hidden.URL()+"</loc>")
	assert.Equal(t, 3, strings.Count(body, "<url>"))

	w = app.get("/feed.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")

	feed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "Newsroom", feed.Title)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Visible story", feed.Items[0].Title)
	assert.Equal(t, "http://newsroom.test"+visible.URL(), feed.Items[0].Link)
	assert.Equal(t, []string{"Politics"}, feed.Items[0].Categories)
	assert.Equal(t, "Body of Visible story", feed.Items[0].Description)
}

func inlineField(id uint, field string) string {
	return "form-" + itoa(id) + "-" + field
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
