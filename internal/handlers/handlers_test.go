package handlers_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KUBYKA-DEV/content-scrape/internal/api"
	"github.com/KUBYKA-DEV/content-scrape/internal/automation"
	"github.com/KUBYKA-DEV/content-scrape/internal/config"
	"github.com/KUBYKA-DEV/content-scrape/internal/handlers"
	"github.com/KUBYKA-DEV/content-scrape/internal/hookgen"
	"github.com/KUBYKA-DEV/content-scrape/internal/httpclient"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
	"github.com/KUBYKA-DEV/content-scrape/internal/notify"
	"github.com/KUBYKA-DEV/content-scrape/internal/session"
	"github.com/KUBYKA-DEV/content-scrape/internal/sse"
	"github.com/KUBYKA-DEV/content-scrape/internal/store"
)

// mockLLM returns a canned completion or error.
type mockLLM struct {
	output string
	err    error
}

func (m *mockLLM) Complete(context.Context, string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

// testApp wires a full router against an in-memory backend, a stubbed
// automation endpoint, and a mock model.
type testApp struct {
	router  *gin.Engine
	repo    *store.Repository
	session *session.Controller
	toasts  *notify.Center
	broker  *sse.Broker
}

func newTestApp(t *testing.T, scrapeURL string, llm hookgen.LLMClient) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()

	broker := sse.NewBroker(log)
	broker.Start(context.Background())
	t.Cleanup(broker.Stop)

	toasts := notify.NewCenter(time.Minute, broker, log)
	t.Cleanup(toasts.Close)

	repo := store.NewRepository()
	sess := session.NewController()

	scrapeCfg := config.ScrapeConfig{
		Endpoint:    scrapeURL,
		Workflow:    "Test Workflow",
		BearerToken: "test-token",
		Timeout:     2 * time.Second,
	}
	scrapeClient := automation.NewClient(scrapeCfg, httpclient.New(scrapeCfg.Timeout), log)
	generator := hookgen.NewGenerator(llm, 3, log)

	router := gin.New()
	api.SetupRoutes(router, &api.Handlers{
		Content: handlers.NewContentHandler(repo, toasts, log),
		Scrape:  handlers.NewScrapeHandler(scrapeClient, repo, sess, toasts, broker, log),
		Hooks:   handlers.NewHooksHandler(generator, repo, sess, toasts, log),
		Toasts:  handlers.NewToastsHandler(toasts, log),
		Session: handlers.NewSessionHandler(sess, scrapeCfg, broker, log),
		Events:  handlers.NewEventsHandler(broker, log),
	})

	return &testApp{
		router:  router,
		repo:    repo,
		session: sess,
		toasts:  toasts,
		broker:  broker,
	}
}

func (a *testApp) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) toastMessages() []string {
	active := a.toasts.Active()
	out := make([]string, len(active))
	for i, toast := range active {
		out[i] = toast.Message
	}
	return out
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func scrapeStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestContentList(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{output: `[]`})

	w := app.request(t, http.MethodGet, "/api/v1/content", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeJSON(t, w)["count"])

	// Text search narrows the view.
	w = app.request(t, http.MethodGet, "/api/v1/content?q=mrr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeJSON(t, w)["count"])

	// Source filter.
	w = app.request(t, http.MethodGet, "/api/v1/content?source=newsletter", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeJSON(t, w)["count"])

	// Saved view starts empty.
	w = app.request(t, http.MethodGet, "/api/v1/content?view=saved", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeJSON(t, w)["count"])
}

func TestContentList_InvalidSource(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodGet, "/api/v1/content?source=rss", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleSave(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPost, "/api/v1/content/1/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeJSON(t, w)["is_saved"])
	assert.Contains(t, app.toastMessages(), "Guardado en librería")

	w = app.request(t, http.MethodPost, "/api/v1/content/1/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, app.toastMessages(), "Eliminado de guardados")
}

func TestToggleSave_UnknownID_NoToast(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPost, "/api/v1/content/nope/save", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, app.toasts.Active())
}

func TestScrape_Success(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{"result":{"content":[{"text":"5 hilos nuevos"}]}}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	require.NoError(t, app.session.SetActiveView(session.ViewSaved))

	w := app.request(t, http.MethodPost, "/api/v1/scrape", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// New item lands at the head of the collection.
	assert.Equal(t, 3, app.repo.Len())
	assert.Equal(t, "5 hilos nuevos", app.repo.Items()[0].Content)

	// View snaps back to the feed.
	assert.Equal(t, session.ViewFeed, app.session.ActiveView())

	messages := app.toastMessages()
	assert.Contains(t, messages, "Conectando con n8n MCP: Test Workflow...")
	assert.Contains(t, messages, "Scraping finalizado con éxito")

	// The in-flight flag is released.
	assert.True(t, app.session.BeginScrape())
}

func TestScrape_Failure_CollectionUntouched(t *testing.T) {
	srv := scrapeStub(t, http.StatusInternalServerError, "boom")
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPost, "/api/v1/scrape", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 2, app.repo.Len())

	found := false
	for _, msg := range app.toastMessages() {
		if strings.HasPrefix(msg, "Fallo en Scrape: Error HTTP 500") {
			found = true
		}
	}
	assert.True(t, found, "expected scrape failure toast")
	assert.True(t, app.session.BeginScrape())
}

func TestScrape_AuthFailure_SpanishToast(t *testing.T) {
	srv := scrapeStub(t, http.StatusUnauthorized, "")
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPost, "/api/v1/scrape", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, app.toastMessages(), "Fallo en Scrape: Error de Autenticación. Revisa el Token Bearer.")
}

func TestScrape_Conflict(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	require.True(t, app.session.BeginScrape())
	defer app.session.EndScrape()

	w := app.request(t, http.MethodPost, "/api/v1/scrape", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 2, app.repo.Len())
}

func TestHooksConfig(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodGet, "/api/v1/hooks/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "story", body["type"])
	assert.Equal(t, "professional", body["tone"])
	assert.Equal(t, "linkedin", body["platform"])

	w = app.request(t, http.MethodPut, "/api/v1/hooks/config", models.HookConfig{
		Type:     models.HookQuestion,
		Tone:     models.ToneCasual,
		Platform: models.PlatformTwitter,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.HookQuestion, app.session.HookConfig().Type)
}

func TestHooksConfig_Invalid(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPut, "/api/v1/hooks/config", map[string]string{
		"type":     "poem",
		"tone":     "professional",
		"platform": "linkedin",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "type", decodeJSON(t, w)["field"])
	assert.Equal(t, models.DefaultHookConfig(), app.session.HookConfig())
}

func TestHooksSelect(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPost, "/api/v1/hooks/select", map[string]string{"item_id": "1"})
	require.Equal(t, http.StatusOK, w.Code)

	selected, ok := app.session.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", selected.ID)
	assert.Equal(t, session.ViewHooks, app.session.ActiveView())
	assert.Contains(t, app.toastMessages(), "Contenido cargado en generador")
}

func TestHooksSelect_UnknownID(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPost, "/api/v1/hooks/select", map[string]string{"item_id": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHooksGenerate_Success(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{output: `["Hook uno", "Hook dos", "Hook tres"]`})

	app.request(t, http.MethodPost, "/api/v1/hooks/select", map[string]string{"item_id": "1"})

	w := app.request(t, http.MethodPost, "/api/v1/hooks/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["generated"])
	assert.Equal(t, []string{"Hook uno", "Hook dos", "Hook tres"}, app.session.Hooks())
	assert.Contains(t, app.toastMessages(), "Variaciones listas para usar")
}

func TestHooksGenerate_Failure_Fallback(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{err: errors.New("model unavailable")})

	app.request(t, http.MethodPost, "/api/v1/hooks/select", map[string]string{"item_id": "1"})

	w := app.request(t, http.MethodPost, "/api/v1/hooks/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, false, body["generated"])
	assert.Equal(t, []string{hookgen.FallbackMessage}, app.session.Hooks())
	assert.Contains(t, app.toastMessages(), "Error de IA: No se pudo generar los ganchos")
}

func TestHooksGenerate_NoSelection(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{output: `[]`})

	w := app.request(t, http.MethodPost, "/api/v1/hooks/generate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHooksGenerate_Conflict(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{output: `[]`})

	app.request(t, http.MethodPost, "/api/v1/hooks/select", map[string]string{"item_id": "1"})

	require.True(t, app.session.BeginGeneration())
	defer app.session.EndGeneration()

	w := app.request(t, http.MethodPost, "/api/v1/hooks/generate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestToasts_ListAndCreate(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodGet, "/api/v1/toasts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeJSON(t, w)["count"])

	w = app.request(t, http.MethodPost, "/api/v1/toasts", map[string]string{
		"message": "Copiado al portapapeles",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", decodeJSON(t, w)["kind"])

	w = app.request(t, http.MethodGet, "/api/v1/toasts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeJSON(t, w)["count"])
}

func TestToasts_Create_InvalidKind(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPost, "/api/v1/toasts", map[string]string{
		"message": "hola",
		"kind":    "warning",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSession_Get(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	state := body["state"].(map[string]any)
	assert.Equal(t, "feed", state["active_view"])

	settings := body["settings"].(map[string]any)
	assert.Equal(t, "Test Workflow", settings["workflow"])
	assert.Equal(t, true, settings["token_configured"])

	// The bearer token never appears in the response.
	assert.NotContains(t, w.Body.String(), "test-token")
}

func TestSession_SetView(t *testing.T) {
	srv := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, srv.URL, &mockLLM{})

	w := app.request(t, http.MethodPut, "/api/v1/session/view", map[string]string{"view": "settings"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.ViewSettings, app.session.ActiveView())

	w = app.request(t, http.MethodPut, "/api/v1/session/view", map[string]string{"view": "dashboard"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, session.ViewSettings, app.session.ActiveView())
}

func TestEvents_StreamsToasts(t *testing.T) {
	stub := scrapeStub(t, http.StatusOK, `{}`)
	app := newTestApp(t, stub.URL, &mockLLM{})

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", http.NoBody)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	// Wait for the subscriber to register before emitting.
	require.Eventually(t, func() bool {
		return app.broker.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	app.toasts.Notify("evento de prueba", models.ToastSuccess)

	scanner := bufio.NewScanner(resp.Body)
	var sawConnected, sawToast bool
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "connected") {
			sawConnected = true
		}
		if strings.Contains(line, sse.EventTypeToastShown) {
			sawToast = true
			break
		}
	}

	assert.True(t, sawConnected)
	assert.True(t, sawToast)
}
