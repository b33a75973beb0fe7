package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	kashiapp "github.com/alexanderramin/kashimitra/internal/app"
	"github.com/alexanderramin/kashimitra/internal/contract"
	"github.com/alexanderramin/kashimitra/internal/credential"
	"github.com/alexanderramin/kashimitra/internal/domain"
	"github.com/alexanderramin/kashimitra/internal/intelligence"
	"github.com/alexanderramin/kashimitra/internal/llm"
	"github.com/alexanderramin/kashimitra/internal/logging"
	"github.com/alexanderramin/kashimitra/internal/repository"
	"github.com/alexanderramin/kashimitra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App against an in-memory DB, a zero-delay simulated
// responder and a remote responder pointed at endpoint.
func testApp(t *testing.T, endpoint string) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	store := credential.NewKVStore(repository.NewSQLiteKVRepo(db))

	cfg := llm.DefaultConfig()
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	resolver := intelligence.NewResolver(
		store,
		intelligence.NewSimulated(0),
		intelligence.NewRemote(llm.NewGeminiClient(cfg, llm.NoopObserver{})),
		logging.Discard(),
	)

	app := NewApp(resolver, store)
	app.Width = 80
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func geminiServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("key") == "" {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error": {"code": 403, "message": "missing key", "status": "PERMISSION_DENIED"}}`))
				return
			}
			w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "` + text + `"}]}}]}`))
		}))
	}()
	t.Cleanup(srv.Close)
	return srv
}

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	app := testApp(t, "")

	out, err := executeCmd(t, app)

	require.NoError(t, err)
	assert.Contains(t, out, "kashimitra")
	for _, sub := range []string{"chat", "ask", "plan", "key"} {
		assert.Contains(t, out, sub)
	}
}

func TestAskCmd_Simulated(t *testing.T) {
	app := testApp(t, "")

	out, err := executeCmd(t, app, "ask", "where", "should", "I", "eat?")

	require.NoError(t, err)
	assert.Contains(t, out, "Kachori Sabzi")
	assert.NotContains(t, out, "<strong>")

	tr := app.Conversation.Transcript()
	require.Len(t, tr, 3)
	assert.Equal(t, "where should I eat?", tr[1].Content)
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	app := testApp(t, "")
	_, err := executeCmd(t, app, "ask")
	assert.Error(t, err)
}

func TestAskCmd_LiveAfterKeySet(t *testing.T) {
	srv := geminiServer(t, "The river answers softly.")
	app := testApp(t, srv.URL)

	_, err := executeCmd(t, app, "key", "set", "AIzaSyTestKey123")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "ask", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "The river answers softly.")

	_, err = executeCmd(t, app, "key", "clear")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "ask", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Namaste! I am Kashi Mitra.")
}

func TestKeyCmd_Status(t *testing.T) {
	app := testApp(t, "")

	out, err := executeCmd(t, app, "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulated mode")

	_, err = executeCmd(t, app, "key", "set", "AIzaSyTestKey123")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "key", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Live mode")
	assert.Contains(t, out, "AIza********y123")
	assert.NotContains(t, out, "AIzaSyTestKey123")
}

func TestKeyCmd_SetFromStdin(t *testing.T) {
	app := testApp(t, "")
	root := NewRootCmd(app)
	root.SetOut(new(bytes.Buffer))
	root.SetIn(strings.NewReader("piped-key-value\n"))
	root.SetArgs([]string{"key", "set"})

	require.NoError(t, root.Execute())

	cred, ok, err := app.Credentials.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, credential.Credential("piped-key-value"), cred)
}

func TestKeyCmd_SetInteractiveUsesHiddenPrompt(t *testing.T) {
	app := testApp(t, "")
	app.IsInteractive = func() bool { return true }
	var prompted string
	app.ReadSecret = func(prompt string) (string, error) {
		prompted = prompt
		return "  secret-from-prompt  ", nil
	}

	_, err := executeCmd(t, app, "key", "set")
	require.NoError(t, err)

	assert.Equal(t, "Gemini API key: ", prompted)
	cred, _, _ := app.Credentials.Get(context.Background())
	assert.Equal(t, credential.Credential("secret-from-prompt"), cred)
}

func TestKeyCmd_SetEmptyRejected(t *testing.T) {
	app := testApp(t, "")

	_, err := executeCmd(t, app, "key", "set", "   ")

	require.Error(t, err)
	_, ok, _ := app.Credentials.Get(context.Background())
	assert.False(t, ok)
}

func TestPlanCmd_MissingFieldsNonInteractive(t *testing.T) {
	app := testApp(t, "")

	out, err := executeCmd(t, app, "plan", "--days", "3")

	var verr *contract.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, out, "Please fill in Days and Budget.")
	assert.Equal(t, kashiapp.PlannerInvalid, app.Planner.Snapshot().State)
}

func TestPlanCmd_Simulated(t *testing.T) {
	app := testApp(t, "")

	out, err := executeCmd(t, app, "plan", "--days", "3", "--budget", "5000", "--interests", "temples")

	require.NoError(t, err)
	assert.Contains(t, out, "YOUR ITINERARY")
	assert.Contains(t, out, "Day 1: The Divine Beginning")
	assert.Equal(t, kashiapp.PlannerReady, app.Planner.Snapshot().State)
}

func TestPlanCmd_Copy(t *testing.T) {
	app := testApp(t, "")
	var copied string
	app.CopyToClipboard = func(text string) error {
		copied = text
		return nil
	}

	out, err := executeCmd(t, app, "plan", "--days", "2", "--budget", "1000", "--copy")

	require.NoError(t, err)
	assert.Equal(t, intelligence.SamplePlan, copied)
	assert.Contains(t, out, "Copied to clipboard.")
}

// countingGenerator counts calls and answers in simulated mode.
type countingGenerator struct{ calls int }

func (g *countingGenerator) Generate(_ context.Context, prompt string, mode domain.RequestMode) (string, error) {
	g.calls++
	return intelligence.Simulate(prompt, mode), nil
}

func TestPlanCmd_ResolverCallCount(t *testing.T) {
	gen := &countingGenerator{}
	app := NewApp(gen, credential.NewMemoryStore())
	app.Width = 80

	_, err := executeCmd(t, app, "plan", "--budget", "5000")
	require.Error(t, err)
	assert.Equal(t, 0, gen.calls)

	_, err = executeCmd(t, app, "plan", "--days", "1", "--budget", "5000")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
}
