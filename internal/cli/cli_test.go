package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/cli"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/credentials"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/report"
	"github.com/zalando/go-keyring"
	"go.uber.org/goleak"
)

// -----------------------------------------------------------------------------
// Mocks & Helpers
// -----------------------------------------------------------------------------

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

const contactsVCF = `BEGIN:VCARD
VERSION:4.0
FN:Zoe
BDAY:1982-01-10
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Adam
BDAY:19900615
END:VCARD`

// testOptions isolates the command from the user's files and keyring.
func testOptions(t *testing.T, stdin string) (cli.Options, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	keyring.MockInit()

	out := new(bytes.Buffer)
	return cli.Options{
		Stdin:       strings.NewReader(stdin),
		Stdout:      out,
		Stderr:      io.Discard,
		LogWriter:   io.Discard,
		Clock:       MockClock{CurrentTime: time.Date(2025, 8, 17, 12, 0, 0, 0, time.UTC)},
		Fetcher:     new(MockFetcher),
		Credentials: credentials.New(),
	}, out
}

func execute(ctx context.Context, opts cli.Options, args ...string) error {
	root := cli.NewRootCommand(opts)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "numerology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// -----------------------------------------------------------------------------
// chart
// -----------------------------------------------------------------------------

func TestChart_JSON(t *testing.T) {
	opts, out := testOptions(t, "")

	err := execute(context.Background(), opts, "chart", "--birth", "10.01.1982", "--ref", "17.08.2025", "-o", "json")
	require.NoError(t, err)

	var got numerology.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 6, got.LifePath)
	assert.Equal(t, 101, got.Ruling)
}

func TestChart_DefaultReferenceIsToday(t *testing.T) {
	opts, out := testOptions(t, "")

	require.NoError(t, execute(context.Background(), opts, "chart", "--birth", "10.01.1982", "--output", "yaml"))
	assert.Contains(t, out.String(), "reference_date: 17.08.2025")
}

func TestChart_Table(t *testing.T) {
	opts, out := testOptions(t, "")

	require.NoError(t, execute(context.Background(), opts, "chart", "--birth", "10.01.1982"))
	assert.Contains(t, out.String(), "Life path: ")
	assert.Contains(t, out.String(), "Planetary square")
}

func TestChart_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"English", []string{"chart", "--birth", "1982-01-10"}, "Please enter the date as DD.MM.YYYY."},
		{"French", []string{"chart", "--birth", "10/01/1982", "--lang", "fr"}, "Veuillez saisir la date au format JJ.MM.AAAA."},
		{"BadReference", []string{"chart", "--birth", "10.01.1982", "--ref", "2025"}, "Please enter the date as DD.MM.YYYY."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, out := testOptions(t, "")

			err := execute(context.Background(), opts, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, errors.Is(err, numerology.ErrInvalidDateFormat))
			assert.Empty(t, out.String())
		})
	}
}

func TestChart_BirthRequired(t *testing.T) {
	opts, _ := testOptions(t, "")

	err := execute(context.Background(), opts, "chart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.FlagBirth)
}

// -----------------------------------------------------------------------------
// week
// -----------------------------------------------------------------------------

func TestWeek_JSON(t *testing.T) {
	opts, out := testOptions(t, "")

	require.NoError(t, execute(context.Background(), opts, "week", "--date", "20.08.2025", "-o", "json"))

	var got report.WeekView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Days, 7)
	assert.Equal(t, numerology.CalendarDate{Day: 17, Month: 8, Year: 2025}, got.Days[0].Date)
	assert.Equal(t, numerology.CalendarDate{Day: 23, Month: 8, Year: 2025}, got.Days[6].Date)

	ratings := make([]int, len(got.Days))
	for i, d := range got.Days {
		ratings[i] = d.Favorability
	}
	assert.Equal(t, []int{9, 10, 3, 5, 7, 9, 10}, ratings)
}

func TestWeek_DefaultsToClockAndLanguage(t *testing.T) {
	opts, out := testOptions(t, "")

	require.NoError(t, execute(context.Background(), opts, "week", "--lang", "fr"))
	assert.Contains(t, out.String(), "17.08.2025")
	assert.Contains(t, out.String(), "Soleil")
}

func TestWeek_InvalidDate(t *testing.T) {
	opts, _ := testOptions(t, "")

	err := execute(context.Background(), opts, "week", "--date", "2025-08-20")
	assert.ErrorIs(t, err, numerology.ErrInvalidDateFormat)
}

// -----------------------------------------------------------------------------
// contacts
// -----------------------------------------------------------------------------

func TestContacts_LocalSource(t *testing.T) {
	opts, out := testOptions(t, "")

	vcf := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(vcf, []byte(contactsVCF), 0o600))
	cfg := writeConfig(t, fmt.Sprintf("source:\n  mode: local\n  local_path: %s\nworkers: 2\n", vcf))

	require.NoError(t, execute(context.Background(), opts, "contacts", "--config", cfg, "-o", "json"))

	var got []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Adam", got[0].Name)
	assert.Equal(t, "Zoe", got[1].Name)
}

func TestContacts_WebSourceUsesKeyring(t *testing.T) {
	opts, out := testOptions(t, "")
	require.NoError(t, opts.Credentials.Set("ada", "secret"))

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/card", "ada", "secret").
		Return(io.NopCloser(strings.NewReader(contactsVCF)), nil)
	opts.Fetcher = fetcher

	cfg := writeConfig(t, "source:\n  mode: web\n  web_url: https://dav.example.com/card\n  web_user: ada\n")

	require.NoError(t, execute(context.Background(), opts, "contacts", "--config", cfg))
	assert.Contains(t, out.String(), "Adam")
	fetcher.AssertExpectations(t)
}

func TestContacts_NoSource(t *testing.T) {
	opts, _ := testOptions(t, "")

	err := execute(context.Background(), opts, "contacts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrNoSource)
}

// -----------------------------------------------------------------------------
// credentials
// -----------------------------------------------------------------------------

func TestCredentials_SetAndDelete(t *testing.T) {
	opts, out := testOptions(t, "secret\n")

	require.NoError(t, execute(context.Background(), opts, "credentials", "set", "--user", "ada"))
	assert.Equal(t, fmt.Sprintf(config.MsgPasswordSaved, "ada"), out.String())

	pwd, err := opts.Credentials.Get("ada")
	require.NoError(t, err)
	assert.Equal(t, "secret", pwd)

	out.Reset()
	require.NoError(t, execute(context.Background(), opts, "credentials", "delete", "--user", "ada"))
	assert.Equal(t, fmt.Sprintf(config.MsgPasswordGone, "ada"), out.String())

	err = execute(context.Background(), opts, "credentials", "delete", "--user", "ada")
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestCredentials_Errors(t *testing.T) {
	opts, _ := testOptions(t, "")

	err := execute(context.Background(), opts, "credentials", "set")
	assert.EqualError(t, err, config.ErrUserRequired)

	err = execute(context.Background(), opts, "credentials", "set", "--user", "ada")
	assert.EqualError(t, err, config.ErrPasswordEmpty)
}

func TestCredentials_UserFromConfig(t *testing.T) {
	opts, out := testOptions(t, "hunter2")
	cfg := writeConfig(t, "source:\n  mode: web\n  web_url: https://dav.example.com\n  web_user: grace\n")

	require.NoError(t, execute(context.Background(), opts, "credentials", "set", "--config", cfg))
	assert.Contains(t, out.String(), "grace")
	assert.Equal(t, "hunter2", opts.Credentials.Lookup("grace"))
}

// -----------------------------------------------------------------------------
// version, gui, settings
// -----------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	opts, out := testOptions(t, "")

	require.NoError(t, execute(context.Background(), opts, "version"))
	for _, field := range []string{"commit:", "built:", "go version:", "platform:"} {
		assert.Contains(t, out.String(), field)
	}

	out.Reset()
	require.NoError(t, execute(context.Background(), opts, "version", "--short"))
	assert.Equal(t, config.Version+"\n", out.String())

	out.Reset()
	require.NoError(t, execute(context.Background(), opts, "version", "--json"))
	var info map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, config.Version, info["version"])
	assert.NotEmpty(t, info["goVersion"])
}

func TestGUI(t *testing.T) {
	opts, _ := testOptions(t, "")

	err := execute(context.Background(), opts, "gui")
	assert.EqualError(t, err, config.ErrGUIMissing)

	var lang string
	opts.GUI = func(_ context.Context, a *cli.App) error {
		lang = a.Translator.Language()
		return nil
	}
	require.NoError(t, execute(context.Background(), opts, "gui", "--lang", "fr"))
	assert.Equal(t, "fr", lang)
}

func TestSettings_Rejected(t *testing.T) {
	opts, _ := testOptions(t, "")

	err := execute(context.Background(), opts, "week", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrOutputFormat)

	t.Setenv("NUMEROLOGY_WORKERS", "0")
	err = execute(context.Background(), opts, "week")
	assert.EqualError(t, err, config.ErrWorkers)
}

func TestExecute_ExitCodes(t *testing.T) {
	opts, out := testOptions(t, "")
	stderr := new(bytes.Buffer)
	opts.Stderr = stderr

	assert.Equal(t, config.ExitCodeSuccess, cli.Execute(context.Background(), []string{"version", "--short"}, opts))
	assert.Equal(t, config.Version+"\n", out.String())

	assert.Equal(t, config.ExitCodeError, cli.Execute(context.Background(), []string{"chart", "--birth", "x"}, opts))
	assert.Equal(t, "Error: Please enter the date as DD.MM.YYYY.\n", stderr.String())
}

// -----------------------------------------------------------------------------
// serve
// -----------------------------------------------------------------------------

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", config.LocalhostBindAddr+":0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()
	return fmt.Sprint(l.Addr().(*net.TCPAddr).Port)
}

func TestServe_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	opts, _ := testOptions(t, "")
	vcf := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(vcf, []byte(contactsVCF), 0o600))
	cfg := writeConfig(t, fmt.Sprintf("source:\n  mode: local\n  local_path: %s\n", vcf))

	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- execute(ctx, opts, "serve", "--port", port, "--config", cfg)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	url := "http://" + config.LocalhostBindAddr + ":" + port

	// The worker syncs once at startup, so both caches fill without a tick.
	require.Eventually(t, func() bool {
		for _, route := range []string{config.RouteCalendar, "/api/contacts"} {
			resp, err := client.Get(url + route)
			if err != nil {
				return false
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return false
			}
		}
		return true
	}, 3*time.Second, 50*time.Millisecond, "serve did not publish the feed and contacts")

	resp, err := client.Get(url + config.RouteCalendar)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "DTSTART;VALUE=DATE:20250817")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_BadPort(t *testing.T) {
	opts, _ := testOptions(t, "")

	err := execute(context.Background(), opts, "serve", "--port", "99999")
	assert.EqualError(t, err, config.ErrPortRange)
}
