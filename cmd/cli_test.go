package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/adapters/huami"
	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplate = `%5B%7B%22date%22%3A%222021-08-07%22%2C%22data%22%3A%5B%5D%2C%22summary%22%3A%22%7B%5C%22stp%5C%22%3A%7B%5C%22ttl%5C%22%3A18272%2C%5C%22dis%5C%22%3A10627%7D%7D%22%7D%5D`

// 12:00 in UTC+8
var testNoon = time.Date(2026, time.February, 14, 4, 0, 0, 0, time.UTC)

var stepsInBody = regexp.MustCompile(`ttl%5C%22%3A(\d+)%2C%5C%22dis`)

type fakeService struct {
	mu      sync.Mutex
	uploads []*http.Request
	bodies  []string
	// identifiers whose access code request gets no redirect
	rejected map[string]bool
}

func TestSubmitWithPositionalPairs(t *testing.T) {
	home := t.TempDir()
	service := installFakeService(t, testNoon)

	stdout, _, err := executeCLI(t, home, "submit", "13800000000", "pw", "--template", writeTemplate(t, home))
	require.NoError(t, err)
	assert.Regexp(t, `^\[2026-02-14 12:00:00\] account: 138\*\*\*\*0000 steps: \d+ result: success`, strings.TrimSpace(stdout))

	require.Len(t, service.bodies, 1)
	body := service.bodies[0]
	assert.True(t, strings.HasPrefix(body, "userid=1000001&last_sync_data_time=1597306380&device_type=0&last_deviceid=DA932FFFFE8816E7&data_json="))
	assert.Contains(t, body, `date%22%3A%222026-02-14%22%2C%22data`)
	assert.Equal(t, "app-token-1", service.uploads[0].Header.Get("apptoken"))

	match := stepsInBody.FindStringSubmatch(body)
	require.Len(t, match, 2)
	assert.Contains(t, stdout, "steps: "+match[1]+" ")
	steps, err := strconv.Atoi(match[1])
	require.NoError(t, err)
	assert.True(t, domain.StepRange{Low: 28500, High: 31500}.Contains(steps))
}

func TestSubmitCountMismatchFailsBeforeAnyRequest(t *testing.T) {
	home := t.TempDir()
	installFakeService(t, testNoon)

	_, _, err := executeCLI(t, home, "submit", "13800000000#13800000001", "pw", "--template", writeTemplate(t, home))
	require.ErrorIs(t, err, domain.ErrAccountCountMismatch)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestSubmitEmptyRangeIsSuppressed(t *testing.T) {
	home := t.TempDir()
	installFakeService(t, time.Date(2026, time.February, 14, 0, 0, 30, 0, domain.ReferenceZone))

	stdout, _, err := executeCLI(t, home, "submit", "13800000000", "pw", "--template", writeTemplate(t, home))
	require.NoError(t, err)
	assert.Equal(t, "step range is empty, nothing submitted", strings.TrimSpace(stdout))
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestSubmitContinuesPastLoginFailure(t *testing.T) {
	home := t.TempDir()
	service := installFakeService(t, testNoon)
	service.rejected["+8613800000000"] = true

	stdout, _, err := executeCLI(t, home,
		"submit", "13800000000#user@example.com", "bad#good",
		"--template", writeTemplate(t, home),
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "138****0000 login failed", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "account: use****ample.com steps: ")
	assert.Contains(t, lines[1], "result: success")
	assert.Len(t, service.bodies, 1)
}

func TestSubmitJSONOutput(t *testing.T) {
	home := t.TempDir()
	installFakeService(t, testNoon)

	stdout, stderr, err := executeCLI(t, home, "submit", "13800000000", "pw", "--json", "--template", writeTemplate(t, home))
	require.NoError(t, err)
	assert.Empty(t, stderr)
	require.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"status": "submitted"`)
	assert.Contains(t, stdout, `"account": "138****0000"`)
	assert.NotContains(t, stdout, "13800000000")
}

func TestSubmitSummaryLine(t *testing.T) {
	home := t.TempDir()
	service := installFakeService(t, testNoon)
	service.rejected["+8613800000001"] = true

	stdout, _, err := executeCLI(t, home,
		"submit", "13800000000#13800000001", "pw#pw",
		"--summary", "--template", writeTemplate(t, home),
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "range 28500-31500, submitted 1/2", strings.TrimSpace(lines[2]))
}

func TestSubmitLocalTimeStamps(t *testing.T) {
	prevLocal := time.Local
	time.Local = time.UTC
	t.Cleanup(func() { time.Local = prevLocal })

	home := t.TempDir()
	installFakeService(t, testNoon)

	stdout, _, err := executeCLI(t, home, "submit", "13800000000", "pw", "--local-time", "--template", writeTemplate(t, home))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(stdout), "[2026-02-14 04:00:00] account: 138****0000"), stdout)
}

func TestSubmitReportsMissingTemplate(t *testing.T) {
	home := t.TempDir()
	installFakeService(t, testNoon)

	stdout, _, err := executeCLI(t, home, "submit", "13800000000", "pw", "--template", filepath.Join(home, "missing.txt"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "138****0000 failed:")
	assert.Contains(t, stdout, "missing.txt")
}

func TestSubmitWithoutAccountsFails(t *testing.T) {
	home := t.TempDir()
	installFakeService(t, testNoon)

	_, _, err := executeCLI(t, home, "submit")
	require.ErrorIs(t, err, errNoAccounts)
}

func TestSubmitRejectsSingleArgument(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "submit", "13800000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "received 1")
}

func TestAccountLifecycleAndStoredSubmit(t *testing.T) {
	home := t.TempDir()
	service := installFakeService(t, testNoon)

	stdout, _, err := executeCLI(t, home, "account", "add", "13800000000", "--password", "pw", "--name", "phone")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stored account 1 (138****0000)")

	stdout, _, err = executeCLIWithInput(t, home, "pw2\n", "account", "add", "user@example.com", "--password-stdin")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stored account 2")

	stdout, _, err = executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1\t138****0000\tphone")
	assert.Contains(t, stdout, "2\tuse****ample.com\t")
	assert.NotContains(t, stdout, "pw")

	accountsFile, err := os.ReadFile(filepath.Join(home, ".mfs", "accounts.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(accountsFile), "pw2")

	stdout, _, err = executeCLI(t, home, "submit", "--json", "--template", writeTemplate(t, home))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, `"status": "submitted"`))
	assert.Len(t, service.bodies, 2)

	_, _, err = executeCLI(t, home, "account", "remove", "1")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "138****0000")

	_, _, err = executeCLI(t, home, "account", "remove", "1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountAddRequiresPassword(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "account", "add", "13800000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}

func TestRangeCommand(t *testing.T) {
	installFakeService(t, testNoon)
	t.Setenv("MAX_DAILY_STEPS", "")
	t.Setenv("VARIATION_RATIO", "")

	stdout, _, err := executeCLI(t, t.TempDir(), "range")
	require.NoError(t, err)
	assert.Equal(t, "28500-31500\n", stdout)
}

func TestRangeHonorsEnvironmentOverrides(t *testing.T) {
	installFakeService(t, testNoon)
	t.Setenv("MAX_DAILY_STEPS", "1440")
	t.Setenv("VARIATION_RATIO", "0")

	stdout, _, err := executeCLI(t, t.TempDir(), "range", "--json")
	require.NoError(t, err)

	var out rangeOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, rangeOutput{MinuteOfDay: 720, Low: 720, High: 720}, out)
}

func TestRangeFallsBackOnGarbageEnvironment(t *testing.T) {
	installFakeService(t, testNoon)
	t.Setenv("MAX_DAILY_STEPS", "many")
	t.Setenv("VARIATION_RATIO", "-1")

	stdout, _, err := executeCLI(t, t.TempDir(), "range")
	require.NoError(t, err)
	assert.Equal(t, "28500-31500\n", stdout)
}

func TestScheduleNextActivations(t *testing.T) {
	installFakeService(t, testNoon)
	t.Setenv("MAX_DAILY_STEPS", "")
	t.Setenv("VARIATION_RATIO", "")

	stdout, _, err := executeCLI(t, t.TempDir(), "schedule", "--cron", "0 22 * * *", "--next", "2")
	require.NoError(t, err)
	assert.Equal(t,
		"2026-02-14T22:00:00+08:00\t52250-57750\n"+
			"2026-02-15T22:00:00+08:00\t52250-57750\n",
		stdout,
	)
}

func TestScheduleRequiresCron(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "schedule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "cron" not set`)
}

func TestScheduleRejectsInvalidCron(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "schedule", "--cron", "every day", "--next", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron expression")
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "range", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestDebugLogsCarryRunID(t *testing.T) {
	home := t.TempDir()
	installFakeService(t, testNoon)

	_, stderr, err := executeCLI(t, home, "submit", "13800000000", "pw", "--json", "--log-level", "debug", "--template", writeTemplate(t, home))
	require.NoError(t, err)
	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "submitting band data")
	assert.NotContains(t, stderr, "pw")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"limit\"")
}

// installFakeService routes every request of the resty client through httpmock
// and pins the clock.
func installFakeService(t *testing.T, now time.Time) *fakeService {
	t.Helper()

	client := huami.NewRESTClient(time.Second)
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	prevClient, prevNow := newRESTClient, nowFunc
	newRESTClient = func(time.Duration) *resty.Client { return client }
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() {
		newRESTClient, nowFunc = prevClient, prevNow
	})

	service := &fakeService{rejected: map[string]bool{}}

	httpmock.RegisterRegexpResponder(http.MethodPost, regexp.MustCompile(`^https://api-user\.huami\.com/registrations/([^/]+)/tokens$`),
		func(req *http.Request) (*http.Response, error) {
			identity := strings.TrimSuffix(strings.TrimPrefix(req.URL.Path, "/registrations/"), "/tokens")
			if service.rejected[identity] {
				return httpmock.NewStringResponse(http.StatusOK, "{}"), nil
			}
			resp := httpmock.NewStringResponse(http.StatusSeeOther, "")
			resp.Header.Set("Location", "https://s3-us-west-2.amazonaws.com/hm-registration/successsignin.html?region=us-west-2&access=access-1&country_code=CN&expiration=1")
			return resp, nil
		})

	httpmock.RegisterResponder(http.MethodPost, "https://account.huami.com/v2/client/login",
		httpmock.NewStringResponder(http.StatusOK, `{"token_info":{"login_token":"login-token-1","app_token":"ignored","user_id":1000001}}`))

	httpmock.RegisterRegexpResponder(http.MethodGet, regexp.MustCompile(`^https://account-cn\.huami\.com/v1/client/app_tokens`),
		httpmock.NewStringResponder(http.StatusOK, `{"token_info":{"app_token":"app-token-1"}}`))

	httpmock.RegisterRegexpResponder(http.MethodPost, regexp.MustCompile(`^https://api-mifit-cn\.huami\.com/v1/data/band_data\.json`),
		func(req *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			service.mu.Lock()
			service.uploads = append(service.uploads, req)
			service.bodies = append(service.bodies, string(body))
			service.mu.Unlock()
			return httpmock.NewStringResponse(http.StatusOK, `{"code":1,"message":"success","data":{}}`), nil
		})

	return service
}

func writeTemplate(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "upload_json.txt")
	require.NoError(t, os.WriteFile(path, []byte(testTemplate+"\n"), 0o600))
	return path
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("PASSWORD_STORE_DIR", filepath.Join(home, "password-store"))
	t.Setenv("MFS_TEMPLATE", "")
	t.Setenv("MFS_LOG_LEVEL", "")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
