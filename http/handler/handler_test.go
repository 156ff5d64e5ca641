package handler_test

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fatih/color"
	"github.com/poorify/poorify"
	"github.com/poorify/poorify/auth"
	"github.com/poorify/poorify/http/handler"
	"github.com/poorify/poorify/http/middleware"
	"github.com/poorify/poorify/http/resp"
	"github.com/poorify/poorify/http/router"
	"github.com/poorify/poorify/http/session"
	"github.com/poorify/poorify/logger"
	"github.com/poorify/poorify/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testAuthKey = "0123456789abcdef0123456789abcdef"

var ada = poorify.User{ID: "108", Name: "Ada", Email: "ada@example.com"}

type harness struct {
	client *http.Client
	reg    *prometheus.Registry
	srv    *httptest.Server
	stub   *auth.Stub
}

// newHarness serves the Handler behind a cookie session store and the stub Authenticator.
func newHarness(t *testing.T) *harness {
	t.Helper()
	color.NoColor = true

	var h http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { h.ServeHTTP(w, r) }))
	t.Cleanup(srv.Close)

	l := logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
	store, err := session.NewStoreService(session.Config{Env: poorify.Testing, SessionName: "poorify", AuthKey: testAuthKey})
	require.Nil(t, err)

	stub := auth.NewStub(srv.URL + handler.CallbackPath)
	stub.User = ada

	signer, err := auth.NewStateSigner("state-key", 0)
	require.Nil(t, err)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	d := resp.NewResponder(resp.WithLogger(l), resp.WithRootUrl(srv.URL))
	hd, err := handler.New(d, &stub, signer, handler.WithLogger(l), handler.WithRecorder(collector))
	require.Nil(t, err)

	rt := router.New(poorify.Testing, nil)
	rt.OnEveryRequest(middleware.InjectSession(store), middleware.CurrentUser(l))
	rt.HandleRoutes(hd.AuthRoutes())
	rt.HandleRoutes(hd.Routes())
	rt.HandleNotFound(hd.NotFound)
	h = rt

	jar, err := cookiejar.New(nil)
	require.Nil(t, err)

	return &harness{
		client: &http.Client{Jar: jar},
		reg:    reg,
		srv:    srv,
		stub:   &stub,
	}
}

func (hn *harness) get(t *testing.T, path string) (int, string) {
	t.Helper()

	res, err := hn.client.Get(hn.srv.URL + path)
	require.Nil(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.Nil(t, err)

	return res.StatusCode, string(b)
}

// logins counts the OAuth callbacks that ended in outcome.
func (hn *harness) logins(t *testing.T, outcome string) float64 {
	t.Helper()

	mfs, err := hn.reg.Gather()
	require.Nil(t, err)

	for _, mf := range mfs {
		if mf.GetName() != "poorify_logins_total" {
			continue
		}

		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" && lp.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}

func TestNew(t *testing.T) {
	signer, err := auth.NewStateSigner("key", 0)
	require.Nil(t, err)

	stub := auth.NewStub("http://example.com")
	d := resp.NewResponder()

	for _, tc := range []struct {
		name   string
		d      *resp.Responder
		authn  auth.Authenticator
		signer *auth.StateSigner
		err    error
	}{
		{"No-Responder", nil, stub, signer, handler.ErrBadConfig},
		{"No-Authenticator", d, nil, signer, handler.ErrBadConfig},
		{"No-Signer", d, stub, nil, handler.ErrBadConfig},
		{"Valid", d, stub, signer, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			h, err := handler.New(tc.d, tc.authn, tc.signer)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				require.NotNil(t, h)
			}
		})
	}
}

func TestLoginFlow(t *testing.T) {
	// Arrange
	hn := newHarness(t)

	// Act
	code, body := hn.get(t, handler.CurrentUserPath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "You are not logged in !", body)

	// Act
	code, body = hn.get(t, handler.BeginAuthPath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, " Login successful, welcome Ada ! ", body)

	// Act
	code, body = hn.get(t, handler.CurrentUserPath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, " Login successful, welcome Ada ! ", body)

	// Act
	code, body = hn.get(t, handler.HomePath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "HOME PAGE", body)

	// Act
	code, body = hn.get(t, handler.LogoutPath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "You have logged out successfully.", body)

	// Act
	code, body = hn.get(t, handler.CurrentUserPath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "You are not logged in !", body)

	// Act
	code, body = hn.get(t, handler.LogoutPath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "You have logged out successfully.", body)
	require.Equal(t, float64(1), hn.logins(t, metrics.LoginSuccess))
}

func TestLoginFlowRedirects(t *testing.T) {
	// Arrange
	hn := newHarness(t)
	hn.client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	// Act
	res, err := hn.client.Get(hn.srv.URL + handler.BeginAuthPath)
	require.Nil(t, err)
	res.Body.Close()

	// Assert
	require.Equal(t, http.StatusFound, res.StatusCode)
	dest, err := url.Parse(res.Header.Get("Location"))
	require.Nil(t, err)
	require.Equal(t, handler.CallbackPath, dest.Path)
	require.Equal(t, auth.StubCode, dest.Query().Get("code"))
	require.NotEmpty(t, dest.Query().Get("state"))

	// Act
	res, err = hn.client.Get(dest.String())
	require.Nil(t, err)
	res.Body.Close()

	// Assert
	require.Equal(t, http.StatusFound, res.StatusCode)
	require.Equal(t, handler.CurrentUserPath, res.Header.Get("Location"))

	// Act
	res, err = hn.client.Get(dest.String())
	require.Nil(t, err)
	res.Body.Close()

	// Assert
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Equal(t, float64(1), hn.logins(t, metrics.LoginInvalidState))
}

func TestCallbackFailures(t *testing.T) {
	for _, tc := range []struct {
		name     string
		query    func(state string) url.Values
		stubErr  error
		expected string
	}{
		{
			"No-State",
			func(string) url.Values { return url.Values{"code": {auth.StubCode}} },
			nil,
			metrics.LoginInvalidState,
		},
		{
			"Tampered-State",
			func(state string) url.Values { return url.Values{"code": {auth.StubCode}, "state": {state + "x"}} },
			nil,
			metrics.LoginInvalidState,
		},
		{
			"Bad-Code",
			func(state string) url.Values { return url.Values{"code": {"nope"}, "state": {state}} },
			nil,
			metrics.LoginExchangeFailed,
		},
		{
			"Authenticator-Error",
			func(state string) url.Values { return url.Values{"code": {auth.StubCode}, "state": {state}} },
			errors.New("provider unreachable"),
			metrics.LoginExchangeFailed,
		},
		{
			"Provider-Denied",
			func(state string) url.Values { return url.Values{"error": {"access_denied"}, "state": {state}} },
			nil,
			metrics.LoginExchangeFailed,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			hn := newHarness(t)
			hn.stub.Err = tc.stubErr
			hn.client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

			res, err := hn.client.Get(hn.srv.URL + handler.BeginAuthPath)
			require.Nil(t, err)
			res.Body.Close()

			dest, err := url.Parse(res.Header.Get("Location"))
			require.Nil(t, err)
			dest.RawQuery = tc.query(dest.Query().Get("state")).Encode()

			// Act
			code, body := hn.get(t, dest.RequestURI())

			// Assert
			require.Equal(t, http.StatusUnauthorized, code)
			require.Equal(t, "Unauthorized\n", body)
			require.Equal(t, float64(1), hn.logins(t, tc.expected))

			// Act
			code, body = hn.get(t, handler.CurrentUserPath)

			// Assert
			require.Equal(t, http.StatusOK, code)
			require.Equal(t, "You are not logged in !", body)
		})
	}
}

func TestCallbackWithoutBeginAuth(t *testing.T) {
	// Arrange
	hn := newHarness(t)

	// Act
	code, body := hn.get(t, handler.CallbackPath+"?code="+auth.StubCode+"&state=forged")

	// Assert
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Unauthorized\n", body)
}

func TestHi(t *testing.T) {
	// Arrange
	hn := newHarness(t)

	// Act
	code, body := hn.get(t, handler.HiPath)

	// Assert
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"hi":"there"}`, body)
}

func TestNotFound(t *testing.T) {
	// Arrange
	hn := newHarness(t)

	// Act
	code, _ := hn.get(t, "/api/missing")

	// Assert
	require.Equal(t, http.StatusNotFound, code)
}

func TestLogoutCounts(t *testing.T) {
	// Arrange
	hn := newHarness(t)

	// Act
	hn.get(t, handler.LogoutPath)
	hn.get(t, handler.LogoutPath)

	// Assert
	require.Contains(t, gathered(t, hn.reg), "poorify_logouts_total 2")
}

func gathered(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()

	w := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return w.Body.String()
}
