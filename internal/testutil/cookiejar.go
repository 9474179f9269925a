// Package testutil carries cookies across fiber app.Test calls.
package testutil

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"feedbackboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

const origin = "http://example.com"

// Client sends requests through app.Test and remembers cookies like a browser.
type Client struct {
	t   *testing.T
	app *fiber.App
	jar *cookiejar.Jar
}

// NewClient returns a Client with an empty cookie jar.
func NewClient(t *testing.T, app *fiber.App) *Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &Client{t: t, app: app, jar: jar}
}

// Get issues a GET request.
func (c *Client) Get(path string) *http.Response {
	return c.Do(httptest.NewRequest(http.MethodGet, origin+path, nil))
}

// PostForm issues a form-encoded POST request carrying the CSRF token the
// way the rendered forms do. A token is fetched first if the jar has none.
func (c *Client) PostForm(path string, values url.Values) *http.Response {
	if c.Cookie(middleware.CSRFCookie) == "" {
		c.Get("/")
	}
	form := url.Values{}
	for k, v := range values {
		form[k] = v
	}
	if form.Get(middleware.CSRFField) == "" {
		form.Set(middleware.CSRFField, c.Cookie(middleware.CSRFCookie))
	}
	return c.PostFormRaw(path, form)
}

// PostFormRaw issues a form-encoded POST request with exactly values.
func (c *Client) PostFormRaw(path string, values url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, origin+path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// Do sends req with the stored cookies and records the response cookies.
func (c *Client) Do(req *http.Request) *http.Response {
	c.t.Helper()
	if req.URL.Host == "" {
		req.URL.Scheme = "http"
		req.URL.Host = req.Host
	}
	for _, ck := range c.jar.Cookies(req.URL) {
		req.AddCookie(ck)
	}
	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("request %s %s failed: %v", req.Method, req.URL, err)
	}
	c.jar.SetCookies(req.URL, resp.Cookies())
	return resp
}

// Cookie returns the stored value of a cookie sent to every path.
func (c *Client) Cookie(name string) string {
	u, _ := url.Parse(origin + "/")
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// SetCookie stores a cookie for every path, as if the server had set it.
func (c *Client) SetCookie(name, value string) {
	u, _ := url.Parse(origin + "/")
	c.jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// Body reads and closes the response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(b)
}
