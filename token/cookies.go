package token

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"
)

// CookieClearer drops the web session cookies left behind by a login.
type CookieClearer interface {
	ClearSessionCookies(ctx context.Context) error
}

const (
	loggedInCookie = "logged_in"
	sessionCookie  = "session"
)

// expiredAt is "Thu, 01 Jan 1970 00:00:01 GMT".
var expiredAt = time.Unix(1, 0).UTC()

// JarCookieClearer overwrites the Uber session cookies in a cookie jar with
// already expired copies, which makes the jar drop them.
type JarCookieClearer struct {
	jar    http.CookieJar
	domain string
}

// NewJar returns a cookie jar backed by the public suffix list.
func NewJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// NewJarCookieClearer clears cookies for domain, e.g. "uber.com".
func NewJarCookieClearer(jar http.CookieJar, domain string) *JarCookieClearer {
	if domain == "" {
		domain = "uber.com"
	}
	return &JarCookieClearer{jar: jar, domain: domain}
}

// Jar exposes the underlying jar so an HTTP client can share it.
func (c *JarCookieClearer) Jar() http.CookieJar {
	return c.jar
}

func (c *JarCookieClearer) ClearSessionCookies(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.expire("https://"+c.domain, "."+c.domain, loggedInCookie)
	c.expire("https://login."+c.domain, ".login."+c.domain, sessionCookie)
	return nil
}

func (c *JarCookieClearer) expire(rawURL, domain, name string) {
	u, _ := url.Parse(rawURL)
	c.jar.SetCookies(u, []*http.Cookie{{
		Name:    name,
		Value:   "",
		Domain:  domain,
		Path:    "/",
		Expires: expiredAt,
	}})
}
