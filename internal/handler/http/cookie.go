// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
)

// CookiePolicy derives the attributes of the session cookie from the
// configuration and the request it answers.
type CookiePolicy struct {
	name     string
	domain   string
	sameSite http.SameSite
	now      func() time.Time
}

// NewCookiePolicy builds a policy from cfg. An unknown SameSite value is an
// error; an empty one means lax.
func NewCookiePolicy(cfg config.Cookie) (*CookiePolicy, error) {
	p := &CookiePolicy{
		name:   cfg.Name,
		domain: cfg.Domain,
		now:    time.Now,
	}

	switch strings.ToLower(cfg.SameSite) {
	case config.SameSiteLax, "":
		p.sameSite = http.SameSiteLaxMode
	case config.SameSiteStrict:
		p.sameSite = http.SameSiteStrictMode
	case config.SameSiteNone:
		p.sameSite = http.SameSiteNoneMode
	default:
		return nil, fmt.Errorf("%w: unknown SameSite policy %q", config.ErrInvalidCookieConfigs, cfg.SameSite)
	}

	if p.name == "" {
		return nil, fmt.Errorf("%w: empty cookie name", config.ErrInvalidCookieConfigs)
	}

	return p, nil
}

// Name is the session cookie name.
func (p *CookiePolicy) Name() string {
	return p.name
}

// Options returns the attributes shared by every session cookie written in
// response to r:
//   - HttpOnly, Path "/";
//   - Secure when r arrived over TLS directly or through a proxy that set
//     X-Forwarded-Proto to https;
//   - SameSite from the configuration, except that None on an insecure
//     request degrades to Lax because browsers drop None without Secure;
//   - Domain when configured.
func (p *CookiePolicy) Options(r *http.Request) http.Cookie {
	secure := isSecureRequest(r)

	sameSite := p.sameSite
	if sameSite == http.SameSiteNoneMode && !secure {
		sameSite = http.SameSiteLaxMode
	}

	return http.Cookie{
		Name:     p.name,
		Path:     "/",
		Domain:   p.domain,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

// SessionCookie carries value for ttl.
func (p *CookiePolicy) SessionCookie(r *http.Request, value string, ttl time.Duration) *http.Cookie {
	c := p.Options(r)
	c.Value = value
	c.MaxAge = int(ttl / time.Second)
	c.Expires = p.now().Add(ttl).UTC()
	return &c
}

// ClearCookie expires the session cookie on the client.
func (p *CookiePolicy) ClearCookie(r *http.Request) *http.Cookie {
	c := p.Options(r)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0).UTC()
	return &c
}

func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	for _, header := range r.Header.Values("X-Forwarded-Proto") {
		for _, proto := range strings.Split(header, ",") {
			if strings.EqualFold(strings.TrimSpace(proto), "https") {
				return true
			}
		}
	}

	return false
}
