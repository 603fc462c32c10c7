package jira

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// newHTTPTransport returns a tuned Transport with optional TLS skipping.
func newHTTPTransport(skipVerify bool) *http.Transport {
	// use sane pooling so pagination isn't penalized
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipVerify, // NOTE: intended for dev only
		},

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// newHTTPClient builds an http.Client with transport + request timeout.
func newHTTPClient(skipVerify bool) *http.Client {
	return &http.Client{
		Timeout:   15 * time.Second, // hard per-request cap
		Transport: newHTTPTransport(skipVerify),
	}
}
