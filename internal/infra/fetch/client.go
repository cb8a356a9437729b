package fetch

import (
	"net"
	"net/http"
	"time"
)

type ClientConfig struct {
	// Total timeout for a download. A context deadline can still shorten it.
	Timeout time.Duration

	DialTimeout    time.Duration
	KeepAlive      time.Duration
	TLSHandshake   time.Duration
	ResponseHeader time.Duration
	IdleConn       time.Duration

	MaxIdleConnsPerHost int
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:             60 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      15 * time.Second,
		IdleConn:            90 * time.Second,
		MaxIdleConnsPerHost: 4,
	}
}

func NewClient(cfg ClientConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConn,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
