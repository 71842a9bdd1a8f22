package client

import (
	"bytes"
	"context"
	"net/http"
)

type Host struct {
	options Options
}

func NewHost(options Options) *Host {
	return &Host{
		options: options,
	}
}

type HostStatus struct {
	Version     string `json:"version"`
	Program     string `json:"program"`
	Programs    int    `json:"programs"`
	Invocations uint64 `json:"invocations"`
	Failures    uint64 `json:"failures"`
}

func (a *Host) Status(ctx context.Context) (*HostStatus, *Response, error) {
	url, err := joinUrl(a.options.BaseUrl, "/host/status")
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest("GET", url.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	out := new(HostStatus)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}
	return out, response, nil
}

// Health reports the host's heartbeat, "OK" when the API is serving.
func (a *Host) Health(ctx context.Context) (string, *Response, error) {
	url, err := joinUrl(a.options.BaseUrl, "/host/healthz")
	if err != nil {
		return "", nil, err
	}
	req, err := http.NewRequest("GET", url.String(), nil)
	if err != nil {
		return "", nil, err
	}

	out := new(bytes.Buffer)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return "", response, err
	}
	return out.String(), response, nil
}
