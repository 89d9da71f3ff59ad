package health

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Pinger is satisfied by any dependency exposing a Ping method, e.g. the
// item repositories and redis/postgres clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingProbe adapts a [Pinger] into a [Probe].
func PingProbe(p Pinger) Probe {
	return func(ctx context.Context) (bool, error) {
		if err := p.Ping(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
}

// HTTPProbe returns a [Probe] that issues a GET to url and treats any
// status below 500 as up. The caller owns the resty client and its
// timeout configuration.
func HTTPProbe(client *resty.Client, url string) Probe {
	return func(ctx context.Context) (bool, error) {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return false, err
		}
		return resp.StatusCode() < http.StatusInternalServerError, nil
	}
}
