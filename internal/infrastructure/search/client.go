package search

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ClientOptions configures the Elasticsearch transport. Zero values use the defaults below.
type ClientOptions struct {
	Addrs          []string
	Username       string
	Password       string
	HeaderTimeout  time.Duration
	MaxIdlePerHost int
}

// NewClient builds an Elasticsearch client with basic auth when credentials are set.
func NewClient(opts ClientOptions) (*elasticsearch.Client, error) {
	if opts.HeaderTimeout <= 0 {
		opts.HeaderTimeout = 5 * time.Second
	}
	if opts.MaxIdlePerHost <= 0 {
		opts.MaxIdlePerHost = 10
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: opts.Addrs,
		Username:  opts.Username,
		Password:  opts.Password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   opts.MaxIdlePerHost,
			ResponseHeaderTimeout: opts.HeaderTimeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}
