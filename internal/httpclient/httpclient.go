package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/plugfox/foxy-fib/internal/config"
	"golang.org/x/net/proxy"
)

const defaultTimeout = time.Minute

// NewHTTPClient returns a client that dials through the configured SOCKS5 proxy,
// or a plain client when no proxy is set.
func NewHTTPClient(config *config.ProxyConfig) (*http.Client, error) {
	if config == nil || config.Address == "" || config.Port == 0 {
		return &http.Client{Timeout: defaultTimeout}, nil
	}

	addr := net.JoinHostPort(config.Address, strconv.Itoa(config.Port))

	var auth *proxy.Auth
	if config.Username != "" && config.Password != "" {
		auth = &proxy.Auth{User: config.Username, Password: config.Password}
	}

	dialer, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("cannot init socks5 proxy client dialer: %w", err)
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, address string) (net.Conn, error) {
			if contextDialer, ok := dialer.(proxy.ContextDialer); ok {
				return contextDialer.DialContext(ctx, network, address)
			}
			return dialer.Dial(network, address)
		},
	}

	return &http.Client{Transport: transport, Timeout: defaultTimeout}, nil
}
