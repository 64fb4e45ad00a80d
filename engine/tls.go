package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	tls "github.com/refraction-networking/utls"
)

// newTransport builds the transport behind the HTTP engine. With chromeTLS
// the https handshake presents a Chrome ClientHello, except through an http
// proxy: net/http then runs its own handshake inside the CONNECT tunnel and
// DialTLSContext is never called.
func newTransport(chromeTLS bool, proxy string) *http.Transport {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		ForceAttemptHTTP2:     false,
	}
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		switch {
		case err != nil:
			slog.Warn("ignoring unparsable proxy", "error", err)
		case proxyURL.Scheme != "http" && proxyURL.Scheme != "https":
			slog.Warn("ignoring unsupported proxy", "scheme", proxyURL.Scheme)
		default:
			transport.Proxy = http.ProxyURL(proxyURL)
			if chromeTLS {
				slog.Warn("chrome TLS fingerprint is not applied through an http proxy",
					"proxy", proxyURL.Redacted())
			}
		}
	}
	if chromeTLS {
		transport.DialTLSContext = dialTLSChrome
	}
	return transport
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint with
// ALPN locked to http/1.1: http.Transport cannot speak h2 over a utls conn.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	spec, err := chromeH1Spec()
	if err != nil {
		conn.Close()
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(&spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("engine: apply tls spec: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// chromeH1Spec returns a fresh Chrome ClientHello spec per connection;
// ApplyPreset mutates the extensions it is given.
func chromeH1Spec() (tls.ClientHelloSpec, error) {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return tls.ClientHelloSpec{}, fmt.Errorf("engine: chrome tls spec: %w", err)
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	return spec, nil
}
