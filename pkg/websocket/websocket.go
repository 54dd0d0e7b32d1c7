package websocketPkg

import (
	"context"
	"fmt"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	jwtPkg "intentbot/pkg/jwt"
	"intentbot/pkg/logstream"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// ILogTail follows the live log of a running server.
type ILogTail interface {
	Stream(ctx context.Context, handle func(logstream.Entry)) error
}

type logTailClient struct {
	url          string
	token        string
	mu           sync.Mutex
	pingInterval time.Duration
	writeTimeout time.Duration
}

// NewLogTail builds a client for the server at baseURL. token is the admin
// session cookie value and may be empty when the server has no password.
func NewLogTail(baseURL, token string) (ILogTail, error) {
	wsURL, err := streamURL(baseURL)
	if err != nil {
		return nil, err
	}

	return &logTailClient{
		url:          wsURL,
		token:        token,
		pingInterval: 30 * time.Second,
		writeTimeout: 5 * time.Second,
	}, nil
}

func streamURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/v1/log/ws"
	return u.String(), nil
}

// Stream blocks until ctx is cancelled or the server closes the connection.
func (c *logTailClient) Stream(ctx context.Context, handle func(logstream.Entry)) error {
	header := http.Header{}
	if c.token != "" {
		header.Set("Cookie", (&http.Cookie{Name: jwtPkg.CookieName, Value: c.token}).String())
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, resp, err := dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect to %s: %s", c.url, resp.Status)
		}
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}
	defer conn.Close()

	conn.SetPingHandler(func(appData string) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go c.keepAlive(ctx, conn, done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("error reading log stream: %w", err)
		}

		var entry logstream.Entry
		if err := jsoniter.Unmarshal(message, &entry); err != nil {
			return fmt.Errorf("error decoding log entry: %w", err)
		}
		handle(entry)
	}
}

// keepAlive pings the server and closes the connection once ctx ends so the
// blocked read in Stream returns.
func (c *logTailClient) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			c.mu.Lock()
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.writeTimeout),
			)
			c.mu.Unlock()
			conn.Close()
			return
		case <-ticker.C:
			c.mu.Lock()
			err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
			c.mu.Unlock()
			if err != nil {
				conn.Close()
				return
			}
		}
	}
}

// FormatEntry renders an entry the way the console formatter prints it.
func FormatEntry(e logstream.Entry) string {
	var b strings.Builder
	b.WriteString(e.Time.Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(e.Level))
	b.WriteString("] ")
	b.WriteString(e.Message)
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}
