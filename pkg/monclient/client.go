// Package monclient implements the meta server admin protocol client used
// by quadm: one TCP session per process, sequential request/response
// round-trips with CR/LF header framing and sized content payloads.
package monclient

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"time"

	"github.com/quokkafs/quadm/internal/logger"
	"github.com/quokkafs/quadm/pkg/config"
	"github.com/quokkafs/quadm/pkg/meta"
)

// ProtocolVersion is sent with every request and checked by the server.
const ProtocolVersion = "QKFS/1.0"

// Request and response header names.
const (
	headerVersion       = "Version"
	headerCseq          = "Cseq"
	headerStatus        = "Status"
	headerStatusMessage = "Status-message"
	headerContentLength = "Content-length"
)

// responseOK is the status line of a well-formed response. Failures are
// reported through the Status header, not the status line.
const responseOK = "OK"

// Client speaks the meta server admin protocol. It is not safe for
// concurrent use; quadm executes commands strictly sequentially.
type Client struct {
	loc              meta.ServerLocation
	timeout          time.Duration
	maxContentLength int
	seq              int64

	conn net.Conn
	bw   *bufio.Writer
	tr   *textproto.Reader
}

// NewClient returns an unconfigured client. Configure must be called before
// Execute.
func NewClient() *Client {
	return &Client{
		timeout:          30 * time.Second,
		maxContentLength: config.DefaultMaxContentLength,
	}
}

// Configure validates the target location and applies the client
// configuration from configFile (empty path means defaults plus environment
// overrides). It must succeed before any command executes.
func (c *Client) Configure(loc meta.ServerLocation, configFile string) (*config.Config, error) {
	if !loc.IsValid() {
		return nil, fmt.Errorf("invalid meta server location %q", loc)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	c.loc = loc
	c.timeout = cfg.Client.Timeout
	c.maxContentLength = cfg.Client.MaxContentLength
	return cfg, nil
}

// SetMaxContentLength sets the largest response payload accepted, in bytes.
func (c *Client) SetMaxContentLength(n int) {
	if n > 0 {
		c.maxContentLength = n
	}
}

// Execute performs one blocking admin round-trip, filling in the outcome
// half of op. Transport and framing failures close the session so the next
// call redials; server-side failures come back as a negative op.Status.
func (c *Client) Execute(ctx context.Context, loc meta.ServerLocation, op *meta.MonOp) error {
	if err := c.ensureConnected(ctx, loc); err != nil {
		return err
	}

	if deadline, ok := c.deadline(ctx); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			c.Close()
			return fmt.Errorf("failed to set session deadline: %w", err)
		}
	}

	c.seq++
	if err := c.writeRequest(op); err != nil {
		c.Close()
		return fmt.Errorf("failed to send %s request: %w", op.Name, err)
	}
	if err := c.readResponse(op); err != nil {
		c.Close()
		return fmt.Errorf("failed to read %s response: %w", op.Name, err)
	}

	logger.Debug("admin round-trip complete",
		logger.Command(op.Name), logger.Cseq(c.seq),
		logger.Status(op.Status), logger.Length(op.ContentLength))
	return nil
}

// Close tears down the session, if any.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.bw = nil
	c.tr = nil
	return err
}

// ensureConnected dials the admin port on first use; the session is reused
// across all commands of one invocation.
func (c *Client) ensureConnected(ctx context.Context, loc meta.ServerLocation) error {
	if c.conn != nil {
		return nil
	}
	if !loc.IsValid() {
		loc = c.loc
	}
	if !loc.IsValid() {
		return fmt.Errorf("no meta server location configured")
	}

	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", loc.Addr())
	if err != nil {
		return fmt.Errorf("failed to connect to meta server %s: %w", loc, err)
	}

	logger.Debug("connected to meta server",
		logger.Host(loc.Host), logger.Port(loc.Port))

	c.conn = conn
	c.bw = bufio.NewWriter(conn)
	c.tr = textproto.NewReader(bufio.NewReader(conn))
	return nil
}

// writeRequest frames one request: op name line, Version and Cseq headers,
// terminating blank line.
func (c *Client) writeRequest(op *meta.MonOp) error {
	fmt.Fprintf(c.bw, "%s\r\n", op.Name)
	fmt.Fprintf(c.bw, "%s: %s\r\n", headerVersion, ProtocolVersion)
	fmt.Fprintf(c.bw, "%s: %d\r\n", headerCseq, c.seq)
	fmt.Fprintf(c.bw, "\r\n")
	return c.bw.Flush()
}

// readResponse parses the status line, the response headers and exactly
// Content-length payload bytes into op.
func (c *Client) readResponse(op *meta.MonOp) error {
	line, err := c.tr.ReadLine()
	if err != nil {
		return err
	}
	if line != responseOK {
		return fmt.Errorf("unexpected response line %q", line)
	}

	hdr, err := c.tr.ReadMIMEHeader()
	if err != nil {
		return err
	}

	if got := hdr.Get(headerCseq); got != strconv.FormatInt(c.seq, 10) {
		return fmt.Errorf("sequence mismatch: sent %d, got %q", c.seq, got)
	}

	status, err := headerInt(hdr, headerStatus)
	if err != nil {
		return err
	}
	op.Status = status
	op.StatusMsg = hdr.Get(headerStatusMessage)

	op.ContentLength = 0
	op.Content = nil
	if raw := hdr.Get(headerContentLength); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("bad %s header %q", headerContentLength, raw)
		}
		if n > c.maxContentLength {
			return fmt.Errorf("content length %d exceeds limit %d", n, c.maxContentLength)
		}
		if n > 0 {
			op.Content = make([]byte, n)
			if _, err := io.ReadFull(c.tr.R, op.Content); err != nil {
				return fmt.Errorf("short content read: %w", err)
			}
			op.ContentLength = n
		}
	}
	return nil
}

// deadline picks the sooner of the context deadline and the session timeout.
func (c *Client) deadline(ctx context.Context) (time.Time, bool) {
	d := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		d = ctxDeadline
	}
	return d, c.timeout > 0
}

func headerInt(hdr textproto.MIMEHeader, key string) (int, error) {
	raw := hdr.Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad %s header %q", key, raw)
	}
	return n, nil
}
