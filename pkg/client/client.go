// pkg/client/client.go
package client

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/NivBraz/dictionary-service/internal/models"
	"github.com/NivBraz/dictionary-service/pkg/wire"
)

// Client is a connection to a dictionary server. SendRequest is
// synchronous: one request is in flight at a time, so each response read
// belongs to the request just sent.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
}

// Dial connects to the server at address ("host:port").
func Dial(ctx context.Context, address string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", address, err)
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// SendRequest sends a raw command such as "QUERY:cat" and waits for the
// response.
func (c *Client) SendRequest(request string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := wire.WriteFrame(c.conn, request); err != nil {
		return "", err
	}
	response, err := wire.ReadFrame(c.reader)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	return response, nil
}

func (c *Client) Query(word string) (string, error) {
	return c.SendRequest(join(models.OpQuery, word))
}

// Add sends meanings joined with ';'.
func (c *Client) Add(word string, meanings ...string) (string, error) {
	return c.SendRequest(join(models.OpAdd, word, strings.Join(meanings, ";")))
}

func (c *Client) Remove(word string) (string, error) {
	return c.SendRequest(join(models.OpRemove, word))
}

func (c *Client) Append(word, meaning string) (string, error) {
	return c.SendRequest(join(models.OpAppend, word, meaning))
}

func (c *Client) Update(word, oldMeaning, newMeaning string) (string, error) {
	return c.SendRequest(join(models.OpUpdate, word, oldMeaning, newMeaning))
}

// Close sends EXIT and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exitErr := wire.WriteFrame(c.conn, models.ExitCommand)
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}
	return exitErr
}

func join(op models.Op, args ...string) string {
	return string(op) + ":" + strings.Join(args, ":")
}
