// Package client queries a navigation server over its WebSocket channel.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	C "Nav/constants"
	"Nav/models"
)

// Client runs one request at a time over a single connection. After a
// failed read or write the connection is unusable and must be closed.
type Client struct {
	conn *websocket.Conn

	mu    sync.Mutex
	msgId int
}

type wsResp struct {
	Ret         int             `json:"ret"`
	EchoedMsgId int             `json:"echoedMsgId"`
	Act         string          `json:"act"`
	Data        json.RawMessage `json:"data"`
}

// Error is a non-ok ret code from the server.
type Error struct {
	Ret int
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("nav: ret %d: %s", e.Ret, e.Msg)
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Ret == C.RetCodeNotFound
}

func IsInvalidParams(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Ret == C.RetCodeInvalidParams
}

// Dial connects to a ws:// or wss:// url ending in /ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) FindPath(ctx context.Context, req *models.PathRequest) (*models.PathResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	c.msgId++
	msgId := c.msgId

	// Unblock the socket when ctx ends.
	stop := context.AfterFunc(ctx, func() {
		now := time.Now()
		c.conn.SetReadDeadline(now)  //nolint:errcheck
		c.conn.SetWriteDeadline(now) //nolint:errcheck
	})
	defer stop()

	if err := c.conn.WriteJSON(models.WsReq{MsgId: msgId, Act: models.ActFindPath, Data: data}); err != nil {
		return nil, wrapCtx(ctx, fmt.Errorf("write: %w", err))
	}

	for {
		var resp wsResp
		if err := c.conn.ReadJSON(&resp); err != nil {
			return nil, wrapCtx(ctx, fmt.Errorf("read: %w", err))
		}
		if resp.EchoedMsgId != msgId {
			continue
		}
		if resp.Ret != C.RetCodeOk {
			var body struct {
				Msg string `json:"msg"`
			}
			json.Unmarshal(resp.Data, &body) //nolint:errcheck
			return nil, &Error{Ret: resp.Ret, Msg: body.Msg}
		}
		var out models.PathResponse
		if err := json.Unmarshal(resp.Data, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", resp.Act, err)
		}
		return &out, nil
	}
}

func wrapCtx(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

// Close sends a close frame and drops the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)) //nolint:errcheck
	return c.conn.Close()
}
