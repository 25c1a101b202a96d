package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	C "Nav/constants"
	"Nav/models"
)

// serveWs answers FindPath requests on one connection until the peer goes
// away. Requests are handled in order.
func (s *Server) serveWs(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("ws upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	log := s.log.With(zap.String("request_id", c.GetString(requestIDKey)))
	log.Debug("ws connected", zap.String("remote", c.Request.RemoteAddr))

	for {
		var req models.WsReq
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("ws read", zap.Error(err))
			}
			return
		}

		resp := s.handleWsReq(ctx, &req)
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("ws write", zap.Error(err))
			return
		}
	}
}

func (s *Server) handleWsReq(ctx context.Context, req *models.WsReq) *models.WsResp {
	if req.Act != models.ActFindPath {
		return wsError(req, fmt.Errorf("%w: unknown act %q", errInvalidParams, req.Act))
	}

	var pathReq models.PathRequest
	if err := json.Unmarshal(req.Data, &pathReq); err != nil {
		return wsError(req, fmt.Errorf("%w: %v", errInvalidParams, err))
	}
	resp, err := s.findPath(ctx, &pathReq, nil)
	if err != nil {
		return wsError(req, err)
	}
	return &models.WsResp{
		Ret:         C.RetCodeOk,
		EchoedMsgId: req.MsgId,
		Act:         models.ActPathResult,
		Data:        resp,
	}
}

func wsError(req *models.WsReq, err error) *models.WsResp {
	ret, _ := retCode(err)
	return &models.WsResp{
		Ret:         ret,
		EchoedMsgId: req.MsgId,
		Act:         models.ActPathResult,
		Data:        gin.H{"msg": err.Error()},
	}
}
