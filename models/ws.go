package models

import "encoding/json"

const (
	ActFindPath   = "FindPath"
	ActPathResult = "PathResult"
)

type WsReq struct {
	MsgId int             `json:"msgId"`
	Act   string          `json:"act"`
	Data  json.RawMessage `json:"data"`
}

type WsResp struct {
	Ret         int         `json:"ret"`
	EchoedMsgId int         `json:"echoedMsgId"`
	Act         string      `json:"act"`
	Data        interface{} `json:"data,omitempty"`
}
