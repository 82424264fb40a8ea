// Package ws is the WebSocket side of the location relay.
//
// Delivery agents send
//
//	{"event": "updateAgentLocation", "data": {"orderId": "...", "longitude": 90.41, "latitude": 23.81}}
//
// and anyone watching an order sends {"event": "subscribe", "data": {"orderId": "..."}}
// to receive
//
//	{"event": "agentLocation:<orderId>", "data": {"orderId": "...", "longitude": 90.41, "latitude": 23.81, "updatedAt": "..."}}
//
// for every stored update. Delivery is at most once with no replay; a late
// subscriber reads the current position over HTTP instead.
package ws
