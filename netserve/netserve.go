// Package netserve is the optional network front end for the Query
// Processor, grounded on the teacher's query_engine/engine.go
// ZeroMQEngine: a single REP socket serving one query per request.
// Nothing else in the module depends on it -- it is purely an
// alternative to the stdin/stdout `search` subcommand for callers that
// want a long-lived process.
package netserve

import (
	"encoding/json"
	"fmt"

	log "github.com/cihub/seelog"
	zmq "github.com/pebbe/zmq3"

	"github.com/cwacek/corpusidx/index"
	"github.com/cwacek/corpusidx/query"
)

// Query is the wire request: a raw query string, the ranking engine
// to use by name (empty defaults to "tfidf"), and an optional result
// cap (0 means unbounded).
type Query struct {
	Text       string `json:"text"`
	Engine     string `json:"engine"`
	MaxResults int    `json:"max_results"`
}

// Response mirrors the teacher's query_engine.Response shape: a
// ranked result list, or an error string when the query could not be
// processed.
type Response struct {
	Results []query.Result `json:"results"`
	Error   string         `json:"error,omitempty"`
}

// Engine is a bound REP socket serving Search requests against a
// fixed, already-loaded Index.
type Engine struct {
	idx     *index.Index
	port    int
	control chan struct{}
}

func NewEngine(idx *index.Index, port int) *Engine {
	return &Engine{idx: idx, port: port, control: make(chan struct{})}
}

// Stop signals Start's serving loop to shut down. The loop checks for
// the signal before each receive, so a loop already blocked waiting for
// a request returns only after that next request has been answered.
func (e *Engine) Stop() {
	close(e.control)
}

// Start binds a REP socket on e.port and serves requests until Stop
// is called. It blocks the calling goroutine.
func (e *Engine) Start() error {
	socket, err := zmq.NewSocket(zmq.REP)
	if err != nil {
		return fmt.Errorf("netserve: creating socket: %w", err)
	}
	defer socket.Close()

	if err := socket.Bind(fmt.Sprintf("tcp://*:%d", e.port)); err != nil {
		return fmt.Errorf("netserve: binding port %d: %w", e.port, err)
	}

	log.Infof("netserve: listening on port %d", e.port)

	for {
		select {
		case <-e.control:
			log.Info("netserve: shutting down")
			return nil
		default:
		}

		msg, err := socket.RecvBytes(0)
		if err != nil {
			log.Warnf("netserve: recv error: %v", err)
			continue
		}

		resp := e.handle(msg)

		out, err := json.Marshal(resp)
		if err != nil {
			log.Criticalf("netserve: marshaling response: %v", err)
			continue
		}

		if _, err := socket.SendBytes(out, 0); err != nil {
			log.Warnf("netserve: send error: %v", err)
		}
	}
}

func (e *Engine) handle(msg []byte) Response {
	var q Query
	if err := json.Unmarshal(msg, &q); err != nil {
		return Response{Error: "malformed query: " + err.Error()}
	}

	engine := query.Lookup(q.Engine)

	results, err := query.Search(e.idx, q.Text, engine, q.MaxResults)
	if err != nil {
		return Response{Error: err.Error()}
	}

	return Response{Results: results}
}
