// ABOUTME: RPC mode for external integrations (editor plugins, scripts)
// ABOUTME: JSONL-based protocol over stdin/stdout, one request per line

package rpc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mauromedda/cognichat-go/internal/log"
)

// Server handles RPC requests from an external client. Requests are
// answered one at a time, in arrival order.
type Server struct {
	reader  *bufio.Scanner
	writer  io.Writer
	handler func(Request) Response
}

// NewServer creates an RPC server reading from r and writing to w. Nil
// streams default to stdin and stdout.
func NewServer(r io.Reader, w io.Writer, handler func(Request) Response) *Server {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	return &Server{
		reader:  scanner,
		writer:  w,
		handler: handler,
	}
}

// Run serves until the input ends or ctx is cancelled. Cancellation is
// observed between requests.
func (s *Server) Run(ctx context.Context) error {
	for s.reader.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(s.reader.Bytes())
		if len(line) == 0 {
			continue
		}

		req, err := decodeRequest(line)
		if err != nil {
			if werr := s.send(Response{Error: NewParseError(fmt.Sprintf("parse error: %v", err))}); werr != nil {
				return werr
			}
			continue
		}
		if req.Method == "" {
			if werr := s.send(Response{ID: req.ID, Error: NewInvalidRequestError("missing method")}); werr != nil {
				return werr
			}
			continue
		}

		resp := s.dispatch(req)
		resp.ID = req.ID
		if err := s.send(resp); err != nil {
			return err
		}
	}

	return s.reader.Err()
}

func (s *Server) dispatch(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("rpc %s: handler panic: %v", req.Method, r)
			resp = Response{Error: NewInternalError(fmt.Sprintf("internal error: %v", r))}
		}
	}()
	return s.handler(req)
}

func (s *Server) send(resp Response) error {
	data, err := encodeResponse(resp)
	if err != nil {
		data, _ = encodeResponse(Response{
			ID:    resp.ID,
			Error: NewInternalError(fmt.Sprintf("internal error: %v", err)),
		})
	}

	data = append(data, '\n')
	if _, err := s.writer.Write(data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
