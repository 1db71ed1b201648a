package listener

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buildconf-labs/buildconf/internal/resolution"
)

type recorder struct {
	name   string
	events *[]string
}

func (r recorder) BeforeResolve(_ context.Context, req resolution.Request) {
	*r.events = append(*r.events, r.name+":before:"+req.Path)
}

func (r recorder) AfterResolve(_ context.Context, req resolution.Request, _ *resolution.Result, err error) {
	suffix := "ok"
	if err != nil {
		suffix = "err"
	}
	*r.events = append(*r.events, r.name+":after:"+req.Path+":"+suffix)
}

func TestManagerBroadcastsInOrder(t *testing.T) {
	var events []string
	m := NewManager(recorder{name: "a", events: &events})
	m.Add(recorder{name: "b", events: &events})

	req := resolution.Request{Path: ":compile"}
	m.BeforeResolve(context.Background(), req)
	m.AfterResolve(context.Background(), req, &resolution.Result{}, nil)
	m.AfterResolve(context.Background(), req, nil, errors.New("boom"))

	assert.Equal(t, []string{
		"a:before::compile",
		"b:before::compile",
		"a:after::compile:ok",
		"b:after::compile:ok",
		"a:after::compile:err",
		"b:after::compile:err",
	}, events)
	assert.Equal(t, 2, m.Len())
}

func TestLoggingListener(t *testing.T) {
	var buf bytes.Buffer
	l := LoggingListener{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	req := resolution.Request{Path: ":runtime"}

	l.BeforeResolve(context.Background(), req)
	l.AfterResolve(context.Background(), req, &resolution.Result{Failures: []*resolution.Node{{}}}, nil)
	l.AfterResolve(context.Background(), req, nil, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Resolving configuration.")
	assert.Contains(t, out, "Resolved with failures.")
	assert.Contains(t, out, "Resolution failed.")
	assert.Contains(t, out, "configuration=:runtime")
}
