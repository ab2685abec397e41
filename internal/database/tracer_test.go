package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingTracer struct {
	name  string
	calls *[]string
}

func (r recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	*r.calls = append(*r.calls, r.name+":start")
	return ctx
}

func (r recordingTracer) TraceQueryEnd(_ context.Context, _ *pgx.Conn, _ pgx.TraceQueryEndData) {
	*r.calls = append(*r.calls, r.name+":end")
}

func TestMultiTracerCallsEveryTracerInOrder(t *testing.T) {
	var calls []string
	mt := &multiTracer{}
	mt.add(recordingTracer{name: "a", calls: &calls})
	mt.add(recordingTracer{name: "b", calls: &calls})

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, []string{"a:start", "b:start", "a:end", "b:end"}, calls)
}

func TestSlowQueryTracer(t *testing.T) {
	tests := []struct {
		desc    string
		elapsed time.Duration
		err     error
		logged  bool
	}{
		{"fast query is ignored", 10 * time.Millisecond, nil, false},
		{"slow query is logged", 250 * time.Millisecond, nil, true},
		{"slow failing query carries the error", 300 * time.Millisecond, errors.New("canceled"), true},
	}

	for i, tc := range tests {
		var buf bytes.Buffer
		log := zerolog.New(&buf)

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		current := base
		tracer := newSlowQueryTracer(&log, 100*time.Millisecond)
		tracer.now = func() time.Time { return current }

		ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT * FROM employees"})
		current = base.Add(tc.elapsed)
		tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 3"), Err: tc.err})

		out := buf.String()
		if !tc.logged {
			assert.Empty(t, out, "TEST[%d], failed.\n%s", i, tc.desc)
			continue
		}

		assert.Contains(t, out, "slow query", "TEST[%d], failed.\n%s", i, tc.desc)
		assert.Contains(t, out, "SELECT * FROM employees", "TEST[%d], failed.\n%s", i, tc.desc)
		if tc.err != nil {
			assert.Contains(t, out, "canceled", "TEST[%d], failed.\n%s", i, tc.desc)
		}
	}
}

func TestSlowQueryTracerWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	newSlowQueryTracer(&log, time.Nanosecond).TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}
