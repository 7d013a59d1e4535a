package ilp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_IsendToAndRecvFromMaster(t *testing.T) {
	b := newBus(2)
	b.isendTo(1, envelope{Tag: TagProblem})

	got := b.recvFromMaster(1)
	assert.Equal(t, TagProblem, got.Tag)
}

func TestBus_IsendUpSetsRank(t *testing.T) {
	b := newBus(2)
	b.isendUp(1, envelope{Tag: TagIntSol})

	got := b.recvFromWorker()
	assert.Equal(t, TagIntSol, got.Tag)
	assert.Equal(t, 1, got.Rank)
}

func TestBus_BroadcastKill(t *testing.T) {
	b := newBus(3)
	b.broadcastKill()

	for rank := 0; rank < 3; rank++ {
		got := b.recvFromMaster(rank)
		assert.Equal(t, TagKill, got.Tag)
	}
}

func TestBus_Iprobe(t *testing.T) {
	b := newBus(1)
	_, ok := b.iprobe()
	assert.False(t, ok)

	b.isendUp(0, envelope{Tag: TagNoSol})
	got, ok := b.iprobe()
	assert.True(t, ok)
	assert.Equal(t, TagNoSol, got.Tag)
}

func TestBus_RecvFromWorkerCtx_ReturnsOnCancel(t *testing.T) {
	b := newBus(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.recvFromWorkerCtx(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBus_RecvFromWorkerCtx_ReturnsMessage(t *testing.T) {
	b := newBus(1)
	b.isendUp(0, envelope{Tag: TagDecSol})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	msg, err := b.recvFromWorkerCtx(ctx)
	require.NoError(t, err)
	assert.Equal(t, TagDecSol, msg.Tag)
}

func TestTag_String(t *testing.T) {
	cases := map[Tag]string{
		TagProblem: "PROBLEM",
		TagIntSol:  "INT_SOL",
		TagDecSol:  "DEC_SOL",
		TagNoSol:   "NO_SOL",
		TagProceed: "PROCEED",
		TagKill:    "KILL",
	}
	for tag, want := range cases {
		assert.Equal(t, want, tag.String())
	}
}
