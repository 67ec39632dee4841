package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLoop(t *testing.T) {
	t.Run("interval follows frame rate", func(t *testing.T) {
		assert.Equal(t, time.Second/60, newFrameLoop("a", 0).interval)
		assert.Equal(t, time.Second/30, newFrameLoop("a", 30).interval)
	})

	t.Run("accepts only its own live ticks", func(t *testing.T) {
		l := newFrameLoop("a", 60)
		assert.False(t, l.Accept(frameMsg{noteID: "a", seq: 0}))

		require.NotNil(t, l.Start())
		assert.True(t, l.Running())
		assert.True(t, l.Accept(frameMsg{noteID: "a", seq: l.seq}))
		assert.False(t, l.Accept(frameMsg{noteID: "b", seq: l.seq}))
		assert.False(t, l.Accept(frameMsg{noteID: "a", seq: l.seq + 1}))
		assert.NotNil(t, l.Next())
	})

	t.Run("cancel ends the chain", func(t *testing.T) {
		l := newFrameLoop("a", 60)
		l.Start()
		seq := l.seq
		l.Cancel()
		assert.False(t, l.Running())
		assert.False(t, l.Accept(frameMsg{noteID: "a", seq: seq}))
		assert.Nil(t, l.Next())
	})

	t.Run("tick delivers a frame message", func(t *testing.T) {
		l := newFrameLoop("a", 200)
		cmd := l.Start()
		msg := cmd()
		frame, ok := msg.(frameMsg)
		require.True(t, ok)
		assert.True(t, l.Accept(frame))
	})
}
