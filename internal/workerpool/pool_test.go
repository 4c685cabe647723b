package workerpool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPoolRunsAllTasks 测试 Shutdown 等待所有已提交任务完成
func TestPoolRunsAllTasks(t *testing.T) {
	pool := New(4, 2, nil)
	assert.Equal(t, 4, pool.Workers())

	var done atomic.Int64
	for range 100 {
		require.True(t, pool.Submit(context.Background(), func() {
			time.Sleep(time.Millisecond)
			done.Add(1)
		}))
	}
	pool.Shutdown()

	assert.Equal(t, int64(100), done.Load())
}

// TestPoolRecoversPanic 测试任务 panic 不影响其他任务
func TestPoolRecoversPanic(t *testing.T) {
	pool := New(1, 4, nil)

	var done atomic.Int64
	require.True(t, pool.Submit(context.Background(), func() { panic("boom") }))
	require.True(t, pool.Submit(context.Background(), func() { done.Add(1) }))
	pool.Shutdown()

	assert.Equal(t, int64(1), done.Load())
}

// TestPoolSubmitCanceled 测试 ctx 取消或停止后提交失败
func TestPoolSubmitCanceled(t *testing.T) {
	pool := New(1, 0, nil)

	block := make(chan struct{})
	require.True(t, pool.Submit(context.Background(), func() { <-block }))

	// 唯一的 worker 被占用且队列为 0，提交只能等待
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.False(t, pool.Submit(ctx, func() {}))

	close(block)
	pool.Stop()
	assert.False(t, pool.Submit(context.Background(), func() {}))
}

// TestPoolStopDropsQueued 测试 Stop 丢弃队列中尚未开始的任务
func TestPoolStopDropsQueued(t *testing.T) {
	pool := New(1, 8, nil)

	started := make(chan struct{})
	block := make(chan struct{})
	require.True(t, pool.Submit(context.Background(), func() {
		close(started)
		<-block
	}))
	<-started

	var done atomic.Int64
	for range 8 {
		require.True(t, pool.Submit(context.Background(), func() { done.Add(1) }))
	}

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()
	require.Eventually(t, func() bool { return pool.ctx.Err() != nil }, time.Second, time.Millisecond)
	close(block)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Equal(t, int64(0), done.Load())
}
