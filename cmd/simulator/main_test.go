package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.mahjong.sim/internal/health"
)

// TestRunSingleRound 测试单局输出
func TestRunSingleRound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", "testdata/missing.yaml", "--seed", "42"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "Turn 1: East draws "))

	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "The round ended in an exhaustive draw.") {
		assert.Contains(t, last, " wins after ")
	}

	// 相同种子输出一致
	var again bytes.Buffer
	require.Equal(t, 0, run([]string{"--config", "testdata/missing.yaml", "--seed", "42"}, &again, &stderr))
	assert.Equal(t, stdout.String(), again.String())
}

// TestRunQuiet 测试 quiet 只输出结果
func TestRunQuiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", "testdata/missing.yaml", "--seed", "7", "--quiet"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 1)
}

// TestRunBatch 测试批量模式输出统计
func TestRunBatch(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", "testdata/missing.yaml", "--seed", "1", "--rounds", "12", "--workers", "3"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Rounds: 12\n")
	assert.Contains(t, out, "Average turns: ")
	assert.Contains(t, out, "  East: ")
	assert.Contains(t, out, "  North: ")
}

// TestRunInvalidArgs 测试参数错误时退出码为 1
func TestRunInvalidArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"--rounds", "0", "--config", "testdata/missing.yaml"}, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"--game-type", "riichi", "--config", "testdata/missing.yaml"}, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"--unknown"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

// TestHealthMux 测试健康检查路由
func TestHealthMux(t *testing.T) {
	mux := newHealthMux(health.NewChecker(nil, nil, nil))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var status health.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, health.StatusDisabled, status.Redis)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	// 已启用但不可达的依赖
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	down := newHealthMux(health.NewChecker(nil, client, nil))

	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Not Ready", rec.Body.String())
}

// TestRunWithHealthServer 测试启用健康检查监听时正常完成
func TestRunWithHealthServer(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", "testdata/missing.yaml", "--seed", "3", "--quiet", "--health-addr", "127.0.0.1:0"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), "Health check server started")
}
