package workerpool

import (
	"context"
	"log/slog"
	"sync"
)

// Task 定义任务函数类型
type Task func()

// Pool Worker Pool 实现，用于并发执行互不相关的牌局
type Pool struct {
	workers   int
	taskQueue chan Task
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	logger    *slog.Logger
}

// New 创建一个新的 Worker Pool
// workers: worker 数量
// queueSize: 任务队列大小
func New(workers int, queueSize int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		workers:   workers,
		taskQueue: make(chan Task, queueSize),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
	}

	// 启动 workers
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	pool.logger.Debug("Worker pool started",
		"workers", workers,
		"queue_size", queueSize)

	return pool
}

// worker 工作协程
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		// Stop 之后不再从队列取任务
		if p.ctx.Err() != nil {
			return
		}
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			p.run(id, task)
		}
	}
}

// run 执行任务，捕获 panic
func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Task panic recovered",
				"worker_id", id,
				"panic", r)
		}
	}()
	task()
}

// Workers worker 数量
func (p *Pool) Workers() int {
	return p.workers
}

// Submit 提交任务到 Worker Pool
// 如果队列满了，会阻塞直到有空位、ctx 被取消或 Pool 被停止
func (p *Pool) Submit(ctx context.Context, task Task) bool {
	select {
	case <-p.ctx.Done():
		return false
	case <-ctx.Done():
		return false
	case p.taskQueue <- task:
		return true
	}
}

// Shutdown 优雅关闭 Worker Pool
// 不再接收新任务，等待已提交的任务全部完成；之后不可再调用 Submit
func (p *Pool) Shutdown() {
	p.closeOnce.Do(func() {
		close(p.taskQueue)
	})
	p.wg.Wait()
	p.cancel()
	p.logger.Debug("Worker pool shutdown completed")
}

// Stop 立即停止，队列中尚未开始的任务被丢弃
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Debug("Worker pool stopped")
}
