package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Sogni-AI/sogni-creatures-api/util"
)

// Result 单个任务的终态，Data 与 Err 互斥
type Result struct {
	Data []byte
	Err  error
}

type job struct {
	run        func() ([]byte, error)
	done       chan Result
	enqueuedAt time.Time
}

// Queue 对下游生成后端的单飞准入队列：任务体严格按入队顺序串行执行，
// 任意时刻最多一个任务在执行，各调用方只等待自己任务的结果。
//
// 入队和"空闲转忙"在同一临界区内完成，不存在两个任务同时被取走的窗口。
type Queue struct {
	mu      sync.Mutex
	pending []*job
	active  bool
}

func New() *Queue {
	return &Queue{}
}

// Enqueue 提交任务并阻塞等待其结果。任务失败只影响自身，
// 队列继续执行后续任务。任务一旦开始执行不可取消。
func (q *Queue) Enqueue(run func() ([]byte, error)) ([]byte, error) {
	j := &job{
		run:        run,
		done:       make(chan Result, 1),
		enqueuedAt: time.Now(),
	}

	q.mu.Lock()
	q.pending = append(q.pending, j)
	start := !q.active
	if start {
		q.active = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}

	res := <-j.done
	return res.Data, res.Err
}

// Pending 当前等待中的任务数（不含正在执行的）
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// drain 单个工作协程按 FIFO 取任务执行，队列空了才退出
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.active = false
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		j.done <- runJob(j)
	}
}

// runJob 执行任务体，panic 转为该任务自身的失败
func runJob(j *job) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("queue job panicked", zap.Any("panic", r))
			res = Result{Err: fmt.Errorf("job panicked: %v", r)}
		}
	}()

	waited := time.Since(j.enqueuedAt)
	data, err := j.run()
	if err != nil {
		util.Logger.Warn("queue job failed",
			zap.Duration("queued", waited),
			zap.Error(err))
		return Result{Err: err}
	}
	return Result{Data: data}
}
