package worker

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Queue runs work on at most size goroutines at a time.
type Queue struct {
	sem chan struct{}
	wg  *sync.WaitGroup
	log *logrus.Entry
}

func NewQueue(log *logrus.Entry, size int) Queue {
	if size < 1 {
		size = 1
	}
	return Queue{
		log: log.WithField("cmp", "worker"),
		sem: make(chan struct{}, size),
		wg:  new(sync.WaitGroup),
	}
}

// Dispatch blocks until a slot is free, then runs work on its own goroutine.
// A panic in work is logged and swallowed so it can't take down the others.
func (q Queue) Dispatch(work Work) {
	q.wg.Add(1)
	q.sem <- struct{}{}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				q.log.Errorf("Work item panicked: %v", r)
			}
			<-q.sem
			q.wg.Done()
		}()
		work()
	}()
}

func (q Queue) Wait() {
	q.wg.Wait()
}

type Work func()

// Map calls fn for every index in [0, n) on a queue of the given size and
// returns the results in index order, whatever order they completed in.
// Once ctx is done, remaining indexes get ctx.Err() without calling fn.
func Map(ctx context.Context, log *logrus.Entry, size int, n int, fn func(ctx context.Context, i int) (interface{}, error)) []Result {
	results := make([]Result, n)
	q := NewQueue(log, size)
	for i := 0; i < n; i++ {
		i := i
		if err := ctx.Err(); err != nil {
			results[i] = Result{Err: err}
			continue
		}
		results[i] = Result{Err: errPanicked}
		q.Dispatch(func() {
			value, err := fn(ctx, i)
			results[i] = Result{Value: value, Err: err}
		})
	}
	q.Wait()
	return results
}

// Result is the outcome of one Map call.
type Result struct {
	Value interface{}
	Err   error
}
