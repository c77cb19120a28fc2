package notify_test

import (
	"context"
	"sync"
	"time"

	"github.com/argusops/alertkit/pkg/notify"
)

// fakeNotifier is a scriptable Notifier for decorator and manager tests.
type fakeNotifier struct {
	name     string
	sendFn   func(ctx context.Context, n notify.Notification) error
	healthFn func(ctx context.Context) error
	delay    time.Duration

	mu          sync.Mutex
	sendCalls   int
	healthCalls int
}

func newFakeNotifier(name string) *fakeNotifier {
	return &fakeNotifier{name: name}
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Send(ctx context.Context, n notify.Notification) error {
	f.mu.Lock()
	f.sendCalls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.sendFn != nil {
		return f.sendFn(ctx, n)
	}
	return nil
}

func (f *fakeNotifier) HealthCheck(ctx context.Context) error {
	f.mu.Lock()
	f.healthCalls++
	f.mu.Unlock()

	if f.healthFn != nil {
		return f.healthFn(ctx)
	}
	return nil
}

func (f *fakeNotifier) SendCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendCalls
}

func (f *fakeNotifier) HealthCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthCalls
}
