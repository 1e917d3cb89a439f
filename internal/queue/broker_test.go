package queue

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

func testConfig() Config {
	return Config{
		Workers:     2,
		BufferSize:  16,
		RequeueBase: time.Millisecond,
		RequeueMax:  10 * time.Millisecond,
		MaxRetry:    3,
	}
}

// TestBrokerDeliversWork 工作消息被投递到注册的处理函数
func TestBrokerDeliversWork(t *testing.T) {
	b := New(testConfig())
	done := make(chan string, 1)
	b.OnWork(func(msg *define.WorkMessage) error {
		done <- msg.SessionID
		return nil
	})
	b.OnCompletion(func(msg *define.CompletionMessage) error { return nil })

	b.Start()
	defer b.Stop()

	b.PublishWork(define.WorkMessage{SessionID: "s1", QueueIDs: []uint{1}})

	select {
	case got := <-done:
		if got != "s1" {
			t.Errorf("期望会话 s1, 实际 %s", got)
		}
	case <-time.After(time.Second):
		t.Fatal("等待投递超时")
	}
}

// TestBrokerRetriesOnFailure 处理失败的消息被延迟重投直到成功
func TestBrokerRetriesOnFailure(t *testing.T) {
	b := New(testConfig())
	var attempts int32
	done := make(chan struct{}, 1)
	b.OnWork(func(msg *define.WorkMessage) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("暂时不可用")
		}
		done <- struct{}{}
		return nil
	})
	b.OnCompletion(func(msg *define.CompletionMessage) error { return nil })

	b.Start()
	defer b.Stop()

	b.PublishWork(define.WorkMessage{SessionID: "s1", QueueIDs: []uint{1}})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("等待重投成功超时")
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("期望3次投递, 实际 %d", got)
	}
}

// TestBrokerExhaustsRetries 超过重试上限后交给耗尽回调,不再重投
func TestBrokerExhaustsRetries(t *testing.T) {
	b := New(testConfig())
	var attempts int32
	exhausted := make(chan *define.WorkMessage, 1)
	b.OnWork(func(msg *define.WorkMessage) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("持续失败")
	})
	b.OnCompletion(func(msg *define.CompletionMessage) error { return nil })
	b.OnExhausted(func(msg *define.WorkMessage, cause error) {
		exhausted <- msg
	})

	b.Start()
	defer b.Stop()

	b.PublishWork(define.WorkMessage{SessionID: "s1", QueueIDs: []uint{1}})

	select {
	case msg := <-exhausted:
		if msg.SessionID != "s1" {
			t.Errorf("期望耗尽消息的会话 s1, 实际 %s", msg.SessionID)
		}
	case <-time.After(time.Second):
		t.Fatal("等待耗尽回调超时")
	}
	// 首次投递 + MaxRetry次重投
	if got := atomic.LoadInt32(&attempts); got != 4 {
		t.Errorf("期望4次投递, 实际 %d", got)
	}
}

// TestBrokerPendingDrains 全部消息处理完后积压量归零
func TestBrokerPendingDrains(t *testing.T) {
	b := New(testConfig())
	var handled int32
	b.OnWork(func(msg *define.WorkMessage) error {
		atomic.AddInt32(&handled, 1)
		return nil
	})
	b.OnCompletion(func(msg *define.CompletionMessage) error {
		atomic.AddInt32(&handled, 1)
		return nil
	})

	b.Start()
	defer b.Stop()

	for i := 0; i < 5; i++ {
		b.PublishWork(define.WorkMessage{SessionID: "s1"})
		b.PublishCompletion(define.CompletionMessage{CommGroupID: 1})
	}

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&handled) < 10 {
		select {
		case <-deadline:
			t.Fatalf("等待消费完成超时, 已处理 %d", atomic.LoadInt32(&handled))
		case <-time.After(time.Millisecond):
		}
	}
	if got := b.Pending(); got != 0 {
		t.Errorf("期望积压量0, 实际 %d", got)
	}
}
