package queue

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/algorithm/define"
)

// WorkHandler 工作消息处理函数
type WorkHandler func(*define.WorkMessage) error

// CompletionHandler 完成消息处理函数
type CompletionHandler func(*define.CompletionMessage) error

// ExhaustedHandler 重试次数耗尽时的回调
type ExhaustedHandler func(*define.WorkMessage, error)

// Config 调度器参数
type Config struct {
	Workers     int           // 工作者数量
	BufferSize  int           // 消息缓冲长度
	RequeueBase time.Duration // 重新入队的基础延迟
	RequeueMax  time.Duration // 重新入队的延迟上限
	MaxRetry    int           // 单条消息的重试上限
}

// envelope 投递信封,工作消息和完成消息二选一
type envelope struct {
	work       *define.WorkMessage
	completion *define.CompletionMessage
}

// Broker 进程内消息调度器
// 投递语义为至少一次: 处理失败的消息会延迟重投,处理函数必须幂等
// 重投延迟随积压量增长,在没有中心调度器的情况下提供简单的背压
type Broker struct {
	cfg Config

	messages chan envelope
	pending  int64 // 当前积压量(含延迟待投)

	onWork       WorkHandler
	onCompletion CompletionHandler
	onExhausted  ExhaustedHandler

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New 创建调度器
func New(cfg Config) *Broker {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	return &Broker{
		cfg:      cfg,
		messages: make(chan envelope, cfg.BufferSize),
		stopChan: make(chan struct{}),
	}
}

// OnWork 注册工作消息处理函数
func (b *Broker) OnWork(h WorkHandler) {
	b.onWork = h
}

// OnCompletion 注册完成消息处理函数
func (b *Broker) OnCompletion(h CompletionHandler) {
	b.onCompletion = h
}

// OnExhausted 注册重试耗尽回调
func (b *Broker) OnExhausted(h ExhaustedHandler) {
	b.onExhausted = h
}

// Start 启动工作者
func (b *Broker) Start() {
	for i := 0; i < b.cfg.Workers; i++ {
		b.wg.Add(1)
		go b.runWorker(i)
	}
	log.Printf("消息调度器已启动, 工作者数量: %d", b.cfg.Workers)
}

// Stop 停止工作者并等待退出
func (b *Broker) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopChan)
	})
	b.wg.Wait()
}

// Pending 当前积压量
func (b *Broker) Pending() int64 {
	return atomic.LoadInt64(&b.pending)
}

// PublishWork 投递工作消息
func (b *Broker) PublishWork(msg define.WorkMessage) {
	b.enqueue(envelope{work: &msg}, 0)
}

// PublishCompletion 投递完成消息
func (b *Broker) PublishCompletion(msg define.CompletionMessage) {
	b.enqueue(envelope{completion: &msg}, 0)
}

// enqueue 入队,delay大于0时延迟投递
func (b *Broker) enqueue(env envelope, delay time.Duration) {
	atomic.AddInt64(&b.pending, 1)
	if delay <= 0 {
		select {
		case b.messages <- env:
		default:
			// 缓冲已满,转为延迟投递避免阻塞发布方
			time.AfterFunc(b.cfg.RequeueBase, func() { b.deliver(env) })
		}
		return
	}
	time.AfterFunc(delay, func() { b.deliver(env) })
}

// deliver 延迟到期后的实际投递
func (b *Broker) deliver(env envelope) {
	select {
	case b.messages <- env:
	case <-b.stopChan:
		atomic.AddInt64(&b.pending, -1)
	}
}

// runWorker 工作者主循环
func (b *Broker) runWorker(id int) {
	defer b.wg.Done()

	for {
		select {
		case <-b.stopChan:
			return
		case env := <-b.messages:
			atomic.AddInt64(&b.pending, -1)
			b.dispatch(env)
		}
	}
}

// dispatch 分发一条消息,失败时延迟重投
func (b *Broker) dispatch(env envelope) {
	var err error
	switch {
	case env.work != nil:
		err = b.onWork(env.work)
	case env.completion != nil:
		err = b.onCompletion(env.completion)
	default:
		return
	}
	if err == nil {
		return
	}

	// 失败重投: 计数加一,超过上限交给耗尽回调,不再重试
	if env.work != nil {
		env.work.RetryCount++
		if env.work.RetryCount > b.cfg.MaxRetry {
			log.Printf("[警告] 工作消息重试次数耗尽, 会话: %s, 单元: %v: %v", env.work.SessionID, env.work.QueueIDs, err)
			if b.onExhausted != nil {
				b.onExhausted(env.work, err)
			}
			return
		}
		log.Printf("[警告] 工作消息处理失败, 第%d次重投, 会话: %s: %v", env.work.RetryCount, env.work.SessionID, err)
	} else {
		env.completion.RetryCount++
		if env.completion.RetryCount > b.cfg.MaxRetry {
			log.Printf("[警告] 完成消息重试次数耗尽, 通信组: %d: %v", env.completion.CommGroupID, err)
			return
		}
		log.Printf("[警告] 完成消息处理失败, 第%d次重投, 通信组: %d: %v", env.completion.RetryCount, env.completion.CommGroupID, err)
	}
	b.enqueue(env, b.requeueDelay())
}

// requeueDelay 根据积压量计算重投延迟
// 轻载用基础延迟,重载线性增长并封顶
func (b *Broker) requeueDelay() time.Duration {
	pending := atomic.LoadInt64(&b.pending)
	delay := b.cfg.RequeueBase * time.Duration(1+pending/int64(b.cfg.Workers))
	if delay > b.cfg.RequeueMax {
		delay = b.cfg.RequeueMax
	}
	if delay <= 0 {
		delay = b.cfg.RequeueBase
	}
	return delay
}
