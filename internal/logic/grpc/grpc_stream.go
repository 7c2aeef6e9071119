package grpc

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"ix-decoder-sol/internal/config"
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/pkg/logger"
	"ix-decoder-sol/internal/svc"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
)

type GrpcStreamManager struct {
	mu                sync.Mutex                    // 保护连接状态
	conn              *grpc.ClientConn              // gRPC 连接对象
	client            pb.GeyserClient               // gRPC 客户端
	stream            pb.Geyser_SubscribeClient     // gRPC 订阅流
	stopped           bool                          // 是否已经停止
	reconnectAttempts int                           // 已重连次数
	blockChan         chan *pb.SubscribeUpdateBlock // 区块数据通道
	connCtx           context.Context               // 当前连接的 context
	connCancel        context.CancelFunc            // 当前连接的 cancel 函数

	reconnectInterval time.Duration
	pingInterval      time.Duration
	sendTimeout       time.Duration
	blockRecvTimeout  time.Duration
	latencyWarn       time.Duration
	xToken            string
}

func NewGrpcStreamManager(sc *svc.GrpcServiceContext, blockChan chan *pb.SubscribeUpdateBlock) (*GrpcStreamManager, error) {
	grpcConf := sc.Config.Grpc

	dialCtx, cancel := context.WithTimeout(context.Background(), secOrDefault(grpcConf.ConnectTimeoutSec, 10))
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx,
		grpcConf.Endpoint,
		grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{InsecureSkipVerify: true})),
		grpc.WithInitialWindowSize(int32(grpcConf.InitialWindowSize)),
		grpc.WithInitialConnWindowSize(int32(grpcConf.InitialConnWindowSize)),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallSendMsgSize(grpcConf.MaxCallSendMsgSize),
			grpc.MaxCallRecvMsgSize(grpcConf.MaxCallRecvMsgSize),
		),
		grpc.WithBlock(),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                secOrDefault(grpcConf.KeepalivePingIntervalSec, 10),
			Timeout:             secOrDefault(grpcConf.KeepalivePingTimeoutSec, 5),
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s: %w", grpcConf.Endpoint, err)
	}

	return newStreamManager(conn, pb.NewGeyserClient(conn), grpcConf, blockChan), nil
}

func newStreamManager(conn *grpc.ClientConn, client pb.GeyserClient, conf config.GrpcConnConfig, blockChan chan *pb.SubscribeUpdateBlock) *GrpcStreamManager {
	return &GrpcStreamManager{
		conn:              conn,
		client:            client,
		blockChan:         blockChan,
		reconnectInterval: secOrDefault(conf.ReconnectIntervalSec, 1),
		pingInterval:      secOrDefault(conf.StreamPingIntervalSec, 10),
		sendTimeout:       secOrDefault(conf.SendTimeoutSec, 5),
		blockRecvTimeout:  secOrDefault(conf.BlockRecvTimeoutSec, 30),
		latencyWarn:       time.Duration(conf.MaxLatencyWarnMs) * time.Millisecond,
		xToken:            conf.XToken,
	}
}

func (m *GrpcStreamManager) Start() {
	m.mustConnect()
}

func (m *GrpcStreamManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
	if m.connCancel != nil {
		m.connCancel()
		m.connCancel = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
	}
}

func (m *GrpcStreamManager) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// mustConnect 循环直到连接成功或被停止
func (m *GrpcStreamManager) mustConnect() {
	for !m.isStopped() {
		if m.reconnectAttempts > 0 {
			time.Sleep(backoffInterval(m.reconnectInterval, m.reconnectAttempts))
		}
		m.reconnectAttempts++
		logger.Infof("[GrpcStream] connecting, attempt %d", m.reconnectAttempts)
		err := m.connect()
		if err == nil {
			return
		}
		logger.Warnf("[GrpcStream] connect failed: %v, will retry", err)
	}
}

// backoffInterval 前 3 次按基础间隔，之后翻倍
func backoffInterval(base time.Duration, attempts int) time.Duration {
	if attempts > 3 {
		return base * 2
	}
	return base
}

// buildSubscribeRequest 只订阅包含可解码程序的区块
func buildSubscribeRequest() *pb.SubscribeRequest {
	blocks := map[string]*pb.SubscribeRequestFilterBlocks{
		"blocks": {
			AccountInclude:      consts.GrpcAccountInclude,
			IncludeTransactions: boolPtr(true),
			IncludeAccounts:     boolPtr(false),
			IncludeEntries:      boolPtr(false),
		},
	}
	commitment := pb.CommitmentLevel_CONFIRMED
	return &pb.SubscribeRequest{
		Blocks:     blocks,
		Commitment: &commitment,
	}
}

// connect 只尝试一次连接
func (m *GrpcStreamManager) connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return errors.New("manager is stopped")
	}

	// 先关闭旧的 context，让旧 goroutine 退出
	if m.connCancel != nil {
		m.connCancel()
		m.connCancel = nil
	}
	m.connCtx, m.connCancel = context.WithCancel(context.Background())

	metaCtx := metadata.NewOutgoingContext(m.connCtx, metadata.New(map[string]string{"x-token": m.xToken}))
	stream, err := m.client.Subscribe(metaCtx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	if err := sendWithTimeout(m.connCtx, stream.Send, buildSubscribeRequest(), m.sendTimeout); err != nil {
		return fmt.Errorf("send subscribe request: %w", err)
	}

	m.stream = stream
	m.reconnectAttempts = 0
	logger.Infof("[GrpcStream] connection established, programs=%d", len(consts.GrpcAccountInclude))

	go m.pingLoop(m.connCtx, stream)
	go m.blockRecvLoop(m.connCtx, stream)
	return nil
}

func (m *GrpcStreamManager) blockRecvLoop(ctx context.Context, stream pb.Geyser_SubscribeClient) {
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		update, err := stream.Recv()
		now := time.Now()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, io.EOF) {
				logger.Warnf("[GrpcStream] stream closed by server (EOF), will reconnect")
				m.reconnect()
				return
			}
			logger.Warnf("[GrpcStream] stream error: %v", err)
			if m.reconnectIfBlockTimeout(last) {
				return
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}

		if u, ok := update.GetUpdateOneof().(*pb.SubscribeUpdate_Block); ok {
			block := u.Block
			if block.BlockTime != nil && m.latencyWarn > 0 {
				if latency := now.Sub(time.Unix(block.BlockTime.Timestamp, 0)); latency > m.latencyWarn {
					logger.Warnf("[GrpcStream] slot %d latency %v exceeds %v", block.Slot, latency, m.latencyWarn)
				}
			}
			select {
			case m.blockChan <- block:
			case <-ctx.Done():
				return
			}
			last = now
		}

		if m.reconnectIfBlockTimeout(last) {
			return
		}
	}
}

// sendWithTimeout 带超时的 Send
func sendWithTimeout[T any](ctx context.Context, sendFunc func(T) error, req T, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- sendFunc(req)
	}()

	select {
	case <-timeoutCtx.Done():
		return timeoutCtx.Err()
	case err := <-done:
		return err
	}
}

// pingLoop 应用层心跳，失败只记录日志，不触发重连
func (m *GrpcStreamManager) pingLoop(ctx context.Context, stream pb.Geyser_SubscribeClient) {
	ticker := time.NewTicker(m.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingReq := &pb.SubscribeRequest{Ping: &pb.SubscribeRequestPing{Id: 1}}
			if err := sendWithTimeout(ctx, stream.Send, pingReq, m.sendTimeout); err != nil {
				logger.Warnf("[GrpcStream] ping failed: %v", err)
			}
		}
	}
}

func (m *GrpcStreamManager) reconnectIfBlockTimeout(last time.Time) bool {
	if time.Since(last) > m.blockRecvTimeout {
		logger.Warnf("[GrpcStream] no block received for %v, reconnecting", m.blockRecvTimeout)
		m.reconnect()
		return true
	}
	return false
}

func (m *GrpcStreamManager) reconnect() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	if m.connCancel != nil {
		m.connCancel()
		m.connCancel = nil
	}
	m.mu.Unlock()

	go m.mustConnect()
}

func boolPtr(b bool) *bool {
	return &b
}

func secOrDefault(sec, def int) time.Duration {
	if sec <= 0 {
		sec = def
	}
	return time.Duration(sec) * time.Second
}
