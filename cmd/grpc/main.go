package main

import (
	"context"
	"flag"
	"fmt"
	"runtime/debug"

	"ix-decoder-sol/internal/config"
	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/logic/decoder"
	"ix-decoder-sol/internal/logic/grpc"
	"ix-decoder-sol/internal/pkg/logger"
	"ix-decoder-sol/internal/svc"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"
)

var configFile = flag.String("f", "etc/grpc.yaml", "the config file")

// progressLoops 以 go-zero Service 形式托管进度落库与 GC 循环
type progressLoops struct {
	sc     *svc.GrpcServiceContext
	ctx    context.Context
	cancel context.CancelFunc
}

func newProgressLoops(sc *svc.GrpcServiceContext) *progressLoops {
	ctx, cancel := context.WithCancel(context.Background())
	return &progressLoops{sc: sc, ctx: ctx, cancel: cancel}
}

func (l *progressLoops) Start() {
	pc := l.sc.Config.ProgressConf
	if pc.GCIntervalMin > 0 {
		go l.sc.ProgressManager.StartGCLoop(l.ctx, pc.GCInterval(), pc.KeepSlots)
	}
	l.sc.ProgressManager.StartFlushLoop(l.ctx, pc.FlushInterval())
}

func (l *progressLoops) Stop() {
	l.cancel()
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	for program := range consts.DecodablePrograms {
		if !decoder.IsSupported(program.String()) {
			logx.Must(fmt.Errorf("program %s has no decoder", program))
		}
	}

	var c config.GrpcConfig
	config.MustLoad(*configFile, &c)
	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		logx.Must(err)
	}
	defer func() { _ = logger.Sync() }()

	serviceContext, err := svc.NewGrpcServiceContext(c)
	logx.Must(err)
	defer serviceContext.Close()

	sg := zerosvc.NewServiceGroup()
	defer sg.Stop()

	var checker *grpc.SlotChecker
	if c.RpcEndpoint != "" {
		checker = grpc.NewSlotChecker(c.RpcEndpoint)
		sg.Add(checker)
	}

	blockChan := make(chan *pb.SubscribeUpdateBlock, 200)
	sg.Add(grpc.NewBlockProcessor(serviceContext, blockChan, checker))
	sg.Add(newProgressLoops(serviceContext))

	grpcService, err := grpc.NewGrpcStreamManager(serviceContext, blockChan)
	logx.Must(err)
	sg.Add(grpcService)

	logx.Infof("Starting grpc decoder service, programs=%v", decoder.SupportedPrograms())

	// Start 会阻塞，收到退出信号后 go-zero 会调用各服务的 Stop
	sg.Start()
}
