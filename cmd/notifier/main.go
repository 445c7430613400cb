package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkaveh/loyalty-gateway/internal/config"
	"github.com/pkaveh/loyalty-gateway/internal/events"
	"github.com/pkaveh/loyalty-gateway/internal/notifier"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
	"github.com/pkaveh/loyalty-gateway/pkg/prom"
	"github.com/pkaveh/loyalty-gateway/pkg/redis"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	stream, err := events.NewStream(redisAdap, events.StreamConfig{
		Name:              config.Get().StreamName,
		ConsumerGroup:     config.Get().StreamConsumerGroup,
		ConsumerName:      config.Get().StreamConsumerName,
		VisibilityTimeout: config.Get().StreamVisibilityTimeout,
		PollInterval:      config.Get().StreamPollInterval,
		BatchSize:         config.Get().StreamBatchSize,
		MaxLen:            config.Get().StreamMaxLen,
	})
	if err != nil {
		logger.Error("failed creating accrual stream", "error", err)
		return
	}

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	go func() {
		prom.ListenAndServer(":9100", "/metrics")
	}()

	n := notifier.New(redisAdap, config.Get().NotifierWorkers)
	if err := n.Start(); err != nil {
		logger.Error("failed to start notifier pool", "error", err)
		return
	}

	if err := stream.Consume(n.Handle); err != nil {
		logger.Error("failed to start consuming accrual events", "error", err)
		return
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	stream.Close()
	n.Stop()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
