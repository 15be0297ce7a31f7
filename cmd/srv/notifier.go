package main

import (
	"os/signal"
	"syscall"

	"github.com/questx-lab/questboard/internal/domain/notification"
	"github.com/questx-lab/questboard/pkg/kafka"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startNotifier(*cli.Context) error {
	s.loadDatabase()
	s.migrateDB()
	s.loadRepos()

	cfg := xcontext.Configs(s.ctx)
	consumer := notification.NewConsumer(s.notificationRepo)
	subscriber, err := kafka.NewSubscriber(
		"notifier",
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Kafka.NotificationTopic},
		consumer.Handle,
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	xcontext.Logger(s.ctx).Infof("Notifier is consuming topic %s", cfg.Kafka.NotificationTopic)
	subscriber.Subscribe(ctx)
	return subscriber.Stop(s.ctx)
}
