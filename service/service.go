package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"ticketmachine/http"
	"ticketmachine/machine"
	"ticketmachine/message"
)

type Service struct {
	addr       string
	msgRouter  *message.Router
	httpRouter *echo.Echo
}

func New(
	logger watermill.LoggerAdapter,
	m *machine.Machine,
	receiptIssuer message.ReceiptIssuer,
	tracker message.TrackerAppender,
	addr string,
) (*Service, error) {
	pubSub := message.NewPubSub(logger)
	publisher := log.CorrelationPublisherDecorator{Publisher: pubSub}

	bus, err := message.NewBus(publisher, logger)
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	msgRouter, err := message.NewRouter(message.RouterDeps{
		Logger:          logger,
		Subscriber:      pubSub,
		ReceiptIssuer:   receiptIssuer,
		TrackerAppender: tracker,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message router: %w", err)
	}

	httpRouter := http.NewRouter(m, bus)

	return &Service{
		addr:       addr,
		msgRouter:  msgRouter,
		httpRouter: httpRouter,
	}, nil
}

func (s Service) Run(ctx context.Context) error {
	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.msgRouter.Run(runCtx); err != nil {
			return fmt.Errorf("running messaging router: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// Subscriptions must exist before the API can publish.
		<-s.msgRouter.Running()

		logrus.Info("Starting HTTP server...")
		err := s.httpRouter.Start(s.addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := s.httpRouter.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("waiting for shutdown: %w", err)
	}
	logrus.Info("Shutdown complete.")

	return nil
}
