package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"ticketmachine/entity"
	"ticketmachine/machine"
	"ticketmachine/report"
	"ticketmachine/service"
)

func main() {
	log.Init(logrus.InfoLevel)
	logger := watermill.NewStdLogger(false, false)

	if err := run(logger); err != nil {
		logger.Error("failed to run", err, nil)
	}
}

func run(logger watermill.LoggerAdapter) error {
	m := machine.New("Central", time.Now)
	for _, s := range stockStations() {
		if err := m.AddStation(s); err != nil {
			return fmt.Errorf("seeding station %q: %w", s.Name, err)
		}
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	svc, err := service.New(logger, m, report.NewReceiptPrinter(), report.NewTracker(), addr)
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return svc.Run(ctx)
}

func stockStations() []entity.Station {
	return []entity.Station{
		{Name: "London", SinglePrice: decimal.NewFromFloat(12.50), ReturnPrice: decimal.NewFromFloat(20.00)},
		{Name: "Bristol", SinglePrice: decimal.NewFromFloat(8.00), ReturnPrice: decimal.NewFromFloat(14.00)},
		{Name: "Oxford", SinglePrice: decimal.NewFromFloat(6.50), ReturnPrice: decimal.NewFromFloat(11.00)},
	}
}
