package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"bistro/config"
	"bistro/database"
	"bistro/database/dbhelper"
	"bistro/events"
	"bistro/handlers"
	"bistro/server"
	"bistro/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.Init()

	if err := database.ConnectAndMigrate(config.App.DatabaseURL); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	var publisher events.Publisher = events.NopPublisher{}
	if config.App.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(config.App.AMQPURL)
		if err != nil {
			logrus.WithError(err).Warn("event broker unavailable, order events disabled")
		} else {
			publisher = amqpPublisher
			defer amqpPublisher.Close()
		}
	}

	menuStore := dbhelper.NewMenu(database.Bistro)
	cartStore := dbhelper.NewCart(database.Bistro)
	orderStore := dbhelper.NewOrders(database.Bistro)
	userStore := dbhelper.NewUsers(database.Bistro)

	api := handlers.New(
		services.NewMenu(menuStore),
		services.NewCart(menuStore, cartStore),
		services.NewOrders(orderStore, userStore, publisher),
		services.NewGroups(userStore),
		userStore,
	)

	svr := server.SetupRoutes(api)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("listening on %s", config.App.Addr)
		if err := svr.Run(config.App.Addr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Panic("server stopped unexpectedly")
		}
	}()

	<-done
	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		logrus.WithError(err).Error("failed to shut down server cleanly")
	}
	if err := database.ShutdownDatabase(); err != nil {
		logrus.WithError(err).Error("failed to close database connection")
	}
}
