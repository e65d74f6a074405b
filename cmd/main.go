package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"kursapi/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
