package logger

import (
	"go.uber.org/zap"
)

// NewNamed builds a zap logger for the given environment and names it after
// the service. Development gets a console encoder, everything else JSON.
func NewNamed(env, service string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)

	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return l.Named(service), nil
}
