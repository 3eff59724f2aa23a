package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"edusp-proxy/internal/config"
	"edusp-proxy/internal/gateway"
	"edusp-proxy/internal/logging"
	"edusp-proxy/internal/version"
)

var gw *gateway.Gateway

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	gw = gateway.FromConfig(cfg, logging.New(cfg.Log), version.Version)
}

func main() {
	awslambda.Start(gw.HandleAPIGateway)
}
