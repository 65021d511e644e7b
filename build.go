package main

import (
	"github.com/iplocator/iplocator/builder"
	"github.com/iplocator/iplocator/config"
)

func mainBuild(conf *config.Config) error {
	build := conf.GetBuild()

	_, err := builder.Regenerate(builder.Options{
		IPv4Files: build.GetIPv4Sources(),
		IPv6Files: build.GetIPv6Sources(),
		Limit:     build.GetLimit(),
		Output:    conf.GetTablePath(),
	})

	return err
}
