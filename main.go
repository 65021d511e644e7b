package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/iplocator/iplocator/config"
)

const version = "1.0.0"

var (
	app = kingpin.New(
		"iplocator",
		"Offline IP to country, province and city lookup service")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("IPLOCATOR_DEBUG").
		Bool()
	logLevel = app.Flag("log-level", "Log level of build messages.").
			Envar("LOG_LEVEL").
			Default("info").
			Enum("debug", "info", "warn", "error")
	configPath = app.Flag("config", "Path to the TOML or HJSON config.").
			Short('c').
			Envar("IPLOCATOR_CONFIG").
			ExistingFile()

	serveCommand = app.Command("serve", "Serve lookups over HTTP.").Default()
	serveListen  = serveCommand.Flag("listen", "host:port to listen on.").
			Envar("IPLOCATOR_LISTEN").
			String()
	serveTablePath = serveCommand.Flag("table", "Path to the table artifact.").
			Envar("IPLOCATOR_TABLE_PATH").
			String()
	serveStaticDir = serveCommand.Flag("static-dir", "Directory with static files.").
			Envar("IPLOCATOR_STATIC_DIR").
			String()
	serveRequestTimeout = serveCommand.Flag("request-timeout", "Timeout of a single request.").
				Envar("IPLOCATOR_REQUEST_TIMEOUT").
				Duration()

	buildCommand = app.Command("build", "Regenerate a table artifact from sources.")
	buildIPv4    = buildCommand.Flag("ipv4", "IPv4 source file. Can be repeated.").
			Strings()
	buildIPv6 = buildCommand.Flag("ipv6", "IPv6 source file. Can be repeated.").
			Strings()
	buildLimit = buildCommand.Flag("limit", "Max records per source file, 0 is unbounded.").
			Envar("IPLOCATOR_BUILD_LIMIT").
			Default("-1").
			Int()
	buildOutput = buildCommand.Flag("output", "Path to the table artifact.").
			Short('o').
			Envar("IPLOCATOR_TABLE_PATH").
			String()

	dumpCommand   = app.Command("dump", "Print ranges of the table artifact.")
	dumpTablePath = dumpCommand.Flag("table", "Path to the table artifact.").
			Envar("IPLOCATOR_TABLE_PATH").
			String()
	dumpFamily = dumpCommand.Arg("family", "Address family to print.").
			Default("ipv4").
			Enum("ipv4", "ipv6")
)

func init() {
	app.Version(version)
	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	godotenv.Load(".env") // nolint: errcheck

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if level, err := log.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	}

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := loadConfig()
	if err != nil {
		log.Fatal(err.Error())
	}

	switch command {
	case buildCommand.FullCommand():
		err = mainBuild(conf)
	case dumpCommand.FullCommand():
		err = mainDump(conf, os.Stdout)
	default:
		err = mainServe(conf)
	}

	if err != nil {
		log.Fatal(err.Error())
	}
}

func loadConfig() (*config.Config, error) {
	conf := &config.Config{}

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}

		conf = loaded
	}

	overrideConfig(conf)

	return conf, conf.Validate()
}

func overrideConfig(conf *config.Config) {
	if *serveListen != "" {
		conf.Listen = *serveListen
	}

	if *serveStaticDir != "" {
		conf.StaticDir = *serveStaticDir
	}

	if *serveRequestTimeout != 0 {
		conf.RequestTimeout.Duration = *serveRequestTimeout
	}

	for _, v := range []string{*serveTablePath, *buildOutput, *dumpTablePath} {
		if v != "" {
			conf.TablePath = v
		}
	}

	if len(*buildIPv4) > 0 {
		conf.Build.IPv4Sources = *buildIPv4
	}

	if len(*buildIPv6) > 0 {
		conf.Build.IPv6Sources = *buildIPv6
	}

	if *buildLimit >= 0 {
		conf.Build.Limit = *buildLimit
	}
}
