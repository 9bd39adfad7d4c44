// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/version"
)

var baseFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:  "bind",
		Usage: "IP address the view feed listens on, use flag multiple times to specify multiple addresses",
	},
	&cli.StringFlag{
		Name:  "config",
		Usage: "path to stage config file",
	},
	&cli.StringFlag{
		Name:    "config-body",
		Usage:   "stage config in YAML, typically passed in as an environment var in a container",
		EnvVars: []string{"STAGE_CONFIG"},
	},
	&cli.UintFlag{
		Name:    "port",
		Usage:   "port of the view feed",
		EnvVars: []string{"STAGE_PORT"},
	},
	&cli.StringFlag{
		Name:    "user-agent",
		Usage:   "user agent of the hosting browser, decides whether the audio unlock workaround runs",
		EnvVars: []string{"STAGE_USER_AGENT"},
	},
	&cli.StringSliceFlag{
		Name:    "endpoint",
		Usage:   "RTMP endpoint of the live stream, use flag multiple times to specify multiple endpoints",
		EnvVars: []string{"STAGE_ENDPOINTS"},
	},
	// debugging flags
	&cli.BoolFlag{
		Name:  "dev",
		Usage: "sets log-level to debug and console formatter",
	},
	&cli.BoolFlag{
		Name:   "disable-strict-config",
		Usage:  "disables strict config parsing",
		Hidden: true,
	},
}

func main() {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, true)
	if err != nil {
		fmt.Println(err)
	}

	app := &cli.App{
		Name:        "livekit-stage",
		Usage:       "Stage and backstage session engine for live broadcasts",
		Description: "run without subcommands to join the call and serve the view feed",
		Flags:       append(baseFlags, generatedFlags...),
		Action:      startStage,
		Commands: []*cli.Command{
			{
				Name:   "replay",
				Usage:  "plays a scripted call against the engine and prints the resulting state",
				Action: replayScenario,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "scenario",
						Usage:    "path to the scenario file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the final state as JSON",
					},
				},
			},
			{
				Name:   "layout",
				Usage:  "prints the grid geometry for a viewport",
				Action: printLayout,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "width",
						Value: 1280,
					},
					&cli.IntFlag{
						Name:  "height",
						Value: 720,
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "number of tiles, prints 1 to 9 when unset",
					},
					&cli.StringFlag{
						Name:  "family",
						Usage: "layout family, grid or pinned-vertical or pinned-horizontal",
						Value: "grid",
					},
				},
			},
			{
				Name:   "help-verbose",
				Usage:  "prints app help, including all generated configuration flags",
				Action: helpVerbose,
			},
		},
		Version: version.Version,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
	}
}

func getConfig(c *cli.Context) (*config.Config, error) {
	confString, err := getConfigString(c.String("config"), c.String("config-body"))
	if err != nil {
		return nil, err
	}

	strictMode := true
	if c.Bool("disable-strict-config") {
		strictMode = false
	}

	conf, err := config.NewConfig(confString, strictMode, c, baseFlags)
	if err != nil {
		return nil, err
	}
	config.InitLoggerFromConfig(&conf.Logging)

	if c.String("config") == "" && c.String("config-body") == "" && conf.Development {
		logger.Infow("starting in development mode")

		// when dev mode and no config, only serve views on this machine
		if conf.View.BindAddresses == nil {
			conf.View.BindAddresses = []string{
				"127.0.0.1",
				"[::1]",
			}
		}
	}
	return conf, nil
}

func getConfigString(configFile string, inConfigBody string) (string, error) {
	if inConfigBody != "" || configFile == "" {
		return inConfigBody, nil
	}

	outConfigBody, err := os.ReadFile(configFile)
	if err != nil {
		return "", err
	}

	return string(outConfigBody), nil
}
