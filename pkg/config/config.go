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

package config

import (
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/audio"
	"github.com/livekit/livekit-stage/pkg/layout"
	"github.com/livekit/livekit-stage/pkg/renderer"
	"github.com/livekit/livekit-stage/pkg/stage"
	"github.com/livekit/livekit-stage/pkg/stage/composition"
)

const (
	generatedCLIFlagUsage = "generated"
	envPrefix             = "STAGE_"
)

var (
	ErrInvalidSplit        = errors.New("split fractions must be between 0 and 1")
	ErrInvalidAspectRatio  = errors.New("aspect ratio must be positive")
	ErrInvalidPingInterval = errors.New("view ping interval must be positive")
	ErrEmptyEndpoint       = errors.New("broadcast endpoints cannot be empty")
)

type Config struct {
	Logging        LoggingConfig   `yaml:"logging,omitempty"`
	Call           CallConfig      `yaml:"call,omitempty"`
	Session        stage.Config    `yaml:"session,omitempty"`
	Layout         layout.Config   `yaml:"layout,omitempty"`
	Broadcast      BroadcastConfig `yaml:"broadcast,omitempty"`
	Audio          audio.Config    `yaml:"audio,omitempty"`
	Renderer       renderer.Config `yaml:"renderer,omitempty"`
	View           ViewConfig      `yaml:"view,omitempty"`
	PrometheusPort uint32          `yaml:"prometheus_port,omitempty"`

	Development bool `yaml:"development,omitempty"`
}

type LoggingConfig struct {
	logger.Config `yaml:",inline"`
}

type CallConfig struct {
	RoomURL  string `yaml:"room_url,omitempty"`
	Identity string `yaml:"identity,omitempty"`
	// user agent of the browser hosting the view, used to decide whether audio needs unlocking
	UserAgent string `yaml:"user_agent,omitempty"`
}

type BroadcastConfig struct {
	Endpoints          []string `yaml:"endpoints,omitempty"`
	composition.Config `yaml:",inline"`
}

type ViewConfig struct {
	Port           uint32        `yaml:"port,omitempty"`
	BindAddresses  []string      `yaml:"bind_addresses,omitempty"`
	AllowedOrigins []string      `yaml:"allowed_origins,omitempty"`
	PingInterval   time.Duration `yaml:"ping_interval,omitempty"`
	PingTimeout    time.Duration `yaml:"ping_timeout,omitempty"`
	WriteTimeout   time.Duration `yaml:"write_timeout,omitempty"`
}

var DefaultConfig = Config{
	Call: CallConfig{
		RoomURL:  "loopback://stage",
		Identity: "host",
	},
	Session:   stage.DefaultConfig,
	Layout:    layout.DefaultConfig,
	Broadcast: BroadcastConfig{Config: composition.DefaultConfig},
	Audio:     audio.DefaultConfig,
	Renderer:  renderer.DefaultConfig,
	View: ViewConfig{
		Port:           7890,
		AllowedOrigins: []string{"*"},
		PingInterval:   10 * time.Second,
		PingTimeout:    2 * time.Second,
		WriteTimeout:   5 * time.Second,
	},
}

func NewConfig(confString string, strictMode bool, c *cli.Context, baseFlags []cli.Flag) (*Config, error) {
	// start with defaults
	marshalled, err := yaml.Marshal(&DefaultConfig)
	if err != nil {
		return nil, err
	}

	var conf Config
	err = yaml.Unmarshal(marshalled, &conf)
	if err != nil {
		return nil, err
	}

	if confString != "" {
		decoder := yaml.NewDecoder(strings.NewReader(confString))
		decoder.KnownFields(strictMode)
		if err := decoder.Decode(&conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		if err := conf.updateFromCLI(c, baseFlags); err != nil {
			return nil, err
		}
	}

	// expand env vars in asset paths
	if asset := conf.Broadcast.ImageOverlay.AssetRef; asset != "" && !strings.Contains(asset, "://") {
		file, err := homedir.Expand(os.ExpandEnv(asset))
		if err != nil {
			return nil, err
		}
		conf.Broadcast.ImageOverlay.AssetRef = file
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "could not validate config")
	}

	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
		if conf.Development {
			conf.Logging.Level = "debug"
		}
	}

	return &conf, nil
}

func (conf *Config) Validate() error {
	for _, split := range []float64{
		conf.Layout.VerticalSplit,
		conf.Layout.HorizontalSplit,
		conf.Broadcast.VerticalSplit,
		conf.Broadcast.HorizontalSplit,
		conf.Broadcast.PresentationSplit,
	} {
		if split <= 0 || split >= 1 {
			return ErrInvalidSplit
		}
	}
	if conf.Layout.AspectRatio <= 0 {
		return ErrInvalidAspectRatio
	}
	if conf.View.PingInterval <= 0 {
		return ErrInvalidPingInterval
	}
	if slices.Contains(conf.Broadcast.Endpoints, "") {
		return ErrEmptyEndpoint
	}
	return nil
}

// EngineConfig folds the broadcast and layout sections into the session settings
func (conf *Config) EngineConfig() stage.Config {
	c := conf.Session
	c.Endpoints = slices.Clone(conf.Broadcast.Endpoints)
	c.Composition = conf.Broadcast.Config
	c.Layout = conf.Layout
	return c
}

type configNode struct {
	TypeNode  reflect.Value
	TagPrefix string
}

func (conf *Config) ToCLIFlagNames(existingFlags []cli.Flag) map[string]reflect.Value {
	existingFlagNames := map[string]bool{}
	for _, flag := range existingFlags {
		for _, flagName := range flag.Names() {
			existingFlagNames[flagName] = true
		}
	}

	flagNames := map[string]reflect.Value{}
	var currNode configNode
	nodes := []configNode{{reflect.ValueOf(conf).Elem(), ""}}
	for len(nodes) > 0 {
		currNode, nodes = nodes[0], nodes[1:]
		for i := 0; i < currNode.TypeNode.NumField(); i++ {
			// inspect yaml tag from struct field to get path
			field := currNode.TypeNode.Type().Field(i)
			yamlTagArray := strings.SplitN(field.Tag.Get("yaml"), ",", 2)
			yamlTag := yamlTagArray[0]
			isInline := len(yamlTagArray) > 1 && yamlTagArray[1] == "inline"
			if (yamlTag == "" && (!isInline || currNode.TagPrefix == "")) || yamlTag == "-" {
				continue
			}
			yamlPath := yamlTag
			if currNode.TagPrefix != "" {
				if isInline {
					yamlPath = currNode.TagPrefix
				} else {
					yamlPath = fmt.Sprintf("%s.%s", currNode.TagPrefix, yamlTag)
				}
			}
			if existingFlagNames[yamlPath] {
				continue
			}

			// map flag name to value
			value := currNode.TypeNode.Field(i)
			if value.Kind() == reflect.Struct {
				nodes = append(nodes, configNode{value, yamlPath})
			} else {
				flagNames[yamlPath] = value
			}
		}
	}

	return flagNames
}

func GenerateCLIFlags(existingFlags []cli.Flag, hidden bool) ([]cli.Flag, error) {
	blankConfig := &Config{}
	flags := make([]cli.Flag, 0)
	for name, value := range blankConfig.ToCLIFlagNames(existingFlags) {
		kind := value.Kind()
		if kind == reflect.Ptr {
			kind = value.Type().Elem().Kind()
		}
		envVar := envPrefix + strings.ToUpper(strings.Replace(name, ".", "_", -1))

		var flag cli.Flag
		switch kind {
		case reflect.Bool:
			flag = &cli.BoolFlag{
				Name:   name,
				Usage:  generatedCLIFlagUsage,
				Hidden: hidden,
			}
		case reflect.String:
			flag = &cli.StringFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Int, reflect.Int32:
			flag = &cli.IntFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Int64:
			if value.Type() == reflect.TypeOf(time.Duration(0)) {
				flag = &cli.DurationFlag{
					Name:    name,
					EnvVars: []string{envVar},
					Usage:   generatedCLIFlagUsage,
					Hidden:  hidden,
				}
				break
			}
			flag = &cli.Int64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			flag = &cli.Uint64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Float32, reflect.Float64:
			flag = &cli.Float64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Slice, reflect.Map:
			// lists and maps are only settable from yaml
			continue
		default:
			return flags, fmt.Errorf("cli flag generation unsupported for config type: %s is a %s", name, kind.String())
		}

		flags = append(flags, flag)
	}

	return flags, nil
}

func (conf *Config) updateFromCLI(c *cli.Context, baseFlags []cli.Flag) error {
	generatedFlagNames := conf.ToCLIFlagNames(baseFlags)
	for _, flag := range c.App.Flags {
		flagName := flag.Names()[0]

		// the `c.App.Name != "test"` check is needed because `c.IsSet(...)` is always false in unit tests
		if !c.IsSet(flagName) && c.App.Name != "test" {
			continue
		}

		configValue, ok := generatedFlagNames[flagName]
		if !ok {
			continue
		}

		kind := configValue.Kind()
		if kind == reflect.Ptr {
			// instantiate value to be set
			configValue.Set(reflect.New(configValue.Type().Elem()))

			kind = configValue.Type().Elem().Kind()
			configValue = configValue.Elem()
		}

		switch kind {
		case reflect.Bool:
			configValue.SetBool(c.Bool(flagName))
		case reflect.String:
			configValue.SetString(c.String(flagName))
		case reflect.Int, reflect.Int32:
			configValue.SetInt(int64(c.Int(flagName)))
		case reflect.Int64:
			if configValue.Type() == reflect.TypeOf(time.Duration(0)) {
				configValue.SetInt(int64(c.Duration(flagName)))
			} else {
				configValue.SetInt(c.Int64(flagName))
			}
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			configValue.SetUint(c.Uint64(flagName))
		case reflect.Float32, reflect.Float64:
			configValue.SetFloat(c.Float64(flagName))
		default:
			return fmt.Errorf("unsupported generated cli flag type for config: %s is a %s", flagName, kind.String())
		}
	}

	if c.IsSet("dev") {
		conf.Development = c.Bool("dev")
	}
	if c.IsSet("port") {
		conf.View.Port = uint32(c.Uint("port"))
	}
	if c.IsSet("bind") {
		conf.View.BindAddresses = c.StringSlice("bind")
	}
	if c.IsSet("user-agent") {
		conf.Call.UserAgent = c.String("user-agent")
	}
	if c.IsSet("endpoint") {
		conf.Broadcast.Endpoints = c.StringSlice("endpoint")
	}
	return nil
}

// Note: only pass in logr.Logger with default depth
func SetLogger(l logger.Logger) {
	logger.SetLogger(l, "stage")
}

func InitLoggerFromConfig(config *LoggingConfig) {
	logger.InitFromConfig(config.Config, "stage")
}
