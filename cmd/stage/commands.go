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
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/audio"
	"github.com/livekit/livekit-stage/pkg/broadcast"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/layout"
	"github.com/livekit/livekit-stage/pkg/renderer"
	"github.com/livekit/livekit-stage/pkg/scenario"
	"github.com/livekit/livekit-stage/pkg/simcall"
	"github.com/livekit/livekit-stage/pkg/stage"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-stage/pkg/view"
)

const hostStatsInterval = 10 * time.Second

func startStage(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}
	if err = conf.Validate(); err != nil {
		return err
	}

	prometheus.Init()
	stopHostStats := prometheus.StartHostStats(hostStatsInterval)
	defer stopHostStats()

	room := simcall.NewRoom(logger.GetLogger())
	gestures := simcall.NewGestures()

	unlocker, err := audio.NewUnlocker(audio.UnlockerParams{
		Config:    conf.Audio,
		UserAgent: conf.Call.UserAgent,
		Factory:   simcall.NewAudioContext,
		Gestures:  gestures,
	})
	if err != nil {
		return errors.Wrap(err, "create audio unlocker")
	}
	defer unlocker.Close()

	registry := renderer.NewRegistry(renderer.RegistryParams{
		Factory: simcall.NewPlayer,
		Audio:   unlocker,
		Config:  conf.Renderer,
	})
	defer registry.Close()
	unlocker.Init(registry)

	channel := broadcast.NewChannel()
	defer channel.Close()

	engine := stage.NewEngine(stage.EngineParams{
		Session:  room.NewSession(simcall.SessionParams{ID: types.ParticipantID(conf.Call.Identity), StartMedia: true}),
		Registry: registry,
		Audio:    unlocker,
		Channel:  channel,
		Config:   conf.EngineConfig(),
		Identity: types.Identity{UserName: conf.Call.Identity},
		RoomURL:  conf.Call.RoomURL,
	})
	defer engine.Close()

	server := view.NewServer(conf, view.ServerParams{
		Engine:    engine,
		Channel:   channel,
		Renderer:  registry,
		OnGesture: gestures.Fire,
	})
	engine.OnCallEnded(server.Stop)

	if err = engine.Join(c.Context); err != nil {
		return errors.Wrap(err, "join call")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-sigChan
		logger.Infow("exit requested, leaving call", "signal", sig)
		if err := engine.Leave(); err != nil {
			server.Stop()
		}
	}()

	return server.Start()
}

func replayScenario(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}
	if err = conf.Validate(); err != nil {
		return err
	}

	s, err := scenario.Load(c.String("scenario"))
	if err != nil {
		return err
	}

	report, err := scenario.Run(c.Context, s, scenario.RunParams{Config: conf.EngineConfig()})
	if err != nil {
		return err
	}

	if c.Bool("json") {
		out, err := json.MarshalIndent(report.State, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printResults(report)
	printParticipants(report.State)
	return printSummary(report)
}

func printResults(report *scenario.Report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Step", "Action", "Result", "Elapsed"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, res := range report.Results {
		result := "ok"
		if res.Err != nil {
			result = res.Err.Error()
		}
		table.Append([]string{
			strconv.Itoa(res.Step),
			res.Action,
			result,
			res.Elapsed.Round(time.Microsecond).String(),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d rejected", report.Failed()), report.Duration.Round(time.Millisecond).String()})
	table.Render()
}

func printParticipants(st stage.State) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Role", "Camera", "Mic", "Screen", "Volume"})

	for _, p := range st.Participants {
		id := string(p.ID)
		if p.Local {
			id += " (local)"
		}
		role := string(p.Role)
		if !p.RoleConfirmed {
			role += "*"
		}
		table.Append([]string{
			id,
			p.UserName,
			role,
			onOff(p.Video),
			onOff(p.Audio),
			onOff(p.ScreenVideo),
			strconv.FormatFloat(p.Volume, 'f', 2, 64),
		})
	}
	table.Render()
}

func printSummary(report *scenario.Report) error {
	st := report.State
	fmt.Println("Call:", st.CallState)
	fmt.Println("Layout:", st.Layout)
	if st.ScreenShareOwner != "" {
		fmt.Println("Screen share:", st.ScreenShareOwner)
	}
	if st.ActiveSpeaker != "" {
		fmt.Println("Active speaker:", st.ActiveSpeaker)
	}
	fmt.Println("Live:", st.Live)
	fmt.Println("Recording:", st.Recording)
	if st.Error != "" {
		fmt.Println("Error:", st.Error)
	}

	if report.Live != nil {
		out, err := json.Marshal(report.Live)
		if err != nil {
			return err
		}
		fmt.Printf("Composition: %s, %d video, %s\n",
			report.Live.Mode, len(report.Live.Participants.Video), humanize.Bytes(uint64(len(out))))
	}
	return nil
}

func printLayout(c *cli.Context) error {
	family := types.Layout(c.String("family"))
	if !family.Valid() {
		return stage.ErrInvalidLayout
	}

	counts := []int{c.Int("count")}
	if counts[0] <= 0 {
		counts = []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	}

	layoutConfig := layout.DefaultConfig
	if c.String("config") != "" || c.String("config-body") != "" {
		conf, err := getConfig(c)
		if err != nil {
			return err
		}
		layoutConfig = conf.Layout
	}
	calculator := layout.NewCalculator(layoutConfig)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Tiles", "Cols", "Rows", "Tile", "Tile Area", "Dominant"})

	for _, count := range counts {
		g, ok := calculator.Compute(family, c.Int("width"), c.Int("height"), count)
		if !ok {
			return fmt.Errorf("no local geometry for %s at %dx%d", family, c.Int("width"), c.Int("height"))
		}
		dominant := "-"
		if g.Dominant.Area() > 0 {
			dominant = fmt.Sprintf("%dx%d", g.Dominant.Width, g.Dominant.Height)
		}
		table.Append([]string{
			strconv.Itoa(count),
			strconv.Itoa(g.Cols),
			strconv.Itoa(g.Rows),
			fmt.Sprintf("%dx%d", g.Tile.Width, g.Tile.Height),
			humanize.Comma(int64(g.Tile.Area())),
			dominant,
		})
	}
	table.Render()
	return nil
}

func helpVerbose(c *cli.Context) error {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, false)
	if err != nil {
		return err
	}

	c.App.Flags = append(baseFlags, generatedFlags...)
	return cli.ShowAppHelp(c)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
