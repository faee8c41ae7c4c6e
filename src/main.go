package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"nextstop/src/config"
	"nextstop/src/counter"
	"nextstop/src/dispatcher"
	"nextstop/src/elev"
	"nextstop/src/timer"
	"nextstop/src/types"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	startFloor := flag.Int("floor", 0, "Floor the elevator starts at")
	startDir := flag.String("dir", "up", "Direction the elevator starts in, up or down")
	logLevel := flag.String("log", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	level, err := elev.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	elev.InitLogger(os.Stderr, level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Could not load config", "error", err)
		os.Exit(1)
	}
	dir, err := parseDirection(*startDir)
	if err != nil {
		slog.Error("Invalid start direction", "error", err)
		os.Exit(2)
	}

	presses := counter.New(
		counter.WithMaxAge(cfg.MaxEventAge),
		counter.WithCleaningThreshold(cfg.CleaningThreshold),
	)
	statusTimeout, statusAction := timer.Init(cfg.StatusInterval)
	statusAction <- timer.Start
	lines := readLines(bufio.NewScanner(os.Stdin))

	floor := *startFloor
	slog.Info("Elevator ready", "floor", floor, "dir", dir)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				logStatus(presses, cfg)
				return
			}
			buttons := strings.Fields(line)
			for range buttons {
				presses.OnEvent()
			}
			floor, dir = dispatch(floor, dir, buttons)
		case <-statusTimeout:
			logStatus(presses, cfg)
			statusAction <- timer.Start
		}
	}
}

// dispatch prints the next stop and planned route for the pressed buttons,
// and returns the position after travelling to the next stop.
func dispatch(floor int, dir types.MotorDirection, buttons []string) (int, types.MotorDirection) {
	next, err := dispatcher.NextFloor(floor, dir, buttons)
	if errors.Is(err, dispatcher.ErrInvalidDispatchState) {
		slog.Warn("No calls ahead, reversing", "floor", floor, "dir", dir)
		dir = dispatcher.OppositeDirection(dir)
		next, err = dispatcher.NextFloor(floor, dir, buttons)
	}
	if err != nil {
		slog.Error("Could not dispatch", "buttons", buttons, "error", err)
		return floor, dir
	}

	btns, _ := dispatcher.ParseButtonCommands(buttons)
	route, err := dispatcher.Route(floor, dir, btns)
	if err != nil {
		slog.Error("Could not plan route", "buttons", buttons, "error", err)
	}
	fmt.Printf("next=%d route=%v eta=%v\n", next, route, dispatcher.EstimateDuration(floor, route))

	switch {
	case next > floor:
		dir = types.MD_Up
	case next < floor:
		dir = types.MD_Down
	}
	return next, dir
}

func logStatus(presses *counter.EventCounter, cfg config.Config) {
	attrs := make([]any, 0, 2*len(cfg.StatusWindows))
	for _, window := range cfg.StatusWindows {
		attrs = append(attrs, window.String(), presses.Count(window))
	}
	slog.Info("Button presses", attrs...)
}

func readLines(scanner *bufio.Scanner) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			slog.Error("Reading input failed", "error", err)
		}
	}()
	return lines
}

func parseDirection(s string) (types.MotorDirection, error) {
	switch strings.ToLower(s) {
	case "up", "u":
		return types.MD_Up, nil
	case "down", "d":
		return types.MD_Down, nil
	}
	return types.MD_Up, fmt.Errorf("unknown direction %q", s)
}
