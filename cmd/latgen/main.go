// cmd/latgen/main.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// latgen generates lateral flight trajectories: departure runway
// through a SID, en-route waypoints picked from the fix database, then
// a STAR to the arrival runway.
//
// Single trajectory:
//
//	latgen -from EDDF -rwy 07C -sid ANEK1X -to EDDM -arwy 08L -star ROKIL1A -o out.csv
//
// Batch mode reads one request per line from a file, each line six
// whitespace-separated fields in the same order as the flags above.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/avnav/latgen/aviation"
	"github.com/avnav/latgen/log"
	"github.com/avnav/latgen/util"
)

func main() {
	from := flag.String("from", "", "departure airport ICAO code")
	rwy := flag.String("rwy", "", "departure runway")
	sid := flag.String("sid", "", "SID name")
	to := flag.String("to", "", "arrival airport ICAO code")
	arwy := flag.String("arwy", "", "arrival runway")
	star := flag.String("star", "", "STAR name")
	output := flag.String("o", "", "output file (default stdout)")
	format := flag.String("format", "csv", "output format: csv or msgpack")
	batch := flag.String("batch", "", "file of requests, one per line")
	workers := flag.Int("workers", 4, "concurrent generations in batch mode")
	logLevel := flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir := flag.String("logdir", "", "directory for log files (default system log dir)")
	resourcesDir := flag.String("resources", "", "directory containing the navigation database")
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	if *format != "csv" && *format != "msgpack" {
		fmt.Fprintf(os.Stderr, "%s: unknown output format\n", *format)
		os.Exit(1)
	}
	if *resourcesDir != "" {
		util.SetResourcesDir(*resourcesDir)
	}

	db := aviation.LoadDatabase(lg)
	gen := aviation.NewGenerator(db, lg)

	if *batch != "" {
		if err := runBatch(gen, *batch, *output, *format, *workers); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	req := aviation.Request{
		DepartureAirport: *from,
		DepartureRunway:  *rwy,
		SID:              *sid,
		ArrivalAirport:   *to,
		ArrivalRunway:    *arwy,
		STAR:             *star,
	}
	if req.DepartureAirport == "" || req.DepartureRunway == "" || req.SID == "" ||
		req.ArrivalAirport == "" || req.ArrivalRunway == "" || req.STAR == "" {
		flag.Usage()
		os.Exit(2)
	}

	traj, err := gen.Generate(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeTrajectory(traj, *output, *format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBatch(gen *aviation.Generator, path, output, format string, workers int) error {
	reqs, err := readRequests(path)
	if err != nil {
		return err
	}

	trajs, err := gen.GenerateBatch(context.Background(), reqs, workers)
	if err != nil {
		return err
	}

	// In batch mode the output name is a prefix; each trajectory gets
	// its own numbered file.
	for i, traj := range trajs {
		name := fmt.Sprintf("%s%03d.%s", output, i, format)
		if err := writeTrajectory(traj, name, format); err != nil {
			return err
		}
	}
	return nil
}

func readRequests(path string) ([]aviation.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reqs []aviation.Request
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 6 {
			return nil, fmt.Errorf("%s:%d: expected 6 fields, got %d", path, line, len(fields))
		}
		reqs = append(reqs, aviation.Request{
			DepartureAirport: fields[0],
			DepartureRunway:  fields[1],
			SID:              fields[2],
			ArrivalAirport:   fields[3],
			ArrivalRunway:    fields[4],
			STAR:             fields[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

func writeTrajectory(traj *aviation.Trajectory, path, format string) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if format == "msgpack" {
		return traj.WriteMsgpack(w)
	}
	return traj.WriteCSV(w)
}
