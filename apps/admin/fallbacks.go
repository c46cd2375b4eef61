package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/arbitres/console/core/fetch"
)

func (cli *commandLine) fallbacks(filter fetch.EventFilter) error {
	events, err := cli.svcs.Recorder.Query(cli.requestContext(), filter)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(cli.out, "No events.")
		return nil
	}

	rows := make([][]string, 0, len(events))
	for _, evt := range events {
		rows = append(rows, []string{
			evt.At.Local().Format(time.DateTime), evt.Resource, evt.Period, evt.RefDate,
			strconv.FormatBool(evt.UsedFallback), evt.ErrorKind, evt.Error,
		})
	}
	renderTable(cli.out, []string{"At", "Resource", "Period", "Date", "Fallback", "Kind", "Error"}, rows)
	return nil
}
