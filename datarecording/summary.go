package datarecording

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
)

// Summary condenses the iterations of a recorded run.
type Summary struct {
	Exec       []ExecInfo
	Iterations int
	PerChannel map[string]int

	MinElapsedMs  int64
	MaxElapsedMs  int64
	MeanElapsedMs float64
}

// Summarize reads the exec_info and disco_iteration tables.
func Summarize(ctx context.Context, reader Reader) (Summary, error) {
	reader.MapTable(ExecInfoTable, ExecInfo{})
	reader.MapTable(IterationTable, IterationEntry{})

	s := Summary{PerChannel: make(map[string]int)}

	execRows, _, err := reader.Query(ctx, ExecInfoTable, QueryParams{})
	if err != nil {
		return s, err
	}

	for _, row := range execRows {
		s.Exec = append(s.Exec, *row.(*ExecInfo))
	}

	rows, _, err := reader.Query(ctx, IterationTable,
		QueryParams{OrderBy: "Seq"})
	if err != nil {
		return s, err
	}

	var total int64

	s.MinElapsedMs = math.MaxInt64

	for _, row := range rows {
		entry := row.(*IterationEntry)

		s.Iterations++
		s.PerChannel[entry.Big]++
		total += entry.ElapsedMs
		s.MinElapsedMs = min(s.MinElapsedMs, entry.ElapsedMs)
		s.MaxElapsedMs = max(s.MaxElapsedMs, entry.ElapsedMs)
	}

	if s.Iterations == 0 {
		s.MinElapsedMs = 0
		return s, nil
	}

	s.MeanElapsedMs = float64(total) / float64(s.Iterations)

	return s, nil
}

// Write prints the summary in a human readable form.
func (s Summary) Write(w io.Writer) error {
	for _, info := range s.Exec {
		if _, err := fmt.Fprintf(w, "%-18s %s\n",
			info.Property+":", info.Value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%-18s %d\n",
		"Iterations:", s.Iterations); err != nil {
		return err
	}

	channels := make([]string, 0, len(s.PerChannel))
	for channel := range s.PerChannel {
		channels = append(channels, channel)
	}

	sort.Strings(channels)

	for _, channel := range channels {
		if _, err := fmt.Fprintf(w, "  %-16s %d\n",
			channel+":", s.PerChannel[channel]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%-18s min %d, mean %.1f, max %d\n",
		"Elapsed (ms):", s.MinElapsedMs, s.MeanElapsedMs, s.MaxElapsedMs)

	return err
}
