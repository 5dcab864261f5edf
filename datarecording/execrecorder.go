package datarecording

import (
	"os"
	"strings"
	"time"
)

// ExecInfoTable is the table that describes the run itself.
const ExecInfoTable = "exec_info"

const execTimeLayout = "2006-01-02 15:04:05.000000000"

// ExecInfo is a property of the run.
type ExecInfo struct {
	Property string
	Value    string
}

// ExecRecorder collects the properties of a run and writes them when the run
// ends.
type ExecRecorder struct {
	recorder Recorder
	entries  []ExecInfo
	now      func() time.Time
}

// NewExecRecorder creates the exec_info table in recorder.
func NewExecRecorder(recorder Recorder) *ExecRecorder {
	recorder.CreateTable(ExecInfoTable, ExecInfo{})

	return &ExecRecorder{
		recorder: recorder,
		now:      time.Now,
	}
}

// Start notes the start time, the command line and the working directory.
func (e *ExecRecorder) Start() {
	e.Add("Start Time", e.now().Format(execTimeLayout))
	e.Add("Command", strings.Join(os.Args, " "))

	if wd, err := os.Getwd(); err == nil {
		e.Add("Working Directory", wd)
	}
}

// Add notes a property.
func (e *ExecRecorder) Add(property, value string) {
	e.entries = append(e.entries, ExecInfo{Property: property, Value: value})
}

// End writes the collected properties followed by the end time.
func (e *ExecRecorder) End() {
	e.Add("End Time", e.now().Format(execTimeLayout))

	for _, entry := range e.entries {
		e.recorder.InsertData(ExecInfoTable, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}
