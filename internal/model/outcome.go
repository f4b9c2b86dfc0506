package model

import (
	"fmt"
	"time"
)

// Outcome is the result of converting a single file
type Outcome struct {
	File       AudioFileRef `yaml:"file"`
	OutputPath string       `yaml:"output,omitempty"`
	Err        error        `yaml:"-"`
	Error      string       `yaml:"error,omitempty"` // Err rendered for reports

	// Replaced names an earlier file of the batch whose output was overwritten
	Replaced string `yaml:"replaced,omitempty"`
}

// Success creates an outcome for a file that was written to outputPath
func Success(file AudioFileRef, outputPath string) Outcome {
	return Outcome{File: file, OutputPath: outputPath}
}

// Failure creates an outcome for a file that could not be converted
func Failure(file AudioFileRef, err error) Outcome {
	o := Outcome{File: file, Err: err}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// OK returns true if the file was converted
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Status maps the outcome to the row status shown in the UI
func (o Outcome) Status() FileStatus {
	if o.OK() {
		return FileStatusConverted
	}
	return FileStatusFailed
}

// Message returns a one-line user-facing description
func (o Outcome) Message() string {
	if o.OK() {
		return fmt.Sprintf("%s → %s", o.File.Name, o.OutputPath)
	}
	return fmt.Sprintf("Failed to convert %s: %s", o.File.Name, o.Error)
}

// Summary aggregates a finished batch
type Summary struct {
	BatchID    string    `yaml:"batch"`
	Format     Format    `yaml:"format"`
	OutputDir  string    `yaml:"output_dir"`
	Converted  int       `yaml:"converted"`
	Failed     int       `yaml:"failed"`
	Cancelled  bool      `yaml:"cancelled,omitempty"`
	Outcomes   []Outcome `yaml:"outcomes"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// Add records an outcome and updates the counters
func (s *Summary) Add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	if o.OK() {
		s.Converted++
	} else {
		s.Failed++
	}
}

// Total returns the number of files that produced an outcome
func (s *Summary) Total() int {
	return s.Converted + s.Failed
}

// HasErrors checks if any file failed
func (s *Summary) HasErrors() bool {
	return s.Failed > 0
}

// Failures returns the failed outcomes in batch order
func (s *Summary) Failures() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Duration returns how long the batch ran
func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
