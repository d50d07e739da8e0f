// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap logger shared by every stage and defines
// the structured field names used across the pipeline.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names. Use these instead of raw strings.
const (
	FieldRecordID = "record_id"
	FieldEndpoint = "endpoint"
	FieldStatus   = "status"
	FieldCount    = "count"
	FieldRule     = "rule"
	FieldSource   = "source"
	FieldEngine   = "engine"
	FieldFile     = "file"
	FieldRunID    = "run_id"
	FieldError    = "error"
	FieldBody     = "body"
)

// Verbosity levels for the -v flag count.
const (
	VerbosityQuiet = 0 // warnings and errors
	VerbosityInfo  = 1 // -v: per-record progress
	VerbosityDebug = 2 // -vv: queries and raw responses
)

// VerbosityToLevel maps a -v count to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New returns a sugared logger writing to stderr. JSON output uses the zap
// production encoder; otherwise a compact console encoder.
func New(jsonOutput bool, verbosity int) *zap.SugaredLogger {
	return NewWithWriter(os.Stderr, jsonOutput, verbosity)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, jsonOutput bool, verbosity int) *zap.SugaredLogger {
	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cfg.EncodeCaller = nil
		cfg.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), VerbosityToLevel(verbosity))
	return zap.New(core).Sugar().Named("scholarqa")
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return Nop()
	}
	return l
}
