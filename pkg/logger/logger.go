// Copyright 2025 Pylot Authors
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

// Package logger is the process-wide structured logger. It stays silent
// until Init runs, so library code can log unconditionally.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

// Init configures logging for the process. Verbose enables debug-level
// output; the default level only surfaces warnings, keeping interactive
// output clean.
func Init(verbose bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return
	}
	sugar = l.Sugar().Named("pylot")
}

func Debugw(msg string, keysAndValues ...any) { sugar.Debugw(msg, keysAndValues...) }
func Infow(msg string, keysAndValues ...any)  { sugar.Infow(msg, keysAndValues...) }
func Warnw(msg string, keysAndValues ...any)  { sugar.Warnw(msg, keysAndValues...) }
func Errorw(msg string, keysAndValues ...any) { sugar.Errorw(msg, keysAndValues...) }

func Sync() {
	_ = sugar.Sync()
}
