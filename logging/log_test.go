// Copyright 2024 PSeitz. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import "testing"

func TestSetLogger(t *testing.T) {
	prev := DefaultLogger
	defer SetLogger(prev)

	l := &logger{level: LevelDebug}
	SetLogger(l)
	if DefaultLogger != l {
		t.Fatalf("SetLogger did not replace DefaultLogger")
	}
}

func TestSetLevel(t *testing.T) {
	SetLevel(LevelAll)
	defer SetLevel(LevelInfo)

	func() {
		defer func() {
			if err := recover(); err != nil {
				t.Errorf("invalid level must not panic: %v", err)
			}
		}()
		SetLevel(1000)
	}()
}

func TestLoggerLevels(t *testing.T) {
	l := &logger{level: LevelDebug}
	l.SetLevel(LevelAll)
	l.Debug("logger debug test")
	l.Info("logger info test")
	l.Warn("logger warn test")
	l.Error("logger error test")

	l.SetLevel(LevelNone)
	l.Debug("suppressed")
	l.Error("suppressed")
}

func TestPackageFuncs(t *testing.T) {
	Debug("log.Debug")
	Info("log.Info")
	Warn("log.Warn")
	Error("log.Error")
}
