// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogGroupLevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogGroup(&Options{LogLevel: int(WarnLevel)})
	l.SetAllOutput(&buf)
	l.SetAllFlags(0)

	l.Debugf("should not appear")
	l.Tracef("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("Debugf/Tracef wrote output at WarnLevel: %q", buf.String())
	}

	l.Warnf("a warning")
	if !strings.Contains(buf.String(), "[WARN] a warning") {
		t.Errorf("output = %q, want a [WARN]-prefixed warning", buf.String())
	}

	buf.Reset()
	l.Errorf("an error")
	if !strings.Contains(buf.String(), "[ERROR] an error") {
		t.Errorf("output = %q, want an [ERROR]-prefixed message", buf.String())
	}
}

func TestLogGroupTraceLevelEnablesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogGroup(&Options{LogLevel: int(TraceLevel)})
	l.SetAllOutput(&buf)
	l.SetAllFlags(0)

	l.Tracef("trace line")
	l.Debugf("debug line")
	l.Infof("info line")

	out := buf.String()
	for _, want := range []string{"[TRACE] trace line", "[DEBUG] debug line", "[INFO] info line"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got %q", want, out)
		}
	}
}

func TestSetErrorRedirectsOnlyErrorLogger(t *testing.T) {
	var warnBuf, errBuf bytes.Buffer
	l := NewLogGroup(&Options{LogLevel: int(WarnLevel)})
	l.SetAllOutput(&warnBuf)
	l.SetAllFlags(0)
	l.SetError(&errBuf)

	l.Warnf("warn")
	l.Errorf("err")

	if !strings.Contains(warnBuf.String(), "warn") {
		t.Errorf("warn logger did not receive its message: %q", warnBuf.String())
	}
	if strings.Contains(warnBuf.String(), "err") {
		t.Errorf("error message leaked into the warn buffer: %q", warnBuf.String())
	}
	if !strings.Contains(errBuf.String(), "err") {
		t.Errorf("error logger did not receive its message: %q", errBuf.String())
	}
}
