package trust

import (
	"strings"
	"testing"
)

type lines struct {
	got []string
}

func (l *lines) Puts(s string) {
	l.got = append(l.got, s)
}

func TestLevelsImplyMoreSevere(t *testing.T) {
	l := NewLogger(&lines{})
	l.SetLevel(DebugMask)
	for _, m := range []MaskLevel{ErrorMask, WarnMask, InfoMask, DebugMask} {
		if l.Level()&m == 0 {
			t.Errorf("expected mask %x to be set after SetLevel(DebugMask), level is %x", m, l.Level())
		}
	}
	if l.Level()&StatsMask != 0 {
		t.Errorf("did not expect stats to be on, level is %x", l.Level())
	}
	if s := l.LevelToString(); s != "error warn info debug" {
		t.Errorf("expected 'error warn info debug' but got '%s'", s)
	}
}

func TestSetLevelReturnsPrevious(t *testing.T) {
	l := NewLogger(nil)
	first := l.SetLevel(ErrorMask)
	if first != StatsMask|ErrorMask|WarnMask|InfoMask {
		t.Errorf("unexpected starting mask %x", first)
	}
	second := l.SetLevel(InfoMask | StatsMask)
	if second != ErrorMask {
		t.Errorf("expected previous mask to be just errors, got %x", second)
	}
}

func TestMaskedMessagesAreDropped(t *testing.T) {
	sink := &lines{}
	l := NewLogger(sink)
	l.SetLevel(WarnMask)
	l.Infof("should not see this %d", 1)
	l.Debugf("nor this")
	l.Warnf("but this %s", "yes")
	if len(sink.got) != 1 {
		t.Fatalf("expected exactly one line, got %d: %v", len(sink.got), sink.got)
	}
	if sink.got[0] != " WARN:but this yes\n" {
		t.Errorf("bad warn line '%s'", sink.got[0])
	}
}

func TestStatsCategory(t *testing.T) {
	sink := &lines{}
	l := NewLogger(sink)
	l.Statsf("bench", "t1=%d t2=%d", 10, 20)
	if len(sink.got) != 1 || sink.got[0] != "STATS[bench]:t1=10 t2=20\n" {
		t.Errorf("bad stats output %v", sink.got)
	}
}

func TestFatalIgnoresMask(t *testing.T) {
	sink := &lines{}
	l := NewLogger(sink)
	l.SetLevel(Nothing)
	l.Fatalf("console gone")
	if len(sink.got) == 0 || !strings.HasPrefix(sink.got[len(sink.got)-1], "FATAL:console gone") {
		t.Errorf("expected fatal line regardless of mask, got %v", sink.got)
	}
}

func TestDefaultLoggerDiscards(t *testing.T) {
	prev := SetDefault(NewLogger(nil))
	defer SetDefault(prev)
	//nothing to check but that it does not blow up
	Infof("into the void %d", 42)
	Statsf("bench", "also %s", "void")

	sink := &lines{}
	SetDefault(NewLogger(sink))
	Errorf("now visible")
	if len(sink.got) != 1 || sink.got[0] != "ERROR:now visible\n" {
		t.Errorf("expected the default logger to be replaced, got %v", sink.got)
	}
}
