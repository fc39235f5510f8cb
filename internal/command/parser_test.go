package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Command
	}{
		{name: "no prefix", content: "timer 10", want: Command{Kind: KindNone}},
		{name: "different command", content: "!weather", want: Command{Kind: KindNone}},
		{name: "empty", content: "", want: Command{Kind: KindNone}},
		{name: "prefix only", content: "!", want: Command{Kind: KindNone}},
		{name: "bare timer", content: "!timer", want: Command{Kind: KindUsage}},
		{name: "uppercase command word", content: "!TIMER 10", want: Command{Kind: KindStart, Arg: "10"}},
		{name: "start", content: "!timer 600", want: Command{Kind: KindStart, Arg: "600"}},
		{name: "start keeps raw arg", content: "!timer abc", want: Command{Kind: KindStart, Arg: "abc"}},
		{name: "cancel", content: "!timer cancel", want: Command{Kind: KindCancel}},
		{name: "stop alias", content: "!timer stop", want: Command{Kind: KindCancel}},
		{name: "end alias", content: "!timer END", want: Command{Kind: KindCancel}},
		{name: "status", content: "!timer status", want: Command{Kind: KindStatus}},
		{name: "current alias", content: "!timer current", want: Command{Kind: KindStatus}},
		{name: "extra args ignored", content: "!timer 10 please", want: Command{Kind: KindStart, Arg: "10"}},
		{name: "extra whitespace", content: "!timer   30", want: Command{Kind: KindStart, Arg: "30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.content, "!"); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_CustomPrefix(t *testing.T) {
	if got := Parse("?timer 10", "?"); got.Kind != KindStart {
		t.Errorf("kind: got %v, want KindStart", got.Kind)
	}
	if got := Parse("!timer 10", "?"); got.Kind != KindNone {
		t.Errorf("kind: got %v, want KindNone", got.Kind)
	}
}
