package timerange

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"identical", New(600, 660), New(600, 660), true},
		{"partial", New(600, 660), New(630, 690), true},
		{"contained", New(600, 720), New(630, 660), true},
		{"abutting after", New(540, 600), New(600, 660), false},
		{"abutting before", New(600, 660), New(540, 600), false},
		{"disjoint", New(540, 600), New(660, 720), false},
		{"one minute shared", New(600, 661), New(660, 720), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// overlap is symmetric
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	r := New(0, 1)
	if !Overlaps(r, r) {
		t.Error("a range must overlap itself")
	}
}

func TestContains(t *testing.T) {
	outer := New(600, 1080) // 10:00-18:00
	tests := []struct {
		name  string
		inner Range
		want  bool
	}{
		{"equal", New(600, 1080), true},
		{"inside", New(660, 720), true},
		{"flush left", New(600, 660), true},
		{"flush right", New(1020, 1080), true},
		{"starts early", New(540, 660), false},
		{"ends late", New(1020, 1140), false},
		{"outside", New(0, 60), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(outer, tt.inner); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", outer, tt.inner, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want bool
	}{
		{"normal", New(600, 660), true},
		{"full day", New(0, 1440), true},
		{"zero length", New(600, 600), false},
		{"inverted", New(660, 600), false},
		{"negative start", New(-1, 60), false},
		{"past midnight", New(1380, 1441), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Valid(); got != tt.want {
				t.Errorf("%v.Valid() = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestParseMinute(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"10:00", 600, false},
		{"00:00", 0, false},
		{"24:00", 1440, false},
		{"09:45", 585, false},
		{"25:00", 0, true},
		{"10:60", 0, true},
		{"1000", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMinute(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMinute(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMinute(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseClockRoundTrip(t *testing.T) {
	r, err := ParseClock("10:30-11:30")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if r.Start != 630 || r.End != 690 {
		t.Fatalf("ParseClock = %+v", r)
	}
	if r.Clock() != "10:30-11:30" {
		t.Errorf("Clock() = %q", r.Clock())
	}
	if r.Duration() != 60 {
		t.Errorf("Duration() = %d", r.Duration())
	}
}

func TestParseClockRejectsEmpty(t *testing.T) {
	if _, err := ParseClock("10:00-10:00"); err == nil {
		t.Error("expected error for zero-length range")
	}
	if _, err := ParseClock("11:00-10:00"); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestAlignedStarts(t *testing.T) {
	working := New(600, 1080) // 10:00-18:00

	starts := AlignedStarts(working, 30, 90)
	if len(starts) == 0 {
		t.Fatal("no starts generated")
	}
	if starts[0] != 600 {
		t.Errorf("first start = %d, want 600", starts[0])
	}
	// last slot for a 90-minute service in 10:00-18:00 starts at 16:30
	if last := starts[len(starts)-1]; last != 990 {
		t.Errorf("last start = %d (%s), want 990 (16:30)", last, FormatMinute(last))
	}
	for i := 1; i < len(starts); i++ {
		if starts[i]-starts[i-1] != 30 {
			t.Errorf("starts not 30-minute aligned: %v", starts)
			break
		}
	}
}

func TestAlignedStartsEdges(t *testing.T) {
	if got := AlignedStarts(New(600, 660), 30, 90); got != nil {
		t.Errorf("duration longer than window should yield nil, got %v", got)
	}
	if got := AlignedStarts(New(600, 660), 0, 30); got != nil {
		t.Errorf("zero step should yield nil, got %v", got)
	}
	got := AlignedStarts(New(600, 660), 30, 60)
	if len(got) != 1 || got[0] != 600 {
		t.Errorf("exact fit should yield the single start, got %v", got)
	}
}
