package midi

import "testing"

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		b    byte
		want StatusClass
	}{
		{0x00, StatusInvalid},
		{0x7f, StatusInvalid},
		{0x80, StatusChannel},
		{0x9a, StatusChannel},
		{0xe3, StatusChannel},
		{0xf0, StatusSysexF0},
		{0xf7, StatusSysexF7},
		{0xff, StatusMeta},
		{0xf1, StatusUnrecognized},
		{0xf6, StatusUnrecognized},
		{0xf8, StatusUnrecognized},
		{0xfe, StatusUnrecognized},
	}
	for _, c := range cases {
		if got := ClassifyStatus(c.b); got != c.want {
			t.Errorf("ClassifyStatus(0x%02x) = %s, want %s", c.b, got, c.want)
		}
	}
}

func TestChannelDataByteCount(t *testing.T) {
	cases := []struct {
		status byte
		want   int
	}{
		{0x80, 2}, {0x90, 2}, {0xa0, 2}, {0xb0, 2}, {0xe0, 2},
		{0xc0, 1}, {0xd0, 1},
		{0xf0, 0}, {0xff, 0},
	}
	for _, c := range cases {
		if got := ChannelDataByteCount(c.status); got != c.want {
			t.Errorf("ChannelDataByteCount(0x%02x) = %d, want %d", c.status, got, c.want)
		}
	}
}

func TestEffectiveStatus(t *testing.T) {
	cases := []struct {
		seen, rs byte
		want     byte
	}{
		{0x90, 0x00, 0x90},           // explicit status wins regardless of rs
		{0x3c, 0x90, 0x90},           // data byte + channel rs -> rs
		{0x3c, 0x00, 0x00},           // data byte, no rs -> invalid
		{0xf1, 0x90, 0xf1},           // unrecognized status wins over rs
		{0x3c, 0xff, 0x00},           // data byte, non-channel rs -> invalid
	}
	for _, c := range cases {
		if got := EffectiveStatus(c.seen, c.rs); got != c.want {
			t.Errorf("EffectiveStatus(0x%02x, 0x%02x) = 0x%02x, want 0x%02x",
				c.seen, c.rs, got, c.want)
		}
	}
}

func TestUpdateRunningStatus(t *testing.T) {
	cases := []struct {
		status, priorRS, want byte
	}{
		{0x90, 0x00, 0x90},
		{0xff, 0x90, 0x00}, // meta clears rs
		{0xf0, 0x90, 0x00}, // sysex clears rs
		{0x3c, 0x90, 0x90}, // data byte under rs leaves rs unchanged
		{0xf1, 0x90, 0x00}, // unrecognized status clears rs
	}
	for _, c := range cases {
		if got := UpdateRunningStatus(c.status, c.priorRS); got != c.want {
			t.Errorf("UpdateRunningStatus(0x%02x, 0x%02x) = 0x%02x, want 0x%02x",
				c.status, c.priorRS, got, c.want)
		}
	}
}
